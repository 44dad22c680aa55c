// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/corebank/miniledger/internal/accountdelivery"
	"github.com/corebank/miniledger/internal/accountrepo"
	"github.com/corebank/miniledger/internal/accountservice"
	"github.com/corebank/miniledger/internal/ledgerrepo"
	"github.com/corebank/miniledger/internal/middleware"
	"github.com/corebank/miniledger/internal/sequencerepo"
	"github.com/corebank/miniledger/internal/sequenceservice"
	"github.com/corebank/miniledger/internal/transactiondelivery"
	"github.com/corebank/miniledger/internal/transactionservice"
	"github.com/corebank/miniledger/internal/transferdelivery"
	"github.com/corebank/miniledger/internal/transferservice"
	"github.com/corebank/miniledger/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	sequenceRepo := sequencerepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)

	sequenceService := sequenceservice.New(sequenceRepo)
	accountService := accountservice.New(accountRepo, ledgerRepo, sequenceService)
	transactionService := transactionservice.New(ledgerRepo, accountRepo, sequenceService)
	transferService := transferservice.New(ledgerRepo, accountRepo, sequenceService)

	accountHandler := accountdelivery.NewHandler(accountService, transactionService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	transferHandler := transferdelivery.NewHandler(transferService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts", accountHandler.Open)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.POST("/accounts/:id/close", accountHandler.Close)
	engine.GET("/accounts/:id/transactions", accountHandler.ListTransactions)

	engine.POST("/transactions/deposit", transactionHandler.Deposit)
	engine.POST("/transactions/withdrawal", transactionHandler.Withdrawal)

	engine.POST("/transfers", transferHandler.Create)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("channel", transactiondelivery.ValidChannel); err != nil {
			return nil, errors.New("cannot register channel validator")
		}
	}

	return &Server{DB: conn, Engine: engine, Config: config}, nil
}
