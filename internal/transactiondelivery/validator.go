package transactiondelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/corebank/miniledger/internal/domain"
)

// ValidChannel validates whether the transaction channel is supported.
var ValidChannel validator.Func = func(fl validator.FieldLevel) bool {
	c, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	switch domain.TransactionChannel(c) {
	case domain.ChannelTeller, domain.ChannelATM, domain.ChannelOnline, domain.ChannelMobile:
		return true
	}

	return false
}
