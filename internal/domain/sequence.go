package domain

import "errors"

// ErrSequenceConflict indicates a race was detected while minting a sequence
// number. The caller may retry the whole operation.
var ErrSequenceConflict = errors.New("sequence number conflict, please retry")

// SequenceCounter stores the last issued value for a named monotonic counter.
// A row is created lazily on the first request for a given name and is never
// deleted in normal operation.
type SequenceCounter struct {
	Name      string `json:"name"`
	Prefix    string `json:"prefix"`
	LastValue int64  `json:"last_value"`
}
