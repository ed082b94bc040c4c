package ui

import (
	"github.com/stablearb/arbgate/business/opportunity/domain"
	"github.com/stablearb/arbgate/internal/wsconn"
)

// BatchMsg carries one scan batch received from the stream.
type BatchMsg struct {
	Result *domain.ScanResult
}

// StateMsg reports the stream connection state.
type StateMsg struct {
	State wsconn.State
}

// ErrorMsg reports a stream failure.
type ErrorMsg struct {
	Err error
}
