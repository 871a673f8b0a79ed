// Package events defines the event payloads published around HTTP handling
// and query execution.
package events

import (
	"net/http"
	"time"
)

// HTTPStart is emitted when an HTTP request is received. The context
// carries the request ID.
type HTTPStart struct {
	Request *http.Request
}

// HTTPFinish is emitted after the handler completes.
type HTTPFinish struct {
	Request  *http.Request
	Status   int
	Duration time.Duration
}

// QueryStart is emitted before parsing and executing a query.
type QueryStart struct {
	Query string
}

// QueryFinish is emitted after a query finished, successfully or not.
type QueryFinish struct {
	Query         string
	OperationType string
	Err           error
	Duration      time.Duration
}
