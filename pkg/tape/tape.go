// Package tape defines the recorded transaction model and its file-backed
// store. One transaction is one captured request/response pair; once written
// it is immutable and replay never modifies it.
package tape

import (
	"errors"
	"time"
)

// Store and serialization failure kinds. Callers distinguish them with
// errors.Is.
var (
	ErrNotFound          = errors.New("transaction not found")
	ErrDirectoryCreate   = errors.New("failed to create storage directory")
	ErrRead              = errors.New("failed to read transaction")
	ErrWrite             = errors.New("failed to write transaction")
	ErrSerialization     = errors.New("failed to serialize transaction")
	ErrBodySerialization = errors.New("failed to serialize body")
)

// Transaction is the unit of persistence: one request/response pair plus
// metadata. The ID's timestamp component and Timestamp are captured at the
// same logical instant but recorded independently.
type Transaction struct {
	ID        string    `json:"id"`
	Request   Request   `json:"request"`
	Response  Response  `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Request holds the captured request details. Body is nil when the request
// carried no body; an explicit empty body is stored as "".
type Request struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers"`
	Body    any               `json:"body,omitempty"`
}

// Response holds the captured response details. Body is always present in
// the stored form and may be null.
type Response struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	Body    any               `json:"body"`
}

// Filename returns the file name this transaction is stored under.
func (t *Transaction) Filename() string {
	return t.ID + ".json"
}
