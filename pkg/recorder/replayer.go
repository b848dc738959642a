package recorder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/httptape/httptape/pkg/headers"
	"github.com/httptape/httptape/pkg/logging"
	"github.com/httptape/httptape/pkg/tape"
)

// ErrNoRecording is the transport-level failure surfaced when replay has
// no matching transaction or the tape cannot be read. In replay mode the
// absence of a recording is a test-setup defect and fails loudly.
var ErrNoRecording = errors.New("request failed: no matching recording or recording error")

// Replayer answers requests purely from previously recorded transactions.
// It is stateless across calls: every replay is an independent lookup and
// never mutates stored files.
type Replayer struct {
	store *tape.FileStore
	log   *slog.Logger
}

// NewReplayer creates a replayer over the given tape directory.
func NewReplayer(path string, log *slog.Logger) *Replayer {
	if log == nil {
		log = logging.Nop()
	}
	return &Replayer{
		store: tape.NewFileStore(path, log),
		log:   log,
	}
}

// Replay looks up the transaction matching the request's exact method and
// URL and reconstructs a synthetic response from it. Headers and bodies
// are not part of the match key.
func (p *Replayer) Replay(req *http.Request) (*http.Response, error) {
	tx, err := p.store.FindByMethodAndURL(req.Method, req.URL.String())
	if err != nil {
		p.log.Debug("replay lookup failed", "method", req.Method, "url", req.URL.String(), "error", err)
		return nil, fmt.Errorf("%w: %s %s", ErrNoRecording, req.Method, req.URL)
	}

	// A falsy stored body (nil or "") replays as an empty body regardless
	// of status code, covering 204/205/304-style responses uniformly.
	var body []byte
	if !emptyBody(tx.Response.Body) {
		body, err = tape.EncodeBody(tx.Response.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s: %v", ErrNoRecording, req.Method, req.URL, err)
		}
	}

	status := tx.Response.Status
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        headers.ToHTTP(tx.Response.Headers),
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}

func emptyBody(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
