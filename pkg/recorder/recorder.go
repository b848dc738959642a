package recorder

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/httptape/httptape/internal/id"
	"github.com/httptape/httptape/pkg/headers"
	"github.com/httptape/httptape/pkg/logging"
	"github.com/httptape/httptape/pkg/redact"
	"github.com/httptape/httptape/pkg/tape"
)

// Recorder persists live request/response pairs as transactions. It owns
// the in-memory transaction only for the duration of a single call; the
// store owns the directory.
type Recorder struct {
	store    *tape.FileStore
	excluded map[string]struct{}
	redactor redact.Redactor
	log      *slog.Logger
}

// NewRecorder creates a recorder over the configured tape directory.
func NewRecorder(cfg Config) *Recorder {
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Recorder{
		store:    tape.NewFileStore(cfg.Path, log),
		excluded: headers.ExcludedSet(cfg.ExcludedHeaders...),
		redactor: cfg.Redactor,
		log:      log,
	}
}

// Record captures one executed request/response pair: it normalizes both
// bodies, filters and redacts both sides, and writes exactly one file.
// reqBodyPresent distinguishes a request that carried no body from one
// with an explicit empty body.
func (r *Recorder) Record(req *http.Request, reqBody []byte, reqBodyPresent bool, resp *http.Response, respBody []byte) error {
	now := time.Now()
	reqURL := req.URL.String()
	txID := id.Transaction(req.Method, reqURL, now)

	if err := r.store.EnsureDir(); err != nil {
		return err
	}

	reqCtx := redact.Context{
		Type:    redact.TypeRequest,
		Method:  req.Method,
		URL:     reqURL,
		Headers: headers.Filter(headers.FromHTTP(req.Header), r.excluded),
		Body:    tape.NormalizeBody(reqBody, reqBodyPresent),
	}
	respCtx := redact.Context{
		Type:    redact.TypeResponse,
		Method:  req.Method,
		URL:     reqURL,
		Status:  resp.StatusCode,
		Headers: headers.Filter(headers.FromHTTP(resp.Header), r.excluded),
		Body:    tape.NormalizeBody(respBody, true),
	}

	// Each side is redacted independently; the response redactor never
	// sees the unredacted request.
	if r.redactor != nil {
		var err error
		if reqCtx, err = redact.Apply(r.redactor, reqCtx); err != nil {
			return fmt.Errorf("%w: request: %v", redact.ErrRedact, err)
		}
		if respCtx, err = redact.Apply(r.redactor, respCtx); err != nil {
			return fmt.Errorf("%w: response: %v", redact.ErrRedact, err)
		}
	}

	tx := &tape.Transaction{
		ID: txID,
		Request: tape.Request{
			Method:  req.Method,
			URL:     reqCtx.URL,
			Headers: reqCtx.Headers,
			Body:    reqCtx.Body,
		},
		Response: tape.Response{
			Status:  resp.StatusCode,
			Headers: respCtx.Headers,
			Body:    respCtx.Body,
		},
		Timestamp: now,
	}

	if err := r.store.Save(tx); err != nil {
		return err
	}

	r.log.Debug("recorded transaction", "id", txID, "method", req.Method, "url", reqCtx.URL, "status", resp.StatusCode)
	return nil
}
