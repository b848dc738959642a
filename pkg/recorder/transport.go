package recorder

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/httptape/httptape/pkg/headers"
	"github.com/httptape/httptape/pkg/logging"
)

// Transport is the composition root: an http.RoundTripper that routes
// every outbound call through the recorder or the replayer depending on
// the configured mode. In replay mode the real network is never touched.
type Transport struct {
	mode     Mode
	base     http.RoundTripper
	headers  map[string]headers.Source
	recorder *Recorder
	replayer *Replayer
	log      *slog.Logger
}

// NewTransport wraps base with recording or replay behavior. A nil base
// uses http.DefaultTransport.
func NewTransport(cfg Config, base http.RoundTripper) (*Transport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if base == nil {
		base = http.DefaultTransport
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}

	t := &Transport{
		mode:    cfg.Mode,
		base:    base,
		headers: cfg.Headers,
		log:     log,
	}
	switch cfg.Mode {
	case ModeRecord:
		t.recorder = NewRecorder(cfg)
	case ModeReplay:
		t.replayer = NewReplayer(cfg.Path, log)
	}
	return t, nil
}

// NewClient returns an http.Client whose transport records or replays.
func NewClient(cfg Config) (*http.Client, error) {
	transport, err := NewTransport(cfg, nil)
	if err != nil {
		return nil, err
	}
	return &http.Client{Transport: transport}, nil
}

// RoundTrip implements http.RoundTripper. Configured dynamic headers are
// merged under request-supplied headers (request values win). In record
// mode the live response is always returned unmodified: recording is a
// best-effort side channel whose failures are logged, never surfaced.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	for name, value := range headers.Resolve(t.headers) {
		if out.Header.Get(name) == "" {
			out.Header.Set(name, value)
		}
	}

	if t.mode == ModeReplay {
		return t.replayer.Replay(out)
	}

	// Buffer the request body so it can be both forwarded and captured.
	var reqBody []byte
	bodyPresent := out.Body != nil && out.Body != http.NoBody
	if bodyPresent {
		var err error
		reqBody, err = io.ReadAll(out.Body)
		_ = out.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("recorder: reading request body: %w", err)
		}
		out.Body = io.NopCloser(bytes.NewReader(reqBody))
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	respBody, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("recorder: reading response body: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(respBody))

	if err := t.recorder.Record(out, reqBody, bodyPresent, resp, respBody); err != nil {
		t.log.Warn("recording failed", "method", out.Method, "url", out.URL.String(), "error", err)
	}

	return resp, nil
}
