// Package redact transforms captured headers, URLs and bodies before
// persistence, removing sensitive data while preserving structural shape.
//
// A Redactor receives a Context tagged "request" or "response" and returns
// a Result whose zero-value fields mean "leave unchanged". The request and
// response sides are redacted independently; a response redactor never sees
// the unredacted request.
package redact

import (
	"errors"
)

// Mask is the replacement value for redacted content.
const Mask = "[REDACTED]"

// ErrRedact is the generic redaction failure kind.
var ErrRedact = errors.New("redaction failed")

// ContextType tags which side of the transaction is being redacted.
type ContextType string

// Context types.
const (
	TypeRequest  ContextType = "request"
	TypeResponse ContextType = "response"
)

// Context carries one side of a transaction through the redaction pipeline.
// Headers have already been filtered by the header exclusion policy.
type Context struct {
	Type    ContextType
	Method  string
	URL     string
	Status  int // response side only
	Headers map[string]string
	Body    any
}

// Result describes what a redaction step changed. A nil Headers map keeps
// the original headers, an empty URL keeps the original URL, and Body is
// only applied when ReplaceBody is set (a replaced body may itself be nil).
// Replacement is total: returned fields are not merged with the originals.
type Result struct {
	Headers     map[string]string
	URL         string
	Body        any
	ReplaceBody bool
}

// Redactor is the pluggable redaction strategy.
type Redactor interface {
	Redact(ctx Context) (Result, error)
}

// Func adapts a plain function to the Redactor interface.
type Func func(Context) (Result, error)

// Redact implements Redactor.
func (f Func) Redact(ctx Context) (Result, error) {
	return f(ctx)
}

// Apply runs a redactor and folds its result back into the context.
func Apply(r Redactor, ctx Context) (Context, error) {
	res, err := r.Redact(ctx)
	if err != nil {
		return ctx, err
	}
	if res.Headers != nil {
		ctx.Headers = res.Headers
	}
	if res.URL != "" {
		ctx.URL = res.URL
	}
	if res.ReplaceBody {
		ctx.Body = res.Body
	}
	return ctx, nil
}

// Chain composes redaction steps. Each step receives the previous step's
// output as its context, so later steps see earlier redactions. Order is
// caller-determined and matters.
func Chain(steps ...Redactor) Redactor {
	return Func(func(ctx Context) (Result, error) {
		var out Result
		for _, step := range steps {
			res, err := step.Redact(ctx)
			if err != nil {
				return Result{}, err
			}
			if res.Headers != nil {
				ctx.Headers = res.Headers
				out.Headers = res.Headers
			}
			if res.URL != "" {
				ctx.URL = res.URL
				out.URL = res.URL
			}
			if res.ReplaceBody {
				ctx.Body = res.Body
				out.Body = res.Body
				out.ReplaceBody = true
			}
		}
		return out, nil
	})
}
