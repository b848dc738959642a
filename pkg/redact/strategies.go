package redact

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/ohler55/ojg/jp"
)

// Headers masks the values of the named headers. Names are matched
// case-insensitively; headers not present in the context are ignored.
func Headers(names ...string) Redactor {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = struct{}{}
	}

	return Func(func(ctx Context) (Result, error) {
		var out map[string]string
		for k := range ctx.Headers {
			if _, hit := set[strings.ToLower(k)]; !hit {
				continue
			}
			if out == nil {
				out = make(map[string]string, len(ctx.Headers))
				for k2, v2 := range ctx.Headers {
					out[k2] = v2
				}
			}
			out[k] = Mask
		}
		if out == nil {
			return Result{}, nil
		}
		return Result{Headers: out}, nil
	})
}

// JSONPath masks body fields addressed by dot-paths such as "user.ssn".
// Paths that do not exist in the body, and paths that fail to parse, are
// silently skipped.
func JSONPath(paths ...string) Redactor {
	exprs := make([]jp.Expr, 0, len(paths))
	for _, p := range paths {
		x, err := jp.ParseString(p)
		if err != nil {
			continue
		}
		exprs = append(exprs, x)
	}

	return Func(func(ctx Context) (Result, error) {
		body := dup(ctx.Body)
		changed := false
		for _, x := range exprs {
			if len(x.Get(body)) == 0 {
				continue
			}
			if err := x.Set(body, Mask); err == nil {
				changed = true
			}
		}
		if !changed {
			return Result{}, nil
		}
		return Result{Body: body, ReplaceBody: true}, nil
	})
}

// QueryParams masks the values of the named query parameters in the
// context URL. Parameters not present are ignored.
func QueryParams(names ...string) Redactor {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = struct{}{}
	}

	return Func(func(ctx Context) (Result, error) {
		if ctx.URL == "" {
			return Result{}, nil
		}
		u, err := url.Parse(ctx.URL)
		if err != nil {
			return Result{}, nil
		}

		q := u.Query()
		changed := false
		for k, vs := range q {
			if _, hit := set[strings.ToLower(k)]; !hit {
				continue
			}
			for i := range vs {
				vs[i] = Mask
			}
			q[k] = vs
			changed = true
		}
		if !changed {
			return Result{}, nil
		}
		u.RawQuery = q.Encode()
		return Result{URL: u.String()}, nil
	})
}

// Pattern masks body content matched by a regular expression. Matching
// substrings of every string leaf are replaced, and any field whose key
// name matches has its whole value masked regardless of shape.
func Pattern(re *regexp.Regexp) Redactor {
	return Func(func(ctx Context) (Result, error) {
		body, changed := maskPattern(re, ctx.Body)
		if !changed {
			return Result{}, nil
		}
		return Result{Body: body, ReplaceBody: true}, nil
	})
}

// maskPattern walks a JSON-shaped value and returns a masked copy plus
// whether anything changed. The input is never mutated.
func maskPattern(re *regexp.Regexp, v any) (any, bool) {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		changed := false
		for k, child := range val {
			if re.MatchString(k) {
				out[k] = Mask
				changed = true
				continue
			}
			masked, c := maskPattern(re, child)
			out[k] = masked
			changed = changed || c
		}
		return out, changed
	case []any:
		out := make([]any, len(val))
		changed := false
		for i, child := range val {
			masked, c := maskPattern(re, child)
			out[i] = masked
			changed = changed || c
		}
		return out, changed
	case string:
		if re.MatchString(val) {
			return re.ReplaceAllString(val, Mask), true
		}
		return val, false
	default:
		return v, false
	}
}

// conditionEnv is the variable set available to When conditions.
var conditionEnv = map[string]any{
	"type":   "",
	"method": "",
	"url":    "",
	"status": 0,
}

// When applies the inner redactor only when the condition evaluates to
// true. Conditions are expr-lang expressions over type, method, url and
// status, e.g. `type == "response" && status >= 400`.
func When(condition string, inner Redactor) (Redactor, error) {
	program, err := expr.Compile(condition, expr.Env(conditionEnv), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid condition %q: %v", ErrRedact, condition, err)
	}

	return Func(func(ctx Context) (Result, error) {
		env := map[string]any{
			"type":   string(ctx.Type),
			"method": ctx.Method,
			"url":    ctx.URL,
			"status": ctx.Status,
		}
		out, err := expr.Run(program, env)
		if err != nil {
			return Result{}, fmt.Errorf("%w: condition %q: %v", ErrRedact, condition, err)
		}
		if hit, ok := out.(bool); !ok || !hit {
			return Result{}, nil
		}
		return inner.Redact(ctx)
	}), nil
}

// dup deep-copies a JSON-shaped value so strategies can edit in place
// without touching the caller's body.
func dup(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = dup(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = dup(child)
		}
		return out
	default:
		return v
	}
}
