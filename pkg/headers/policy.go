// Package headers implements the header policy applied to captured traffic:
// exclusion filtering, dynamic value resolution, and map merging.
package headers

import (
	"fmt"
	"net/http"
	"os"
	"strings"
)

// defaultExcluded is the built-in security list. Header names on this list
// are dropped from recordings regardless of caller configuration.
var defaultExcluded = []string{
	"authorization",
	"cookie",
	"set-cookie",
	"x-api-key",
	"x-auth-token",
	"access-token",
	"refresh-token",
	"bearer",
	"x-csrf-token",
	"x-xsrf-token",
}

// ExcludedSet unions the built-in security list with caller-supplied header
// names, case-normalized.
func ExcludedSet(custom ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(defaultExcluded)+len(custom))
	for _, name := range defaultExcluded {
		set[name] = struct{}{}
	}
	for _, name := range custom {
		set[strings.ToLower(name)] = struct{}{}
	}
	return set
}

// Filter returns a copy of h omitting any key whose lower-cased form is in
// excluded. Keys are matched case-insensitively; value casing is untouched.
func Filter(h map[string]string, excluded map[string]struct{}) map[string]string {
	filtered := make(map[string]string, len(h))
	for k, v := range h {
		if _, drop := excluded[strings.ToLower(k)]; drop {
			continue
		}
		filtered[k] = v
	}
	return filtered
}

// Source produces a header value at interception time. A Source that fails
// or resolves to an empty string causes its header to be omitted.
type Source func() (string, error)

// Env returns a Source backed by an environment variable lookup.
func Env(name string) Source {
	return func() (string, error) {
		v, ok := os.LookupEnv(name)
		if !ok {
			return "", fmt.Errorf("environment variable %s not set", name)
		}
		return v, nil
	}
}

// Static returns a Source with a fixed value.
func Static(value string) Source {
	return func() (string, error) {
		return value, nil
	}
}

// Resolve evaluates each configured Source. A header whose source fails or
// resolves to an empty value is omitted; the rest still resolve.
func Resolve(sources map[string]Source) map[string]string {
	resolved := make(map[string]string, len(sources))
	for name, src := range sources {
		if src == nil {
			continue
		}
		v, err := src()
		if err != nil || v == "" {
			continue
		}
		resolved[name] = v
	}
	return resolved
}

// Merge combines header maps. Later maps win on key conflicts.
func Merge(maps ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}

// FromHTTP flattens an http.Header into the single-valued map used by the
// transaction model. Multi-valued headers are joined with ", ".
func FromHTTP(h http.Header) map[string]string {
	m := make(map[string]string, len(h))
	for k, vs := range h {
		m[k] = strings.Join(vs, ", ")
	}
	return m
}

// ToHTTP converts a transaction header map back into an http.Header.
func ToHTTP(m map[string]string) http.Header {
	h := make(http.Header, len(m))
	for k, v := range m {
		h.Set(k, v)
	}
	return h
}
