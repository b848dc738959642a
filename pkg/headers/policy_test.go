package headers

import (
	"errors"
	"net/http"
	"testing"
)

func TestExcludedSet(t *testing.T) {
	t.Run("contains defaults", func(t *testing.T) {
		set := ExcludedSet()
		for _, name := range []string{"authorization", "cookie", "set-cookie", "x-api-key", "bearer"} {
			if _, ok := set[name]; !ok {
				t.Errorf("expected %q in default exclusion set", name)
			}
		}
	})

	t.Run("custom names are case-normalized", func(t *testing.T) {
		set := ExcludedSet("X-Request-Secret")
		if _, ok := set["x-request-secret"]; !ok {
			t.Error("expected custom name lower-cased in set")
		}
	})
}

func TestFilter(t *testing.T) {
	t.Run("excludes case-insensitively", func(t *testing.T) {
		h := map[string]string{
			"Authorization": "Bearer abc",
			"authorization": "Bearer def",
			"X-Request-Id":  "abc",
		}
		got := Filter(h, ExcludedSet())

		if len(got) != 1 {
			t.Fatalf("expected 1 header, got %d: %v", len(got), got)
		}
		if got["X-Request-Id"] != "abc" {
			t.Errorf("expected X-Request-Id retained, got %v", got)
		}
	})

	t.Run("does not mutate input", func(t *testing.T) {
		h := map[string]string{"Cookie": "a=b"}
		Filter(h, ExcludedSet())
		if h["Cookie"] != "a=b" {
			t.Error("input map was mutated")
		}
	})
}

func TestResolve(t *testing.T) {
	t.Run("failed source omits only its header", func(t *testing.T) {
		sources := map[string]Source{
			"X-Good": Static("ok"),
			"X-Bad": func() (string, error) {
				return "", errors.New("lookup failed")
			},
		}
		got := Resolve(sources)

		if got["X-Good"] != "ok" {
			t.Errorf("expected X-Good=ok, got %v", got)
		}
		if _, ok := got["X-Bad"]; ok {
			t.Error("expected X-Bad omitted")
		}
	})

	t.Run("empty resolved value is treated as absent", func(t *testing.T) {
		got := Resolve(map[string]Source{"X-Empty": Static("")})
		if len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})

	t.Run("env source", func(t *testing.T) {
		t.Setenv("HTTPTAPE_TEST_TOKEN", "s3cret")
		got := Resolve(map[string]Source{
			"X-Token":   Env("HTTPTAPE_TEST_TOKEN"),
			"X-Missing": Env("HTTPTAPE_TEST_UNSET"),
		})
		if got["X-Token"] != "s3cret" {
			t.Errorf("expected env value resolved, got %v", got)
		}
		if _, ok := got["X-Missing"]; ok {
			t.Error("expected unset env var omitted")
		}
	})
}

func TestMerge(t *testing.T) {
	got := Merge(
		map[string]string{"A": "1", "B": "1"},
		map[string]string{"B": "2", "C": "2"},
	)
	want := map[string]string{"A": "1", "B": "2", "C": "2"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("expected %s=%s, got %s", k, v, got[k])
		}
	}
}

func TestHTTPConversion(t *testing.T) {
	h := http.Header{}
	h.Add("Accept", "application/json")
	h.Add("X-Multi", "a")
	h.Add("X-Multi", "b")

	m := FromHTTP(h)
	if m["X-Multi"] != "a, b" {
		t.Errorf("expected multi-valued header joined, got %q", m["X-Multi"])
	}

	back := ToHTTP(m)
	if back.Get("Accept") != "application/json" {
		t.Errorf("expected Accept preserved, got %q", back.Get("Accept"))
	}
}
