package tape

import (
	"encoding/json"
	"fmt"
)

// NormalizeBody converts a raw textual body into its stored representation.
// present=false means the message carried no body at all and maps to nil.
// An empty byte slice maps to the explicit empty string, JSON-parseable text
// maps to the parsed value, and any other text passes through unchanged.
func NormalizeBody(raw []byte, present bool) any {
	if !present {
		return nil
	}
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		return v
	}
	return string(raw)
}

// EncodeBody converts a stored body back into wire bytes. nil and the empty
// string both produce an empty body; strings pass through; structured values
// are serialized to JSON.
func EncodeBody(v any) ([]byte, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(b), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBodySerialization, err)
		}
		return data, nil
	}
}
