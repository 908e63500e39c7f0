package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingField means a required key was absent from a scenario's data.
var ErrMissingField = errors.New("missing required field")

// Fields is the data for one notification, keyed the way the booking
// application names them, e.g., "space_name".
type Fields map[string]interface{}

// require stringifies the value at each key, failing on the first key
// that's absent or nil.
func (f Fields) require(keys ...string) (map[string]string, error) {
	r := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok := f[k]
		if !ok || v == nil {
			return nil, fmt.Errorf("%w: %v", ErrMissingField, k)
		}
		r[k] = stringify(v)
	}
	return r, nil
}

// optional returns the value at key, or a blank string if there isn't one.
func (f Fields) optional(key string) string {
	v, ok := f[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(stringify(v))
}

// stringify renders v the way it was written in the request. JSON decoders
// hand us every number as a float64, and fmt would print a long ID or
// phone number in exponent form.
func stringify(v interface{}) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	case json.Number:
		return n.String()
	default:
		return fmt.Sprint(v)
	}
}
