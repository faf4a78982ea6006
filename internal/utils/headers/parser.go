package headers

import (
	"fmt"
	"net/http"
	"strings"
)

// Parse converts "Key: Value" flag values into an http.Header.
// Repeated keys accumulate values.
func Parse(h []string) (http.Header, error) {
	out := make(http.Header, len(h))
	for _, hdr := range h {
		key, value, ok := strings.Cut(hdr, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid header %q: expected \"Key: Value\"", hdr)
		}
		out.Add(key, strings.TrimSpace(value))
	}
	return out, nil
}
