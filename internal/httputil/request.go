package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxBodyBytes caps request bodies. Chat turns are short text; 1MB is
// generous while still bounding memory per request.
const maxBodyBytes = 1 << 20

// ParseJSON decodes the request body into dest. The body size is limited so
// oversized payloads get a proper 413 instead of exhausting memory.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
