package middleware

import (
	"net/http"

	"github.com/goccy/go-json"
)

// writeError writes the API's failure envelope. Middleware cannot use the
// handlers package without an import cycle, so the shape is repeated here.
func writeError(w http.ResponseWriter, status int, kind, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   msg,
		"kind":    kind,
	})
}
