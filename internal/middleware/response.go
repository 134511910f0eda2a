package middleware

import (
	"net/http"

	"github.com/vision2030/site-server/internal/httputil"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}
