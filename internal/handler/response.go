package handler

import (
	"net/http"

	"github.com/vision2030/site-server/internal/httputil"
	"github.com/vision2030/site-server/internal/middleware"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}

// userID returns the authenticated admin's id for audit events, or empty
// outside a guarded route.
func userID(r *http.Request) string {
	if user := middleware.GetUser(r.Context()); user != nil {
		return user.ID
	}
	return ""
}
