package middleware

import "net/http"

// Every JSON body this API accepts is small: section fields, profile
// fields, login credentials, upload descriptors. Image bytes never pass
// through here, they go straight to the bucket via presigned URL, so the
// ceiling can be far below a typical upload limit.
const defaultMaxBodySize = 256 << 10

type BodyLimitMiddleware struct {
	maxSize int64
}

func NewBodyLimitMiddleware(maxSize int64) *BodyLimitMiddleware {
	if maxSize <= 0 {
		maxSize = defaultMaxBodySize
	}
	return &BodyLimitMiddleware{maxSize: maxSize}
}

func (m *BodyLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Reject on the declared length when the client sends one;
		// MaxBytesReader catches chunked bodies that lie or omit it.
		if r.ContentLength > m.maxSize {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
				"error": "Request body too large",
			})
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, m.maxSize)
		next.ServeHTTP(w, r)
	})
}
