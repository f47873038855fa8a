package httpserver

import (
	"net/http"
	"time"
)

// New builds the API server. Every endpoint answers promptly — verification
// flows run on background goroutines, not in the request — so request
// timeouts can be tight; idle keep-alives stay longer for status pollers.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
