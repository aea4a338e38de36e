// Package network provides the shared HTTP client used for release API calls and archive downloads.
package network

import (
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// Client is the singleton HTTP client shared across the application.
// It carries no overall timeout: archives can be large, so callers bound each request with a context deadline instead.
var Client = &http.Client{
	Transport: newTransport(),
}

// newTransport initializes a tuned http.Transport with pool and timeout parameters suited to a handful of sequential requests.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 10
	t.MaxIdleConnsPerHost = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = time.Second

	// HTTP/2 pings detect half-dead connections that would otherwise stall a download until the deadline.
	if h2, err := http2.ConfigureTransports(t); err == nil {
		h2.ReadIdleTimeout = 15 * time.Second
		h2.PingTimeout = 10 * time.Second
	}
	return t
}
