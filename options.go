package httpform

import "net/http"

type Options struct {
	// Transport is used to send requests. nil means a clone of
	// http.DefaultTransport.
	Transport http.RoundTripper
}
