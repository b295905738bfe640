package httpclient

import "net/http"

// Hooks observe one outgoing request. Any field may be nil.
//
// OnRequestStart may return a derived request, for example with a new
// context; returning nil keeps the request unchanged. The request passed to
// OnRequestEnd and OnRequestException is the one that was sent.
type Hooks struct {
	OnRequestStart     func(req *http.Request) *http.Request
	OnRequestEnd       func(req *http.Request, resp *http.Response)
	OnRequestException func(req *http.Request, err error)
}

// Transport is an http.RoundTripper that runs hooks around a base
// RoundTripper. Start hooks run in order; end and exception hooks run in
// reverse order.
type Transport struct {
	base  http.RoundTripper
	hooks []Hooks
}

// NewTransport wraps base, or http.DefaultTransport when base is nil.
func NewTransport(base http.RoundTripper, hooks ...Hooks) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, hooks: hooks}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for _, h := range t.hooks {
		if h.OnRequestStart == nil {
			continue
		}
		if next := h.OnRequestStart(req); next != nil {
			req = next
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		for i := len(t.hooks) - 1; i >= 0; i-- {
			if h := t.hooks[i].OnRequestException; h != nil {
				h(req, err)
			}
		}
		return nil, err
	}

	for i := len(t.hooks) - 1; i >= 0; i-- {
		if h := t.hooks[i].OnRequestEnd; h != nil {
			h(req, resp)
		}
	}
	return resp, nil
}

// Unwrap returns the base RoundTripper.
func (t *Transport) Unwrap() http.RoundTripper {
	return t.base
}

// NewClient returns a copy of base, or of a zero client when base is nil,
// whose transport runs hooks.
func NewClient(base *http.Client, hooks ...Hooks) *http.Client {
	var c http.Client
	if base != nil {
		c = *base
	}
	c.Transport = NewTransport(c.Transport, hooks...)
	return &c
}

func spanName(req *http.Request) string {
	return req.Method + " " + req.URL.Path
}
