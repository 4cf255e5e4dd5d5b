package http

import "net/http"

type authTransport struct {
	header    string
	token     string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	if t.token != "" {
		reqCopy.Header.Set(t.header, t.token)
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithAuthToken injects "Authorization: Bearer <token>" into every request.
func WithAuthToken(token string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{
			header:    "Authorization",
			token:     "Bearer " + token,
			transport: rt,
		}
	})
}

// WithSignatureHeader injects a static shared-secret header, used to let
// webhook receivers verify the sender.
func WithSignatureHeader(header, secret string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{
			header:    header,
			token:     secret,
			transport: rt,
		}
	})
}
