package session

import (
	"net/url"

	"github.com/lumen-web/lumen/internal/loader"
)

// LoadOption configures one load operation.
type LoadOption func(*loadOptions)

type loadOptions struct {
	addr      *url.URL
	mediaType string
	hook      func(*loader.Response)
}

// WithAddress sets the address recorded with the installed document.
// LoadURL ignores this and records the fetched address.
func WithAddress(u *url.URL) LoadOption {
	return func(o *loadOptions) { o.addr = u }
}

// WithMediaType declares the content's media type, bypassing sniffing
// (for LoadContent) or the response Content-Type (for LoadURL).
func WithMediaType(mediaType string) LoadOption {
	return func(o *loadOptions) { o.mediaType = mediaType }
}

// WithResponseHook observes the raw response before the session
// consumes it, for header inspection and similar side effects.
func WithResponseHook(fn func(*loader.Response)) LoadOption {
	return func(o *loadOptions) { o.hook = fn }
}

func applyOptions(opts []LoadOption) loadOptions {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
