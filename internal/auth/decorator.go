package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/loganlanou/ciber-client/internal/session"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	MIMEApplicationJSON = "application/json"
)

// Intent describes the body an outgoing request carries.
type Intent int

const (
	NoBody Intent = iota
	JSONBody
	MultipartBody
)

// Decorator produces the headers that authenticate a request as the
// locally stored session.
type Decorator struct {
	sessions *session.Manager
}

func NewDecorator(sessions *session.Manager) *Decorator {
	return &Decorator{sessions: sessions}
}

// HeadersFor returns the bearer and content-type headers for the current
// session. Without a session the result is empty and the request goes out
// unauthenticated. A corrupt stored session is an error, never anonymous.
func (d *Decorator) HeadersFor(ctx context.Context, intent Intent) (http.Header, error) {
	headers := http.Header{}

	s, err := d.sessions.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("build auth headers: %w", err)
	}
	if s == nil {
		return headers, nil
	}

	headers.Set(HeaderAuthorization, "Bearer "+s.Token)
	if intent != MultipartBody {
		headers.Set(HeaderContentType, MIMEApplicationJSON)
	}
	return headers, nil
}

// Apply sets the headers from HeadersFor on req.
func (d *Decorator) Apply(ctx context.Context, req *http.Request, intent Intent) error {
	headers, err := d.HeadersFor(ctx, intent)
	if err != nil {
		return err
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}
	return nil
}

// Session returns the current session, nil when anonymous.
func (d *Decorator) Session(ctx context.Context) (*session.Session, error) {
	return d.sessions.Read(ctx)
}
