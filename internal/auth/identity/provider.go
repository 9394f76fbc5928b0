// Package identity abstracts the external identity provider that verifies
// credentials, issues sessions and decides the session cookies.
//
// Every call takes the incoming request headers explicitly. The provider reads
// them (cookies, origin, user agent) and answers with the cookies that must be
// set on the outgoing response, carried in Response.Cookies.
package identity

import (
	"context"
	"errors"
	"net/http"
	"time"
)

//go:generate mockgen -source=provider.go -destination=mocks/mocks.go -package=mocks Provider

// Provider is the identity-provider API consumed by the auth service.
type Provider interface {
	// SignUpEmail registers a user. A nil response with a nil error means the
	// provider accepted the call but returned nothing.
	SignUpEmail(ctx context.Context, in SignUpEmailInput, headers http.Header) (*Response, error)
	// SignInEmail verifies credentials. Logical rejections come back as a
	// Failure outcome; errors are reserved for failed calls.
	SignInEmail(ctx context.Context, in SignInEmailInput, headers http.Header) (SignInOutcome, error)
	// SignOut ends the session identified by the headers' cookies.
	SignOut(ctx context.Context, headers http.Header) (*Response, error)
}

// Errors returned (wrapped) by provider implementations.
var (
	ErrProviderRejected    = errors.New("identity provider rejected the request")
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

type SignUpEmailInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type SignInEmailInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the provider's view of an account.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	EmailVerified bool      `json:"emailVerified"`
	Image         string    `json:"image,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Response is a successful provider payload. Cookies are never serialised;
// the transport writes them onto the outgoing HTTP response.
type Response struct {
	Token    string         `json:"token,omitempty"`
	Redirect bool           `json:"redirect,omitempty"`
	URL      string         `json:"url,omitempty"`
	Success  bool           `json:"success,omitempty"`
	User     *User          `json:"user,omitempty"`
	Cookies  []*http.Cookie `json:"-"`
}

// SignInOutcome is either Success or Failure.
type SignInOutcome interface {
	isSignInOutcome()
}

// Success carries the provider payload of an accepted sign-in.
type Success struct {
	Response *Response
}

// Failure is a sign-in the provider refused. Message is empty when the
// provider gave no textual reason.
type Failure struct {
	Message string
}

func (Success) isSignInOutcome() {}
func (Failure) isSignInOutcome() {}
