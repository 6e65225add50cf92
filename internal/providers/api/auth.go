package api

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/weareopensource/waos-go/internal/domain/user"
)

// Status is the payload of endpoints that only acknowledge.
type Status struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn authenticates with email and password. On success the session
// cookie is kept by the client.
func (c *Client) SignIn(ctx context.Context, email, password string) (user.Session, error) {
	return do[user.Session](ctx, c, http.MethodPost, "/auth/signin", func(r *resty.Request) {
		r.SetBody(credentials{Email: email, Password: password})
	})
}

// SignUp creates an account and signs it in.
func (c *Client) SignUp(ctx context.Context, u user.User) (user.Session, error) {
	return do[user.Session](ctx, c, http.MethodPost, "/auth/signup", func(r *resty.Request) {
		r.SetBody(u)
	})
}

// Forgot asks the API to send a password reset link to email and returns
// its confirmation message.
func (c *Client) Forgot(ctx context.Context, email string) (string, error) {
	res, err := do[Status](ctx, c, http.MethodPost, "/auth/forgot", func(r *resty.Request) {
		r.SetBody(map[string]string{"email": email})
	})
	return res.Message, err
}
