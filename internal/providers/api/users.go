package api

import (
	"bytes"
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/weareopensource/waos-go/internal/domain/user"
)

// envelope wraps the data of user and task endpoints.
type envelope[T any] struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (user.User, error) {
	res, err := do[envelope[user.User]](ctx, c, http.MethodGet, "/users/me", nil)
	return res.Data, err
}

// Update saves the editable fields of u. The password is never sent.
func (c *Client) Update(ctx context.Context, u user.User) (user.User, error) {
	res, err := do[envelope[user.User]](ctx, c, http.MethodPut, "/users", func(r *resty.Request) {
		r.SetBody(u.Public())
	})
	return res.Data, err
}

// UpdateAvatar uploads data as the user's avatar. Empty name or mime are
// derived from the content.
func (c *Client) UpdateAvatar(ctx context.Context, data []byte, part, name, mime string) (user.User, error) {
	if part == "" {
		part = user.AvatarPart
	}
	if name == "" || mime == "" {
		n, m := user.AvatarFile(data)
		if name == "" {
			name = n
		}
		if mime == "" {
			mime = m
		}
	}
	res, err := do[envelope[user.User]](ctx, c, http.MethodPost, "/users/avatar", func(r *resty.Request) {
		r.SetMultipartField(part, name, mime, bytes.NewReader(data))
	})
	return res.Data, err
}

// DeleteAvatar removes the user's avatar.
func (c *Client) DeleteAvatar(ctx context.Context) (user.User, error) {
	res, err := do[envelope[user.User]](ctx, c, http.MethodDelete, "/users/avatar", nil)
	return res.Data, err
}
