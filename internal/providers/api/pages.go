package api

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Page fetches the raw markdown at rawURL. Absolute URLs bypass the API base URL.
func (c *Client) Page(ctx context.Context, rawURL string) (string, error) {
	resp, err := c.execute(ctx, http.MethodGet, rawURL, nil, func(r *resty.Request) {
		r.SetHeader("Accept", "text/markdown, text/plain, */*")
	})
	if err != nil {
		return "", err
	}
	return resp.String(), nil
}
