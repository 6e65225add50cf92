package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/weareopensource/waos-go/internal/domain/task"
)

// ListTasks returns the user's tasks.
func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	res, err := do[envelope[[]task.Task]](ctx, c, http.MethodGet, "/tasks", nil)
	return res.Data, err
}

// DeleteTask deletes one task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, err := do[envelope[task.Task]](ctx, c, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil)
	return err
}
