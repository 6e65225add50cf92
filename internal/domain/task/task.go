// Package task holds the task entity listed by the tasks screen.
package task

import "time"

// Task is one entry of the user's task list.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Created     time.Time `json:"created,omitempty"`
}

// Without returns a copy of tasks with the task id removed.
func Without(tasks []Task, id string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
