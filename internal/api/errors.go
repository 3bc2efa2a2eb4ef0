package api

import "fmt"

// Error is a non-2xx response from the remote store. Detail carries the
// server's error message when the body was JSON with a detail field.
type Error struct {
	Endpoint string
	Status   int
	Detail   string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s failed with status code: %d", e.Endpoint, e.Status)
}
