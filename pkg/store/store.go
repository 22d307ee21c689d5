package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goliatone/go-draftforms/pkg/draft"
)

// DraftStore is the remote persistence boundary. All three operations may
// fail with an error carrying a human-readable message, which the lifecycle
// controller surfaces verbatim in status text.
type DraftStore interface {
	FetchDraft(ctx context.Context, id int) (*draft.Draft, error)
	SaveDraft(ctx context.Context, d *draft.Draft) (*draft.Draft, error)
	PublishDraft(ctx context.Context, d *draft.Draft) (*draft.Draft, error)
}

// HTTPError exposes an HTTP status code alongside the error message.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError wraps a failure with the HTTP status that produced it. With no
// underlying error the message is "Error code: <n>", the form surfaced to
// users on fetch failures.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("Error code: %d", e.StatusCode())
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}
