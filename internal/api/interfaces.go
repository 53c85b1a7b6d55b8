package api

import (
	"context"

	"github.com/guptabinit/listform/internal/payload"
	"github.com/guptabinit/listform/internal/repository"
)

// formQuerierBase defines the interface for form configuration access needed by the API.
type formQuerierBase interface {
	GetForm(ctx context.Context, slug string) (*repository.FormConfig, error)
}

// submissionStoreBase defines the interface for submission persistence needed by the API.
type submissionStoreBase interface {
	Insert(ctx context.Context, formID int64, clientIP string, parts []payload.Pair) (int64, error)
}
