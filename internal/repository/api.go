package repository

import (
	"context"

	"github.com/noah-isme/hrms-lite-console/pkg/hrapi"
)

// apiClient is the subset of *hrapi.Client the repositories rely on.
type apiClient interface {
	Do(ctx context.Context, req hrapi.Request, dest interface{}) error
}
