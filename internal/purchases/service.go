package purchases

import (
	"context"

	"github.com/jngsolar/storefront-backend/pkg/errors"
)

// Service exposes the purchase read model. Writes happen through the
// checkout flow, never directly.
type Service interface {
	Get(ctx context.Context, id int64) (*Record, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New(errors.CodeInternal, "purchases: repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Record, error) {
	if id <= 0 {
		return nil, errors.New(errors.CodeValidation, "purchase id must be positive")
	}
	return s.repo.Find(ctx, id)
}
