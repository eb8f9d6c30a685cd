package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jngsolar/storefront-backend/pkg/db/models"
	pkgerrors "github.com/jngsolar/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service exposes catalog browsing plus the admin mutations.
type Service interface {
	List(ctx context.Context) ([]models.Product, error)
	Featured(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	ToggleFeatured(ctx context.Context, id string) (*models.Product, error)
	EnsureSeed(ctx context.Context) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Featured    bool
}

type service struct {
	repo Repository
}

// NewService builds the catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	return s.repo.List(ctx)
}

func (s *service) Featured(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListFeatured(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*models.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	return s.repo.Find(ctx, id)
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must not be negative")
	}

	product := &models.Product{
		ID:          strings.TrimSpace(input.ID),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		Featured:    input.Featured,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	return s.repo.Delete(ctx, id)
}

// ToggleFeatured flips the featured flag. Unknown ids are a no-op and
// return a nil product.
func (s *service) ToggleFeatured(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.Find(ctx, id)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}

	product.Featured = !product.Featured
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// EnsureSeed loads the demo catalog exactly once, only when the store is
// empty.
func (s *service) EnsureSeed(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, product := range seedProducts() {
		p := product
		if err := s.repo.Create(ctx, &p); err != nil {
			return err
		}
	}
	return nil
}
