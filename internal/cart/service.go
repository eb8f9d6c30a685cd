package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jngsolar/storefront-backend/pkg/db/models"
	"github.com/jngsolar/storefront-backend/pkg/errors"
)

// View is the cart as returned to callers: the current lines plus the
// recomputed total.
type View struct {
	Items []Line          `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type Service interface {
	Get(ctx context.Context, sessionID string) (*View, error)
	Add(ctx context.Context, sessionID, productID string, qty int) (*View, error)
	Update(ctx context.Context, sessionID, productID string, qty int) (*View, error)
	Remove(ctx context.Context, sessionID, productID string) (*View, error)
}

type productLoader interface {
	Get(ctx context.Context, id string) (*models.Product, error)
}

type service struct {
	store    Store
	products productLoader
}

func NewService(store Store, products productLoader) (Service, error) {
	if store == nil {
		return nil, errors.New(errors.CodeInternal, "cart: store is required")
	}
	if products == nil {
		return nil, errors.New(errors.CodeInternal, "cart: product loader is required")
	}
	return &service{store: store, products: products}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*View, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	lines, err := s.store.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return buildView(lines), nil
}

func (s *service) Add(ctx context.Context, sessionID, productID string, qty int) (*View, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	if productID == "" {
		return nil, errors.New(errors.CodeValidation, "product id is required")
	}
	qty = clampQty(qty)

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	lines, err := s.store.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, Line{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Qty:       qty,
		})
	}

	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	return buildView(lines), nil
}

func (s *service) Update(ctx context.Context, sessionID, productID string, qty int) (*View, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	if productID == "" {
		return nil, errors.New(errors.CodeValidation, "product id is required")
	}
	qty = clampQty(qty)

	lines, err := s.store.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Qty = qty
			found = true
			break
		}
	}
	if !found {
		return nil, errors.New(errors.CodeNotFound, "product is not in the cart")
	}

	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	return buildView(lines), nil
}

func (s *service) Remove(ctx context.Context, sessionID, productID string) (*View, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	if productID == "" {
		return nil, errors.New(errors.CodeValidation, "product id is required")
	}

	lines, err := s.store.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := lines[:0]
	for _, line := range lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}

	// Removing an absent product is a no-op, but we still persist so the
	// store's TTL is refreshed alongside every other mutation.
	if err := s.store.Save(ctx, sessionID, kept); err != nil {
		return nil, err
	}
	return buildView(kept), nil
}

func requireSession(sessionID string) error {
	if sessionID == "" {
		return errors.New(errors.CodeValidation, "session id is required")
	}
	return nil
}

// clampQty keeps quantities at one or more. Zero and negative requests are
// treated as "at least one" rather than rejected.
func clampQty(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

func buildView(lines []Line) *View {
	if lines == nil {
		lines = []Line{}
	}
	return &View{Items: lines, Total: Total(lines)}
}
