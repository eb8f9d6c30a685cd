package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jngsolar/storefront-backend/pkg/db/models"
	"github.com/jngsolar/storefront-backend/pkg/errors"
)

type stubLoader struct {
	products map[string]*models.Product
}

func (s *stubLoader) Get(_ context.Context, id string) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, errors.New(errors.CodeNotFound, "product not found")
	}
	return p, nil
}

func newTestService(t *testing.T) (Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	loader := &stubLoader{products: map[string]*models.Product{
		"p1": {ID: "p1", Name: "Solar Panel 320W", Price: decimal.RequireFromString("189.00"), Image: "/images/p1.jpg"},
		"p3": {ID: "p3", Name: "4K Security Camera", Price: decimal.RequireFromString("129.00"), Image: "/images/p3.jpg"},
	}}
	svc, err := NewService(store, loader)
	require.NoError(t, err)
	return svc, store
}

func TestNewServiceRequiresDeps(t *testing.T) {
	if _, err := NewService(nil, &stubLoader{}); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := NewService(NewMemoryStore(), nil); err == nil {
		t.Fatal("expected error for nil product loader")
	}
}

func TestAddMergesQuantities(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess-1", "p1", 2)
	require.NoError(t, err)

	view, err := svc.Add(ctx, "sess-1", "p1", 3)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Qty)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("945.00")), "total = %s", view.Total)
}

func TestAddUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(context.Background(), "sess-1", "nope", 1)
	appErr := errors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeNotFound, appErr.Code())
}

func TestAddClampsQuantity(t *testing.T) {
	svc, _ := newTestService(t)

	view, err := svc.Add(context.Background(), "sess-1", "p1", -4)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Items[0].Qty)
}

func TestUpdateClampsToOne(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess-1", "p1", 3)
	require.NoError(t, err)

	view, err := svc.Update(ctx, "sess-1", "p1", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Items[0].Qty)
}

func TestUpdateMissingLine(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), "sess-1", "p1", 2)
	appErr := errors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeNotFound, appErr.Code())
}

func TestRemoveIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess-1", "p1", 1)
	require.NoError(t, err)

	view, err := svc.Remove(ctx, "sess-1", "p1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	view, err = svc.Remove(ctx, "sess-1", "p1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}

func TestTotalAcrossLines(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess-1", "p1", 2)
	require.NoError(t, err)
	view, err := svc.Add(ctx, "sess-1", "p3", 1)
	require.NoError(t, err)

	// 189 * 2 + 129
	assert.True(t, view.Total.Equal(decimal.RequireFromString("507.00")), "total = %s", view.Total)
}

func TestSessionsAreIsolated(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess-a", "p1", 1)
	require.NoError(t, err)

	view, err := svc.Get(ctx, "sess-b")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestGetRequiresSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "")
	appErr := errors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeValidation, appErr.Code())
}
