package docstore

import (
	"context"
	"sort"

	"github.com/jngsolar/storefront-backend/pkg/db/models"
	pkgerrors "github.com/jngsolar/storefront-backend/pkg/errors"
)

// CatalogRepository is the file-backed product repository. It mirrors
// the relational implementation's contract, including its typed
// not-found and conflict errors.
type CatalogRepository struct {
	store *Store
}

func NewCatalogRepository(store *Store) *CatalogRepository {
	return &CatalogRepository{store: store}
}

func (r *CatalogRepository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	r.store.view(func(doc *document) {
		products = make([]models.Product, len(doc.Products))
		copy(products, doc.Products)
	})
	sortProducts(products)
	return products, nil
}

func (r *CatalogRepository) ListFeatured(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	r.store.view(func(doc *document) {
		for _, p := range doc.Products {
			if p.Featured {
				products = append(products, p)
			}
		}
	})
	sortProducts(products)
	return products, nil
}

func (r *CatalogRepository) Find(ctx context.Context, id string) (*models.Product, error) {
	var found *models.Product
	r.store.view(func(doc *document) {
		for _, p := range doc.Products {
			if p.ID == id {
				clone := p
				found = &clone
				return
			}
		}
	})
	if found == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return found, nil
}

func (r *CatalogRepository) Create(ctx context.Context, product *models.Product) error {
	return r.store.update(func(doc *document) error {
		for _, p := range doc.Products {
			if p.ID == product.ID {
				return pkgerrors.New(pkgerrors.CodeConflict, "product already exists")
			}
		}
		if product.CreatedAt.IsZero() {
			product.CreatedAt = now()
		}
		product.UpdatedAt = product.CreatedAt
		doc.Products = append(doc.Products, *product)
		return nil
	})
}

func (r *CatalogRepository) Delete(ctx context.Context, id string) error {
	return r.store.update(func(doc *document) error {
		kept := doc.Products[:0]
		for _, p := range doc.Products {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		doc.Products = kept
		return nil
	})
}

func (r *CatalogRepository) Save(ctx context.Context, product *models.Product) error {
	return r.store.update(func(doc *document) error {
		for i := range doc.Products {
			if doc.Products[i].ID == product.ID {
				product.UpdatedAt = now()
				doc.Products[i] = *product
				return nil
			}
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	})
}

func (r *CatalogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	r.store.view(func(doc *document) {
		count = int64(len(doc.Products))
	})
	return count, nil
}

func sortProducts(products []models.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID < products[j].ID
		}
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
}
