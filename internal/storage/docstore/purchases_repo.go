package docstore

import (
	"context"

	"github.com/jngsolar/storefront-backend/internal/purchases"
	"github.com/jngsolar/storefront-backend/pkg/db/models"
	pkgerrors "github.com/jngsolar/storefront-backend/pkg/errors"
)

// PurchasesRepository is the file-backed purchase repository. ID
// assignment happens inside the store's update, so ids stay strictly
// increasing even under concurrent checkouts.
type PurchasesRepository struct {
	store *Store
}

func NewPurchasesRepository(store *Store) *PurchasesRepository {
	return &PurchasesRepository{store: store}
}

func (r *PurchasesRepository) Create(ctx context.Context, purchase *models.Purchase, items []models.PurchaseItem) error {
	return r.store.update(func(doc *document) error {
		purchase.ID = nextPurchaseID(doc)
		if purchase.CreatedAt.IsZero() {
			purchase.CreatedAt = now()
		}
		doc.Purchases = append(doc.Purchases, *purchase)

		itemID := nextItemID(doc)
		for i := range items {
			items[i].ID = itemID
			items[i].PurchaseID = purchase.ID
			if items[i].CreatedAt.IsZero() {
				items[i].CreatedAt = purchase.CreatedAt
			}
			doc.PurchaseItems = append(doc.PurchaseItems, items[i])
			itemID++
		}
		return nil
	})
}

func (r *PurchasesRepository) Find(ctx context.Context, id int64) (*purchases.Record, error) {
	var record *purchases.Record
	r.store.view(func(doc *document) {
		for _, p := range doc.Purchases {
			if p.ID == id {
				record = &purchases.Record{Purchase: p}
				break
			}
		}
		if record == nil {
			return
		}
		for _, item := range doc.PurchaseItems {
			if item.PurchaseID == id {
				record.Items = append(record.Items, item)
			}
		}
	})
	if record == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase not found")
	}
	return record, nil
}
