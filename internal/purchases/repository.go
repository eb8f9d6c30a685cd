package purchases

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jngsolar/storefront-backend/pkg/db/models"
	pkgerrors "github.com/jngsolar/storefront-backend/pkg/errors"
)

// Record pairs a purchase with the item snapshots captured at checkout.
type Record struct {
	Purchase models.Purchase       `json:"purchase"`
	Items    []models.PurchaseItem `json:"items"`
}

// Repository defines purchase persistence. Create must write the
// purchase and all of its items atomically: either everything lands or
// nothing does.
type Repository interface {
	Create(ctx context.Context, purchase *models.Purchase, items []models.PurchaseItem) error
	Find(ctx context.Context, id int64) (*Record, error)
}

// GormRepository is the relational implementation of Repository.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository builds a repository tied to the provided GORM DB.
func NewGormRepository(conn *gorm.DB) *GormRepository {
	return &GormRepository{db: conn}
}

func (r *GormRepository) Create(ctx context.Context, purchase *models.Purchase, items []models.PurchaseItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(purchase).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].PurchaseID = purchase.ID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recording purchase")
	}
	return nil
}

func (r *GormRepository) Find(ctx context.Context, id int64) (*Record, error) {
	var purchase models.Purchase
	if err := r.db.WithContext(ctx).First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading purchase")
	}

	var items []models.PurchaseItem
	if err := r.db.WithContext(ctx).Where("purchase_id = ?", id).Order("id").Find(&items).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading purchase items")
	}

	return &Record{Purchase: purchase, Items: items}, nil
}
