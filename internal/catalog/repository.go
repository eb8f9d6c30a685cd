package catalog

import (
	"context"
	"errors"

	"github.com/jngsolar/storefront-backend/pkg/db"
	"github.com/jngsolar/storefront-backend/pkg/db/models"
	pkgerrors "github.com/jngsolar/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

// Repository defines catalog persistence. Both backends implement this
// contract so service callers stay backend-agnostic; implementations
// return typed errors (NotFound, Conflict) rather than driver errors.
type Repository interface {
	List(ctx context.Context) ([]models.Product, error)
	ListFeatured(ctx context.Context) ([]models.Product, error)
	Find(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	Save(ctx context.Context, product *models.Product) error
	Count(ctx context.Context) (int64, error)
}

// GormRepository is the relational implementation of Repository.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository builds a repository tied to the provided GORM DB.
func NewGormRepository(conn *gorm.DB) *GormRepository {
	return &GormRepository{db: conn}
}

func (r *GormRepository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&products).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return products, nil
}

func (r *GormRepository) ListFeatured(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("featured = ?", true).Order("created_at, id").Find(&products).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing featured products")
	}
	return products, nil
}

func (r *GormRepository) Find(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return &product, nil
}

func (r *GormRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		if db.IsUniqueViolation(err, "") || errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgerrors.New(pkgerrors.CodeConflict, "product id already exists")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	return nil
}

func (r *GormRepository) Save(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving product")
	}
	return nil
}

func (r *GormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting products")
	}
	return count, nil
}
