package checkout

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jngsolar/storefront-backend/internal/cart"
	"github.com/jngsolar/storefront-backend/internal/purchases"
	"github.com/jngsolar/storefront-backend/pkg/db/models"
	"github.com/jngsolar/storefront-backend/pkg/errors"
	"github.com/jngsolar/storefront-backend/pkg/logger"
)

// Input carries the buyer contact details submitted with a checkout.
type Input struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required"`
}

// Receipt is the checkout confirmation returned to the buyer.
type Receipt struct {
	Message    string          `json:"message"`
	PurchaseID int64           `json:"purchaseId"`
	Total      decimal.Decimal `json:"total"`
}

type Service interface {
	Checkout(ctx context.Context, sessionID string, input Input) (*Receipt, error)
}

type service struct {
	carts     cart.Store
	purchases purchases.Repository
	logg      *logger.Logger
}

func NewService(carts cart.Store, repo purchases.Repository, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, errors.New(errors.CodeInternal, "checkout: cart store is required")
	}
	if repo == nil {
		return nil, errors.New(errors.CodeInternal, "checkout: purchase repository is required")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "checkout: logger is required")
	}
	return &service{carts: carts, purchases: repo, logg: logg}, nil
}

// Checkout finalizes the session's cart. The cart is taken atomically
// before the purchase is written, so two concurrent checkouts on the
// same session cannot both produce an order; if the write fails the
// cart is restored so the buyer can retry.
func (s *service) Checkout(ctx context.Context, sessionID string, input Input) (*Receipt, error) {
	if sessionID == "" {
		return nil, errors.New(errors.CodeValidation, "session id is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	lines, err := s.carts.Take(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.New(errors.CodeValidation, "cart is empty")
	}

	purchase := &models.Purchase{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Address: strings.TrimSpace(input.Address),
		Total:   cart.Total(lines),
	}
	items := make([]models.PurchaseItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.PurchaseItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Qty:       line.Qty,
			Image:     line.Image,
		})
	}

	if err := s.purchases.Create(ctx, purchase, items); err != nil {
		if restoreErr := s.carts.Save(ctx, sessionID, lines); restoreErr != nil {
			s.logg.Error(ctx, "restoring cart after failed checkout", restoreErr)
		}
		return nil, err
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"purchase_id": purchase.ID,
		"total":       purchase.Total.String(),
		"items":       len(items),
	})
	s.logg.Info(logCtx, "purchase completed")

	return &Receipt{
		Message:    "Purchase complete",
		PurchaseID: purchase.ID,
		Total:      purchase.Total,
	}, nil
}

func validateInput(input Input) error {
	details := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "name is required"
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		details["email"] = "email is required"
	} else if !strings.Contains(email, "@") {
		details["email"] = "email is invalid"
	}
	if strings.TrimSpace(input.Address) == "" {
		details["address"] = "address is required"
	}
	if len(details) > 0 {
		return errors.New(errors.CodeValidation, "invalid checkout details").WithDetails(details)
	}
	return nil
}
