package payments

import (
	"context"

	"github.com/stripe/stripe-go/v84"

	"github.com/jngsolar/storefront-backend/internal/cart"
	"github.com/jngsolar/storefront-backend/pkg/config"
	"github.com/jngsolar/storefront-backend/pkg/errors"
)

// gateway is the slice of the Stripe client the service needs.
type gateway interface {
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error)
}

// Session is the hosted-checkout redirect handed back to the storefront.
type Session struct {
	URL string `json:"url"`
}

// Service turns a session cart into a hosted gateway checkout. It is a
// pass-through: fulfillment still happens through the regular checkout
// flow, not through gateway webhooks.
type Service interface {
	CreateCheckoutSession(ctx context.Context, sessionID string) (*Session, error)
}

type service struct {
	carts      cart.Store
	gateway    gateway
	successURL string
	cancelURL  string
}

func NewService(carts cart.Store, gw gateway, cfg config.StripeConfig) (Service, error) {
	if carts == nil {
		return nil, errors.New(errors.CodeInternal, "payments: cart store is required")
	}
	if gw == nil {
		return nil, errors.New(errors.CodeInternal, "payments: gateway is required")
	}
	return &service{
		carts:      carts,
		gateway:    gw,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
	}, nil
}

func (s *service) CreateCheckoutSession(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, errors.New(errors.CodeValidation, "session id is required")
	}

	lines, err := s.carts.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.New(errors.CodeValidation, "cart is empty")
	}

	items := make([]*stripe.CheckoutSessionCreateLineItemParams, 0, len(lines))
	for _, line := range lines {
		productData := &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
			Name: stripe.String(line.Name),
		}
		if line.Image != "" {
			productData.Images = stripe.StringSlice([]string{line.Image})
		}
		items = append(items, &stripe.CheckoutSessionCreateLineItemParams{
			PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
				Currency:    stripe.String(string(stripe.CurrencyUSD)),
				ProductData: productData,
				// Stripe wants integer cents
				UnitAmount: stripe.Int64(line.Price.Shift(2).Round(0).IntPart()),
			},
			Quantity: stripe.Int64(int64(line.Qty)),
		})
	}

	params := &stripe.CheckoutSessionCreateParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  items,
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "creating gateway checkout session")
	}
	return &Session{URL: session.URL}, nil
}
