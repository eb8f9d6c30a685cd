package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jngsolar/storefront-backend/api/controllers"
	"github.com/jngsolar/storefront-backend/api/middleware"
	cartsvc "github.com/jngsolar/storefront-backend/internal/cart"
	"github.com/jngsolar/storefront-backend/internal/catalog"
	chatsvc "github.com/jngsolar/storefront-backend/internal/chat"
	checkoutsvc "github.com/jngsolar/storefront-backend/internal/checkout"
	paymentsvc "github.com/jngsolar/storefront-backend/internal/payments"
	purchasesvc "github.com/jngsolar/storefront-backend/internal/purchases"
	"github.com/jngsolar/storefront-backend/pkg/config"
	"github.com/jngsolar/storefront-backend/pkg/logger"
)

// Deps bundles everything the router wires into handlers. Optional
// services (payments, for one) may be nil; their routes still exist
// and answer with a typed error.
type Deps struct {
	Catalog   catalog.Service
	Cart      cartsvc.Service
	Checkout  checkoutsvc.Service
	Purchases purchasesvc.Service
	Chat      chatsvc.Service
	Payments  paymentsvc.Service

	// readiness probes keyed by dependency name
	Pingers map[string]controllers.Pinger
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	session := middleware.Session(cfg.Session.CookieName, cfg.Session.CartTTL, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Pingers))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Catalog, logg))
			r.Get("/featured", controllers.ListFeaturedProducts(deps.Catalog, logg))
			r.Get("/{id}", controllers.GetProduct(deps.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(session)
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Post("/add", controllers.AddCartItem(deps.Cart, logg))
			r.Post("/update", controllers.UpdateCartItem(deps.Cart, logg))
			r.Post("/remove", controllers.RemoveCartItem(deps.Cart, logg))
		})

		r.With(session).Post("/checkout", controllers.Checkout(deps.Checkout, logg))
		r.Get("/purchases/{id}", controllers.GetPurchase(deps.Purchases, logg))
		r.Post("/chat", controllers.Chat(deps.Chat, logg))
		r.Get("/location", controllers.Location(cfg.Location))

		r.Route("/admin/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(deps.Catalog, logg))
			r.Delete("/{id}", controllers.AdminDeleteProduct(deps.Catalog, logg))
			r.Post("/{id}/feature", controllers.AdminToggleFeatured(deps.Catalog, logg))
		})
	})

	r.With(session).Post("/create-checkout-session", controllers.CreateCheckoutSession(deps.Payments, logg))

	return r
}
