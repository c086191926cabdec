package chi

import (
	"net/http"

	gochi "github.com/go-chi/chi/v5"
)

// APIPrefix is the mount point of the JSON API. Health and metrics stay at
// the root for health checkers and scrapers.
const APIPrefix = "/api/v1"

// Handler registers every route of s on base and returns it.
func Handler(s *Server, base gochi.Router) http.Handler {
	base.Get("/health", s.HealthCheck)
	base.Get("/metrics", s.Metrics)

	base.Route(APIPrefix, func(r gochi.Router) {
		r.Get("/products", s.ListProducts)
		r.Get("/products/top-picks", s.TopPicks)
		r.Get("/products/{id}", s.GetProduct)
		r.Get("/products/{id}/related", s.RelatedProducts)
		r.Get("/categories", s.ListCategories)
		r.Get("/regions/detect", s.DetectRegion)
		r.Post("/auth/sign-in", s.SignIn)
		r.Post("/auth/verify", s.Verify)

		r.Group(func(r gochi.Router) {
			r.Use(SessionMiddleware(s.auth))

			r.Get("/session", s.GetSession)
			r.Delete("/session", s.DeleteSession)
			r.Get("/cart", s.GetCart)
			r.Delete("/cart", s.ClearCart)
			r.Put("/cart/region", s.SetCartRegion)
			r.Post("/cart/items/{id}", s.AddCartItem)
			r.Patch("/cart/items/{id}", s.ChangeCartItem)
			r.Delete("/cart/items/{id}", s.RemoveCartItem)
			r.Post("/orders", s.PlaceOrder)
			r.Get("/wishlist", s.GetWishlist)
			r.Get("/wishlist/{id}", s.GetWishlistItem)
			r.Put("/wishlist/{id}", s.AddWishlistItem)
			r.Delete("/wishlist/{id}", s.RemoveWishlistItem)

			r.Route("/admin", func(r gochi.Router) {
				r.Use(AdminMiddleware(s.auth))

				r.Get("/dashboard", s.GetDashboard)
				r.Get("/products", s.ListAdminProducts)
				r.Post("/products", s.CreateProduct)
				r.Put("/products/{id}", s.UpdateProduct)
				r.Delete("/products/{id}", s.DeleteProduct)
				r.Post("/products/{id}/visibility", s.SetProductVisibility)
				r.Get("/orders", s.ListOrders)
				r.Put("/orders/{id}/status", s.UpdateOrderStatus)
				r.Get("/sales", s.GetSales)
			})
		})
	})

	base.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	base.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})
	return base
}
