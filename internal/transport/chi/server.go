package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dbhs-alumni/merchstore/internal/domain"
	"github.com/dbhs-alumni/merchstore/internal/domain/region"
	"github.com/dbhs-alumni/merchstore/internal/domain/search/request"
	"github.com/dbhs-alumni/merchstore/internal/logger"
	"github.com/dbhs-alumni/merchstore/internal/usecase/admin"
	healthuc "github.com/dbhs-alumni/merchstore/internal/usecase/health"
)

const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the storefront, member and admin JSON API.
type Server struct {
	catalog       Catalog
	search        Searcher
	checkout      Checkout
	wishlist      Wishlist
	auth          Auth
	admin         Admin
	health        Health
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog Catalog,
	search Searcher,
	checkout Checkout,
	wishlist Wishlist,
	auth Auth,
	admin Admin,
	health Health,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:  catalog,
		search:   search,
		checkout: checkout,
		wishlist: wishlist,
		auth:     auth,
		admin:    admin,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, ErrorCodeProductNotFound),
		sentinelHandler(domain.ErrOrderNotFound, http.StatusNotFound, ErrorCodeOrderNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, ErrorCodeAlreadyExists),
		sentinelHandler(domain.ErrUnauthenticated, http.StatusUnauthorized, ErrorCodeUnauthenticated),
		sentinelHandler(domain.ErrUnverified, http.StatusUnauthorized, ErrorCodeUnverified),
		sentinelHandler(domain.ErrInvalidCode, http.StatusUnauthorized, ErrorCodeInvalidCode),
		sentinelHandler(domain.ErrForbidden, http.StatusForbidden, ErrorCodeForbidden),
		sentinelHandler(domain.ErrNotAlumni, http.StatusForbidden, ErrorCodeNotAlumni),
		sentinelHandler(domain.ErrEmptyCart, http.StatusBadRequest, ErrorCodeEmptyCart),
	}
	return s
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// --- Storefront ---

// ListProducts handles GET /products: storefront search with fallback.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	req, err := request.New(
		deref(params.Q), deref(params.Category), request.Sort(deref(params.Sort)), deref(params.Limit),
	)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchToAPI(&res))
}

// GetProduct handles GET /products/{id}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	p, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, productToAPI(&p))
}

// TopPicks handles GET /products/top-picks.
func (s *Server) TopPicks(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.TopPicks(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ProductListResponse{Items: productsToAPI(items)})
}

// RelatedProducts handles GET /products/{id}/related.
func (s *Server) RelatedProducts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	params, err := bindRelatedParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	items, err := s.catalog.Related(r.Context(), id, deref(params.Limit))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ProductListResponse{Items: productsToAPI(items)})
}

// ListCategories handles GET /categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.Categories(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CategoriesResponse{Items: items})
}

// DetectRegion handles GET /regions/detect. Coordinates win over locale and
// timezone when they fall inside a known region.
func (s *Server) DetectRegion(w http.ResponseWriter, r *http.Request) {
	params, err := bindRegionParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	locale := deref(params.Locale)
	if locale == "" {
		locale = acceptLanguage(r)
	}
	detected := region.Detect(locale, deref(params.TZ))
	if params.Lat != nil && params.Lon != nil {
		if byCoords, ok := region.FromCoords(*params.Lat, *params.Lon); ok {
			detected = byCoords
		}
	}

	all := region.All()
	available := make([]RegionResponse, len(all))
	for i, reg := range all {
		available[i] = regionToAPI(reg)
	}
	writeJSON(w, http.StatusOK, RegionDetectResponse{Region: regionToAPI(detected), Available: available})
}

// --- Sign-in ---

// SignIn handles POST /auth/sign-in.
func (s *Server) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.auth.BeginSignIn(r.Context(), req.Email); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "code_sent"})
}

// Verify handles POST /auth/verify.
func (s *Server) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := s.auth.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	resp := sessionToAPI(&sess, s.isAdmin(r, sess.Email))
	resp.Token = sess.Token
	writeJSON(w, http.StatusOK, resp)
}

// GetSession handles GET /session.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, sessionToAPI(&sess, s.isAdmin(r, sess.Email)))
}

// DeleteSession handles DELETE /session.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	if err := s.auth.SignOut(r.Context(), sess.Token); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) isAdmin(r *http.Request, email string) bool {
	err := s.auth.RequireAdmin(r.Context(), email)
	if err != nil && !errors.Is(err, domain.ErrForbidden) {
		s.log(r).Warn("admin check failed", zap.Error(err))
	}
	return err == nil
}

// --- Cart & checkout ---

// GetWishlist handles GET /wishlist.
func (s *Server) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	items, err := s.wishlist.List(r.Context(), sess.Email)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ProductListResponse{Items: productsToAPI(items)})
}

// GetWishlistItem handles GET /wishlist/{id}.
func (s *Server) GetWishlistItem(w http.ResponseWriter, r *http.Request) {
	s.wishlistItem(w, r, nil)
}

// AddWishlistItem handles PUT /wishlist/{id}.
func (s *Server) AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	s.wishlistItem(w, r, s.wishlist.Add)
}

// RemoveWishlistItem handles DELETE /wishlist/{id}.
func (s *Server) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	s.wishlistItem(w, r, s.wishlist.Remove)
}

// wishlistItem applies change (if any) and answers with the saved state.
func (s *Server) wishlistItem(w http.ResponseWriter, r *http.Request, change func(ctx context.Context, email, id string) error) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	sess, _ := SessionFromContext(r.Context())
	if change != nil {
		if err := change(r.Context(), sess.Email, id); err != nil {
			s.handleDomainError(w, r, err)
			return
		}
	}
	saved, err := s.wishlist.Contains(r.Context(), sess.Email, id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, WishlistItemResponse{ID: id, Saved: saved})
}

// GetCart handles GET /cart.
func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	v, err := s.checkout.View(r.Context(), sess.Email)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cartToAPI(&v))
}

// AddCartItem handles POST /cart/items/{id}.
func (s *Server) AddCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	sess, _ := SessionFromContext(r.Context())
	v, err := s.checkout.AddItem(r.Context(), sess.Email, id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cartToAPI(&v))
}

// ChangeCartItem handles PATCH /cart/items/{id}.
func (s *Server) ChangeCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	var req QtyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Delta == 0 {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "delta must be non-zero")
		return
	}
	sess, _ := SessionFromContext(r.Context())
	v, err := s.checkout.ChangeQty(r.Context(), sess.Email, id, req.Delta)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cartToAPI(&v))
}

// RemoveCartItem handles DELETE /cart/items/{id}.
func (s *Server) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	sess, _ := SessionFromContext(r.Context())
	v, err := s.checkout.RemoveItem(r.Context(), sess.Email, id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cartToAPI(&v))
}

// ClearCart handles DELETE /cart.
func (s *Server) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	if err := s.checkout.Clear(r.Context(), sess.Email); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetCartRegion handles PUT /cart/region.
func (s *Server) SetCartRegion(w http.ResponseWriter, r *http.Request) {
	var req RegionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, _ := SessionFromContext(r.Context())
	if _, err := s.checkout.SetRegion(r.Context(), sess.Email, req.Region); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	v, err := s.checkout.View(r.Context(), sess.Email)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cartToAPI(&v))
}

// PlaceOrder handles POST /orders.
func (s *Server) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	o, err := s.checkout.PlaceOrder(r.Context(), sess.Email)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, orderToAPI(&o))
}

// --- Admin ---

// GetDashboard handles GET /admin/dashboard.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.admin.Dashboard(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardToAPI(&d))
}

// ListAdminProducts handles GET /admin/products.
func (s *Server) ListAdminProducts(w http.ResponseWriter, r *http.Request) {
	params, err := bindAdminProductParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	items, err := s.admin.Products(r.Context(), admin.ProductFilter{
		Text:       deref(params.Q),
		Category:   deref(params.Category),
		Visibility: deref(params.Status),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ProductListResponse{Items: productsToAPI(items)})
}

// CreateProduct handles POST /admin/products.
func (s *Server) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := s.admin.CreateProduct(r.Context(), productFromAPI(&req))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, productToAPI(&p))
}

// UpdateProduct handles PUT /admin/products/{id}.
func (s *Server) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	var req ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := s.admin.UpdateProduct(r.Context(), id, productFromAPI(&req))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, productToAPI(&p))
}

// DeleteProduct handles DELETE /admin/products/{id}.
func (s *Server) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	if err := s.admin.DeleteProduct(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetProductVisibility handles POST /admin/products/{id}/visibility.
func (s *Server) SetProductVisibility(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	var req VisibilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.admin.SetVisibility(r.Context(), id, req.Active); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "active": req.Active})
}

// ListOrders handles GET /admin/orders.
func (s *Server) ListOrders(w http.ResponseWriter, r *http.Request) {
	params, err := bindOrderParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	orders, err := s.admin.Orders(r.Context(), deref(params.Status))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, OrderListResponse{Items: ordersToAPI(orders)})
}

// UpdateOrderStatus handles PUT /admin/orders/{id}/status.
func (s *Server) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	var req StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	st, err := s.admin.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(st)})
}

// GetSales handles GET /admin/sales.
func (s *Server) GetSales(w http.ResponseWriter, r *http.Request) {
	params, err := bindSalesParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	days, err := s.admin.Sales(r.Context(), deref(params.Days))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SalesResponse{Days: salesToAPI(days)})
}

// --- Helpers ---

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message without exposing internals.
func safeDomainMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	sentinels := []error{
		domain.ErrProductNotFound,
		domain.ErrOrderNotFound,
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidInput,
		domain.ErrEmptyCart,
		domain.ErrUnauthenticated,
		domain.ErrUnverified,
		domain.ErrForbidden,
		domain.ErrNotAlumni,
		domain.ErrInvalidCode,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler reports the offending field of a validation failure.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidInput) {
		return false
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code":    ErrorCodeValidationFailed,
			"message": msg,
			"field":   ve.Field,
		})
		return true
	}
	writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.log(r)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

// log returns the request-scoped logger, falling back to the server's.
func (s *Server) log(r *http.Request) *zap.Logger {
	return logger.FromContextOr(r.Context(), s.logger)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func acceptLanguage(r *http.Request) string {
	h := r.Header.Get("Accept-Language")
	for i, c := range h {
		if c == ',' || c == ';' {
			return h[:i]
		}
	}
	return h
}

