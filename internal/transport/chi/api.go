package chi

import (
	domcart "github.com/dbhs-alumni/merchstore/internal/domain/cart"
	dommember "github.com/dbhs-alumni/merchstore/internal/domain/member"
	domorder "github.com/dbhs-alumni/merchstore/internal/domain/order"
	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
	"github.com/dbhs-alumni/merchstore/internal/domain/region"
	domsales "github.com/dbhs-alumni/merchstore/internal/domain/sales"
	"github.com/dbhs-alumni/merchstore/internal/usecase/admin"
	"github.com/dbhs-alumni/merchstore/internal/usecase/checkout"
	searchuc "github.com/dbhs-alumni/merchstore/internal/usecase/search"
)

// ErrorCode is the machine-readable error kind in an ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeProductNotFound  ErrorCode = "product_not_found"
	ErrorCodeOrderNotFound    ErrorCode = "order_not_found"
	ErrorCodeAlreadyExists    ErrorCode = "already_exists"
	ErrorCodeUnauthenticated  ErrorCode = "unauthenticated"
	ErrorCodeUnverified       ErrorCode = "unverified"
	ErrorCodeForbidden        ErrorCode = "forbidden"
	ErrorCodeNotAlumni        ErrorCode = "not_alumni"
	ErrorCodeInvalidCode      ErrorCode = "invalid_code"
	ErrorCodeEmptyCart        ErrorCode = "empty_cart"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ProductResponse is a catalog item on the wire.
type ProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Subtitle    string   `json:"subtitle"`
	Category    string   `json:"category"`
	Code        string   `json:"code"`
	PriceJMD    float64  `json:"price_jmd"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	StockQty    int      `json:"stock_qty"`
	Active      bool     `json:"active"`
	Description string   `json:"description,omitempty"`
	Sizes       []string `json:"sizes"`
	Details     []string `json:"details"`
	CreatedAt   int64    `json:"created_at"`
}

// ProductRequest is the admin create/update body.
type ProductRequest struct {
	Name        string   `json:"name"`
	Subtitle    string   `json:"subtitle"`
	Category    string   `json:"category"`
	Code        string   `json:"code"`
	PriceJMD    float64  `json:"price_jmd"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	StockQty    int      `json:"stock_qty"`
	Active      *bool    `json:"active"` // default true
	Description string   `json:"description"`
	Sizes       []string `json:"sizes"`
	Details     []string `json:"details"`
	SizesCSV    string   `json:"sizes_csv"`   // "S, M, L" alternative to sizes
	DetailsCSV  string   `json:"details_csv"` // alternative to details
}

// SearchResponse is a storefront result grid.
type SearchResponse struct {
	Items  []ProductResponse `json:"items"`
	Tier   string            `json:"tier"`
	Notice string            `json:"notice,omitempty"`
	Total  int               `json:"total"`
}

// CategoriesResponse lists the category selector options.
type CategoriesResponse struct {
	Items []string `json:"items"`
}

// RegionResponse describes a storefront region.
type RegionResponse struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Symbol    string  `json:"symbol"`
	Locale    string  `json:"locale"`
	FX        float64 `json:"fx"`
	Suppliers string  `json:"suppliers"`
}

// RegionDetectResponse is the best-effort region guess plus the alternatives.
type RegionDetectResponse struct {
	Region    RegionResponse   `json:"region"`
	Available []RegionResponse `json:"available"`
}

// RegionRequest sets the member's region preference.
type RegionRequest struct {
	Region string `json:"region"`
}

// SignInRequest starts the email sign-in flow.
type SignInRequest struct {
	Email string `json:"email"`
}

// VerifyRequest completes the email sign-in flow.
type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// SessionResponse describes a member session.
type SessionResponse struct {
	Token     string `json:"token,omitempty"`
	Email     string `json:"email"`
	Verified  bool   `json:"verified"`
	Admin     bool   `json:"admin"`
	ExpiresAt int64  `json:"expires_at"`
}

// QtyRequest changes a cart line by delta.
type QtyRequest struct {
	Delta int `json:"delta"`
}

// CartLineResponse is one resolved cart entry.
type CartLineResponse struct {
	Product      ProductResponse `json:"product"`
	Qty          int             `json:"qty"`
	LineTotalJMD float64         `json:"line_total_jmd"`
}

// MoneyResponse is an amount in the base currency plus its regional display value.
type MoneyResponse struct {
	JMD     float64 `json:"jmd"`
	Display float64 `json:"display"`
}

// CartResponse is the member's cart with totals.
type CartResponse struct {
	Items    []CartLineResponse `json:"items"`
	Subtotal MoneyResponse      `json:"subtotal"`
	Shipping MoneyResponse      `json:"shipping"`
	Total    MoneyResponse      `json:"total"`
	Region   RegionResponse     `json:"region"`
	Dropped  []string           `json:"dropped,omitempty"`
}

// OrderItemResponse is a product snapshot inside an order.
type OrderItemResponse struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductCode  string  `json:"product_code"`
	Qty          int     `json:"qty"`
	UnitPriceJMD float64 `json:"unit_price_jmd"`
	LineTotalJMD float64 `json:"line_total_jmd"`
}

// OrderResponse is a placed order.
type OrderResponse struct {
	ID          string              `json:"id"`
	MemberEmail string              `json:"member_email"`
	SubtotalJMD float64             `json:"subtotal_jmd"`
	ShippingJMD float64             `json:"shipping_jmd"`
	TotalJMD    float64             `json:"total_jmd"`
	Status      string              `json:"status"`
	CreatedAt   int64               `json:"created_at"`
	Items       []OrderItemResponse `json:"items,omitempty"`
}

// OrderListResponse lists orders newest first.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
}

// ProductListResponse lists products.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}

// WishlistItemResponse reports whether a product is on the member's wishlist.
type WishlistItemResponse struct {
	ID    string `json:"id"`
	Saved bool   `json:"saved"`
}

// StatusRequest moves an order to a new status.
type StatusRequest struct {
	Status string `json:"status"`
}

// VisibilityRequest shows or hides a product.
type VisibilityRequest struct {
	Active bool `json:"active"`
}

// SalesDayResponse is one day of the sales series.
type SalesDayResponse struct {
	Date       string  `json:"date"`
	RevenueJMD float64 `json:"revenue_jmd"`
	Orders     int64   `json:"orders"`
}

// SalesResponse is a contiguous daily series, oldest first.
type SalesResponse struct {
	Days []SalesDayResponse `json:"days"`
}

// DashboardResponse is the admin overview.
type DashboardResponse struct {
	TodaySalesJMD  float64            `json:"today_sales_jmd"`
	TodayOrders    int                `json:"today_orders"`
	TodayCustomers int                `json:"today_customers"`
	ActiveProducts int                `json:"active_products"`
	LowStock       []ProductResponse  `json:"low_stock"`
	Week           []SalesDayResponse `json:"week"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func productToAPI(p *domprod.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID(),
		Name:        p.Name(),
		Subtitle:    p.Subtitle(),
		Category:    p.Category(),
		Code:        p.Code(),
		PriceJMD:    p.Price(),
		Rating:      p.Rating(),
		ReviewCount: p.ReviewCount(),
		StockQty:    p.StockQty(),
		Active:      p.Active(),
		Description: p.Description(),
		Sizes:       nonNil(p.Sizes()),
		Details:     nonNil(p.Details()),
		CreatedAt:   p.CreatedAt(),
	}
}

func productsToAPI(items []domprod.Product) []ProductResponse {
	out := make([]ProductResponse, len(items))
	for i := range items {
		out[i] = productToAPI(&items[i])
	}
	return out
}

func productFromAPI(req *ProductRequest) domprod.Attributes {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	sizes := req.Sizes
	if len(sizes) == 0 && req.SizesCSV != "" {
		sizes = domprod.ParseList(req.SizesCSV)
	}
	details := req.Details
	if len(details) == 0 && req.DetailsCSV != "" {
		details = domprod.ParseList(req.DetailsCSV)
	}
	return domprod.Attributes{
		Name:        req.Name,
		Subtitle:    req.Subtitle,
		Category:    req.Category,
		Code:        req.Code,
		Price:       req.PriceJMD,
		Rating:      req.Rating,
		ReviewCount: req.ReviewCount,
		StockQty:    req.StockQty,
		Active:      active,
		Description: req.Description,
		Sizes:       sizes,
		Details:     details,
	}
}

func searchToAPI(res *searchuc.Result) SearchResponse {
	return SearchResponse{
		Items:  productsToAPI(res.Items),
		Tier:   string(res.Tier),
		Notice: res.Notice,
		Total:  res.Total,
	}
}

func regionToAPI(r region.Region) RegionResponse {
	info := r.Info()
	return RegionResponse{
		ID:        string(r),
		Label:     info.Label,
		Symbol:    info.Symbol,
		Locale:    info.Locale,
		FX:        info.FX,
		Suppliers: info.Suppliers,
	}
}

func money(r region.Region, jmd float64) MoneyResponse {
	return MoneyResponse{JMD: jmd, Display: r.Convert(jmd)}
}

func cartToAPI(v *checkout.View) CartResponse {
	lines := make([]CartLineResponse, len(v.Lines))
	for i := range v.Lines {
		lines[i] = cartLineToAPI(&v.Lines[i])
	}
	return CartResponse{
		Items:    lines,
		Subtotal: money(v.Region, v.Totals.Subtotal),
		Shipping: money(v.Region, v.Totals.Shipping),
		Total:    money(v.Region, v.Totals.Total),
		Region:   regionToAPI(v.Region),
		Dropped:  v.Dropped,
	}
}

func cartLineToAPI(l *domcart.Line) CartLineResponse {
	return CartLineResponse{
		Product:      productToAPI(&l.Product),
		Qty:          l.Qty,
		LineTotalJMD: l.LineTotal(),
	}
}

func orderToAPI(o *domorder.Order) OrderResponse {
	t := o.Totals()
	resp := OrderResponse{
		ID:          o.ID(),
		MemberEmail: o.MemberEmail(),
		SubtotalJMD: t.Subtotal,
		ShippingJMD: t.Shipping,
		TotalJMD:    t.Total,
		Status:      string(o.Status()),
		CreatedAt:   o.CreatedAt(),
	}
	for _, it := range o.Items() {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID:    it.ProductID,
			ProductName:  it.Name,
			ProductCode:  it.Code,
			Qty:          it.Qty,
			UnitPriceJMD: it.UnitPrice,
			LineTotalJMD: it.LineTotal,
		})
	}
	return resp
}

func ordersToAPI(orders []domorder.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = orderToAPI(&orders[i])
	}
	return out
}

func sessionToAPI(s *dommember.Session, admin bool) SessionResponse {
	return SessionResponse{
		Email:     s.Email,
		Verified:  s.Verified,
		Admin:     admin,
		ExpiresAt: s.ExpiresAt,
	}
}

func salesToAPI(days []domsales.Day) []SalesDayResponse {
	out := make([]SalesDayResponse, len(days))
	for i, d := range days {
		out[i] = SalesDayResponse{Date: d.Date(), RevenueJMD: d.Revenue(), Orders: d.Orders()}
	}
	return out
}

func dashboardToAPI(d *admin.Dashboard) DashboardResponse {
	return DashboardResponse{
		TodaySalesJMD:  d.TodaySales,
		TodayOrders:    d.TodayOrders,
		TodayCustomers: d.TodayCustomers,
		ActiveProducts: d.ActiveProducts,
		LowStock:       productsToAPI(d.LowStock),
		Week:           salesToAPI(d.Week),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
