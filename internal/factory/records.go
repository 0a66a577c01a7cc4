package factory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record is any generated entity that can be flattened into a row for a bulk
// insert. Column order matches the Columns slice for the record's table.
type Record interface {
	Table() string
	Columns() []string
	Row() []any
}

// Product is one entry in the static product catalog shared by orders, carts
// and page views.
type Product struct {
	ID       string
	Name     string
	Category string
	Price    decimal.Decimal
}

// Customer mirrors the customers table.
type Customer struct {
	CustomerID        uuid.UUID
	Email             string
	FirstName         string
	LastName          string
	PhoneNumber       *string
	DateOfBirth       time.Time
	Gender            string
	RegistrationDate  time.Time
	LastLoginDate     time.Time
	AccountStatus     string
	EmailVerified     uint8
	PhoneVerified     uint8
	AddressLine1      string
	AddressLine2      *string
	City              string
	State             string
	PostalCode        string
	Country           string
	MarketingOptIn    uint8
	PreferredChannel  string
	Segment           string
	TotalOrders       int32
	TotalSpent        decimal.Decimal
	AverageOrderValue decimal.Decimal
	LoyaltyPoints     int32
	LoyaltyTier       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

var customerColumns = []string{
	"customer_id", "email", "first_name", "last_name", "phone_number",
	"date_of_birth", "gender", "registration_date", "last_login_date",
	"account_status", "email_verified", "phone_verified",
	"shipping_address_line1", "shipping_address_line2", "shipping_city",
	"shipping_state", "shipping_postal_code", "shipping_country",
	"marketing_opt_in", "preferred_channel", "customer_segment",
	"total_orders", "total_spent", "average_order_value", "loyalty_points",
	"loyalty_tier", "created_at", "updated_at",
}

func (c *Customer) Table() string     { return "customers" }
func (c *Customer) Columns() []string { return customerColumns }

func (c *Customer) Row() []any {
	return []any{
		c.CustomerID, c.Email, c.FirstName, c.LastName, c.PhoneNumber,
		c.DateOfBirth, c.Gender, c.RegistrationDate, c.LastLoginDate,
		c.AccountStatus, c.EmailVerified, c.PhoneVerified,
		c.AddressLine1, c.AddressLine2, c.City,
		c.State, c.PostalCode, c.Country,
		c.MarketingOptIn, c.PreferredChannel, c.Segment,
		c.TotalOrders, c.TotalSpent, c.AverageOrderValue, c.LoyaltyPoints,
		c.LoyaltyTier, c.CreatedAt, c.UpdatedAt,
	}
}

// Order mirrors the orders table. Customer fields are denormalized for
// analytical access, and line items are stored as parallel arrays.
type Order struct {
	OrderID           uuid.UUID
	OrderNumber       string
	CustomerID        uuid.UUID
	CustomerEmail     string
	CustomerFirstName string
	CustomerLastName  string
	CustomerSegment   string
	Status            string
	OrderDate         time.Time
	ShippedDate       *time.Time
	DeliveredDate     *time.Time
	Subtotal          decimal.Decimal
	TaxAmount         decimal.Decimal
	ShippingCost      decimal.Decimal
	DiscountAmount    decimal.Decimal
	TotalAmount       decimal.Decimal
	Currency          string
	PaymentMethod     string
	PaymentStatus     string
	TransactionID     *string
	ShippingMethod    string
	ShippingCarrier   string
	TrackingNumber    *string
	ShippingCity      string
	ShippingState     string
	ShippingCountry   string
	ItemProductIDs    []string
	ItemProductNames  []string
	ItemQuantities    []int32
	ItemUnitPrices    []decimal.Decimal
	ItemCategories    []string
	SourceChannel     string
	CampaignID        *string
	CouponCode        *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

var orderColumns = []string{
	"order_id", "order_number", "customer_id", "customer_email",
	"customer_first_name", "customer_last_name", "customer_segment",
	"order_status", "order_date", "shipped_date", "delivered_date",
	"subtotal", "tax_amount", "shipping_cost", "discount_amount",
	"total_amount", "currency", "payment_method", "payment_status",
	"transaction_id", "shipping_method", "shipping_carrier",
	"tracking_number", "shipping_address_city", "shipping_address_state",
	"shipping_address_country", "item_product_ids", "item_product_names",
	"item_quantities", "item_unit_prices", "item_categories",
	"source_channel", "campaign_id", "coupon_code", "created_at", "updated_at",
}

func (o *Order) Table() string     { return "orders" }
func (o *Order) Columns() []string { return orderColumns }

func (o *Order) Row() []any {
	return []any{
		o.OrderID, o.OrderNumber, o.CustomerID, o.CustomerEmail,
		o.CustomerFirstName, o.CustomerLastName, o.CustomerSegment,
		o.Status, o.OrderDate, o.ShippedDate, o.DeliveredDate,
		o.Subtotal, o.TaxAmount, o.ShippingCost, o.DiscountAmount,
		o.TotalAmount, o.Currency, o.PaymentMethod, o.PaymentStatus,
		o.TransactionID, o.ShippingMethod, o.ShippingCarrier,
		o.TrackingNumber, o.ShippingCity, o.ShippingState,
		o.ShippingCountry, o.ItemProductIDs, o.ItemProductNames,
		o.ItemQuantities, o.ItemUnitPrices, o.ItemCategories,
		o.SourceChannel, o.CampaignID, o.CouponCode, o.CreatedAt, o.UpdatedAt,
	}
}

// PageView mirrors the page_views table. Product context is populated only
// for product pages and search context only for search pages.
type PageView struct {
	ViewID             uuid.UUID
	SessionID          uuid.UUID
	CustomerID         *uuid.UUID
	AnonymousID        uuid.UUID
	PageURL            string
	PagePath           string
	PageTitle          string
	PageType           string
	ProductID          *string
	ProductName        *string
	ProductCategory    *string
	ProductPrice       *decimal.Decimal
	SearchQuery        *string
	SearchResultsCount *int32
	ReferrerURL        *string
	ReferrerDomain     *string
	UTMSource          *string
	UTMMedium          *string
	UTMCampaign        *string
	DeviceType         string
	Browser            string
	BrowserVersion     string
	OS                 string
	OSVersion          string
	ScreenResolution   string
	IPAddress          string
	GeoCountry         string
	GeoRegion          string
	GeoCity            string
	PageLoadTimeMS     int32
	TimeOnPageSeconds  int32
	ScrollDepthPercent int32
	ClicksCount        int32
	AddToCartClicked   uint8
	BuyNowClicked      uint8
	ViewTimestamp      time.Time
	CreatedAt          time.Time
}

var pageViewColumns = []string{
	"view_id", "session_id", "customer_id", "anonymous_id", "page_url",
	"page_path", "page_title", "page_type", "product_id", "product_name",
	"product_category", "product_price", "search_query",
	"search_results_count", "referrer_url", "referrer_domain", "utm_source",
	"utm_medium", "utm_campaign", "device_type", "browser", "browser_version",
	"os", "os_version", "screen_resolution", "ip_address", "geo_country",
	"geo_region", "geo_city", "page_load_time_ms", "time_on_page_seconds",
	"scroll_depth_percent", "clicks_count", "add_to_cart_clicked",
	"buy_now_clicked", "view_timestamp", "created_at",
}

func (v *PageView) Table() string     { return "page_views" }
func (v *PageView) Columns() []string { return pageViewColumns }

func (v *PageView) Row() []any {
	return []any{
		v.ViewID, v.SessionID, v.CustomerID, v.AnonymousID, v.PageURL,
		v.PagePath, v.PageTitle, v.PageType, v.ProductID, v.ProductName,
		v.ProductCategory, v.ProductPrice, v.SearchQuery,
		v.SearchResultsCount, v.ReferrerURL, v.ReferrerDomain, v.UTMSource,
		v.UTMMedium, v.UTMCampaign, v.DeviceType, v.Browser, v.BrowserVersion,
		v.OS, v.OSVersion, v.ScreenResolution, v.IPAddress, v.GeoCountry,
		v.GeoRegion, v.GeoCity, v.PageLoadTimeMS, v.TimeOnPageSeconds,
		v.ScrollDepthPercent, v.ClicksCount, v.AddToCartClicked,
		v.BuyNowClicked, v.ViewTimestamp, v.CreatedAt,
	}
}

// ShoppingCart mirrors the shopping_cart table.
type ShoppingCart struct {
	CartID              uuid.UUID
	SessionID           uuid.UUID
	CustomerID          *uuid.UUID
	AnonymousID         uuid.UUID
	Status              string
	CreatedTime         time.Time
	UpdatedTime         time.Time
	AbandonedAt         *time.Time
	ConvertedAt         *time.Time
	ConvertedOrderID    *uuid.UUID
	ItemProductIDs      []string
	ItemProductNames    []string
	ItemCategories      []string
	ItemQuantities      []int32
	ItemUnitPrices      []decimal.Decimal
	ItemTotalPrices     []decimal.Decimal
	ItemAddedTimestamps []time.Time
	ItemsCount          int32
	UniqueItemsCount    int32
	Subtotal            decimal.Decimal
	EstimatedTax        decimal.Decimal
	EstimatedShipping   decimal.Decimal
	DiscountAmount      decimal.Decimal
	EstimatedTotal      decimal.Decimal
	Currency            string
	CouponCodes         []string
	PromotionIDs        []string
	SourceChannel       string
	LandingPageURL      string
	UTMSource           *string
	UTMMedium           *string
	UTMCampaign         *string
	DeviceType          string
	Browser             string
	RecoveryEmailsSent  int32
	LastRecoveryEmailAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

var cartColumns = []string{
	"cart_id", "session_id", "customer_id", "anonymous_id", "cart_status",
	"cart_created_at", "cart_updated_at", "cart_abandoned_at",
	"cart_converted_at", "converted_order_id", "item_product_ids",
	"item_product_names", "item_product_categories", "item_quantities",
	"item_unit_prices", "item_total_prices", "item_added_timestamps",
	"items_count", "unique_items_count", "subtotal", "estimated_tax",
	"estimated_shipping", "discount_amount", "estimated_total", "currency",
	"coupon_codes", "promotion_ids", "source_channel", "landing_page_url",
	"utm_source", "utm_medium", "utm_campaign", "device_type", "browser",
	"recovery_emails_sent", "last_recovery_email_at", "created_at",
	"updated_at",
}

func (s *ShoppingCart) Table() string     { return "shopping_cart" }
func (s *ShoppingCart) Columns() []string { return cartColumns }

func (s *ShoppingCart) Row() []any {
	return []any{
		s.CartID, s.SessionID, s.CustomerID, s.AnonymousID, s.Status,
		s.CreatedTime, s.UpdatedTime, s.AbandonedAt,
		s.ConvertedAt, s.ConvertedOrderID, s.ItemProductIDs,
		s.ItemProductNames, s.ItemCategories, s.ItemQuantities,
		s.ItemUnitPrices, s.ItemTotalPrices, s.ItemAddedTimestamps,
		s.ItemsCount, s.UniqueItemsCount, s.Subtotal, s.EstimatedTax,
		s.EstimatedShipping, s.DiscountAmount, s.EstimatedTotal, s.Currency,
		s.CouponCodes, s.PromotionIDs, s.SourceChannel, s.LandingPageURL,
		s.UTMSource, s.UTMMedium, s.UTMCampaign, s.DeviceType, s.Browser,
		s.RecoveryEmailsSent, s.LastRecoveryEmailAt, s.CreatedAt,
		s.UpdatedAt,
	}
}
