// Package factory generates synthetic ecommerce records with internally
// consistent derived fields: monetary totals reconcile, dependent dates are
// ordered, and conditional fields are only populated when the record's status
// permits them. Referential fields are filled from the entity pool when it
// has something to offer, so generated traffic looks like returning
// customers rather than an endless stream of strangers.
package factory

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meridian-data/ecomload/internal/pool"
	"github.com/meridian-data/ecomload/internal/sample"
)

// Probability that a generated page view is attributed to an already pooled
// customer instead of an anonymous visitor.
const viewAttachProbability = 0.6

// Factory generates one record kind per method. It is stateless apart from
// reading and feeding the entity pool, and draws all randomness from the
// injected source so seeded runs are reproducible.
type Factory struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
	pool  *pool.Pool
	now   func() time.Time

	accountStatus *sample.Weighted[string]
	orderStatus   *sample.Weighted[string]
	pageType      *sample.Weighted[string]
	viewDevice    *sample.Weighted[string]
	cartDevice    *sample.Weighted[string]
	cartStatus    *sample.Weighted[string]
	currency      *sample.Weighted[string]

	products []Product
}

// tableBuilder collects the first weight-table construction error so New can
// report it once instead of checking every table individually.
type tableBuilder struct {
	err error
}

func (b *tableBuilder) weighted(items []string, weights []float64) *sample.Weighted[string] {
	w, err := sample.NewWeighted(items, weights)
	if err != nil && b.err == nil {
		b.err = err
	}
	return w
}

// New creates a factory reading from and registering into p. The seed feeds
// both the categorical sampler source and the faker.
func New(p *pool.Pool, rng *rand.Rand, seed uint64) (*Factory, error) {
	f := &Factory{
		rng:   rng,
		faker: gofakeit.New(seed),
		pool:  p,
		now:   time.Now,
	}

	b := &tableBuilder{}
	f.accountStatus = b.weighted(accountStatuses, accountStatusWeights)
	f.orderStatus = b.weighted(orderStatuses, orderStatusWeights)
	f.pageType = b.weighted(pageTypes, pageTypeWeights)
	f.viewDevice = b.weighted(deviceTypes, viewDeviceWeights)
	f.cartDevice = b.weighted(deviceTypes, cartDeviceWeights)
	f.cartStatus = b.weighted(cartStatuses, cartStatusWeights)
	f.currency = b.weighted(currencies, currencyWeights)
	if b.err != nil {
		return nil, fmt.Errorf("factory: building weight tables: %w", b.err)
	}

	f.products = make([]Product, productCatalogSize)
	for i := range f.products {
		f.products[i] = Product{
			ID:       fmt.Sprintf("PROD-%04d", i+1),
			Name:     f.faker.ProductName(),
			Category: sample.Uniform(rng, productCategories),
			Price:    decimal.NewFromFloat(sample.Between(rng, 9.99, 499.99)).Round(2),
		}
	}

	return f, nil
}

// WithNow overrides the clock, for tests.
func (f *Factory) WithNow(now func() time.Time) *Factory {
	f.now = now
	return f
}

// Products exposes the static product catalog.
func (f *Factory) Products() []Product {
	return f.products
}

// Customer generates a customer record and registers its reference in the
// entity pool.
func (f *Factory) Customer() *Customer {
	now := f.now()
	registration := f.faker.DateRange(now.AddDate(-2, 0, 0), now)
	lastLogin := f.faker.DateRange(registration, now)

	segment := sample.Uniform(f.rng, customerSegments)
	var totalOrders int32
	switch segment {
	case "vip", "high_value", "regular":
		totalOrders = int32(f.rng.Intn(51))
	default:
		totalOrders = int32(f.rng.Intn(6))
	}
	totalSpent := decimal.Zero
	if totalOrders > 0 {
		totalSpent = decimal.NewFromFloat(sample.Between(f.rng, 0, 10000)).Round(2)
	}
	divisor := totalOrders
	if divisor < 1 {
		divisor = 1
	}
	avgOrderValue := totalSpent.Div(decimal.NewFromInt32(divisor)).Round(2)

	c := &Customer{
		CustomerID:        uuid.New(),
		Email:             f.faker.Email(),
		FirstName:         f.faker.FirstName(),
		LastName:          f.faker.LastName(),
		DateOfBirth:       f.faker.DateRange(now.AddDate(-54, 0, 0), now.AddDate(-18, 0, 0)),
		Gender:            sample.Uniform(f.rng, genders),
		RegistrationDate:  registration,
		LastLoginDate:     lastLogin,
		AccountStatus:     f.accountStatus.Pick(f.rng),
		EmailVerified:     flag(sample.Chance(f.rng, 0.9)),
		PhoneVerified:     flag(sample.Chance(f.rng, 0.6)),
		AddressLine1:      f.faker.Street(),
		City:              f.faker.City(),
		State:             f.faker.StateAbr(),
		PostalCode:        f.faker.Zip(),
		Country:           sample.Uniform(f.rng, customerCountries),
		MarketingOptIn:    flag(sample.Chance(f.rng, 0.7)),
		PreferredChannel:  sample.Uniform(f.rng, preferredChannels),
		Segment:           segment,
		TotalOrders:       totalOrders,
		TotalSpent:        totalSpent,
		AverageOrderValue: avgOrderValue,
		LoyaltyPoints:     int32(f.rng.Intn(10001)),
		LoyaltyTier:       sample.Uniform(f.rng, loyaltyTiers),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if sample.Chance(f.rng, 0.8) {
		c.PhoneNumber = ptr(f.faker.Phone())
	}
	if sample.Chance(f.rng, 0.3) {
		c.AddressLine2 = ptr(fmt.Sprintf("Apt %d", sample.IntBetween(f.rng, 1, 999)))
	}

	f.pool.AddCustomer(pool.CustomerRef{
		ID:        c.CustomerID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Segment:   segment,
	})
	return c
}

// Order generates an order for a pooled customer when one exists, otherwise
// for a freshly minted anonymous identity.
func (f *Factory) Order() *Order {
	ref, ok := f.pool.PickCustomer()
	if !ok {
		ref = pool.CustomerRef{
			ID:        uuid.New(),
			Email:     f.faker.Email(),
			FirstName: f.faker.FirstName(),
			LastName:  f.faker.LastName(),
			Segment:   sample.Uniform(f.rng, customerSegments),
		}
	}
	return f.OrderFor(ref)
}

// OrderFor generates an order attributed to the given customer reference.
func (f *Factory) OrderFor(ref pool.CustomerRef) *Order {
	now := f.now()
	orderDate := f.faker.DateRange(now.AddDate(0, 0, -7), now)
	status := f.orderStatus.Pick(f.rng)

	var shipped, delivered *time.Time
	if status == "shipped" || status == "delivered" {
		shipped = ptr(orderDate.AddDate(0, 0, sample.IntBetween(f.rng, 1, 3)))
	}
	if status == "delivered" {
		delivered = ptr(shipped.AddDate(0, 0, sample.IntBetween(f.rng, 1, 5)))
	}

	items := f.pickItems(1, 5)
	shipping := decimal.Zero
	if items.subtotal.LessThan(decimal.NewFromInt(50)) {
		shipping = decimal.NewFromFloat(sample.Between(f.rng, 0, 15.99)).Round(2)
	}
	discount := decimal.Zero
	if sample.Chance(f.rng, 0.3) {
		discount = items.subtotal.Mul(decimal.NewFromFloat(sample.Between(f.rng, 0, 0.2))).Round(2)
	}
	money := computeOrderMoney(items.subtotal, sample.Between(f.rng, 0.05, 0.12), shipping, discount)

	settled := status != "pending" && status != "cancelled"
	paymentStatus := "pending"
	if settled {
		paymentStatus = "completed"
	} else if sample.Chance(f.rng, 0.5) {
		paymentStatus = "failed"
	}

	o := &Order{
		OrderID:           uuid.New(),
		OrderNumber:       fmt.Sprintf("ORD-%08d", sample.IntBetween(f.rng, 10000000, 99999999)),
		CustomerID:        ref.ID,
		CustomerEmail:     ref.Email,
		CustomerFirstName: ref.FirstName,
		CustomerLastName:  ref.LastName,
		CustomerSegment:   ref.Segment,
		Status:            status,
		OrderDate:         orderDate,
		ShippedDate:       shipped,
		DeliveredDate:     delivered,
		Subtotal:          money.Subtotal,
		TaxAmount:         money.Tax,
		ShippingCost:      money.Shipping,
		DiscountAmount:    money.Discount,
		TotalAmount:       money.Total,
		Currency:          f.currency.Pick(f.rng),
		PaymentMethod:     sample.Uniform(f.rng, paymentMethods),
		PaymentStatus:     paymentStatus,
		ShippingMethod:    sample.Uniform(f.rng, shippingMethods),
		ShippingCarrier:   sample.Uniform(f.rng, shippingCarriers),
		ShippingCity:      f.faker.City(),
		ShippingState:     f.faker.StateAbr(),
		ShippingCountry:   sample.Uniform(f.rng, orderCountries),
		ItemProductIDs:    items.ids(),
		ItemProductNames:  items.names(),
		ItemQuantities:    items.quantities,
		ItemUnitPrices:    items.unitPrices(),
		ItemCategories:    items.categories(),
		SourceChannel:     sample.Uniform(f.rng, sourceChannels),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if settled {
		o.TransactionID = ptr(uuid.NewString())
	}
	if status == "shipped" || status == "delivered" {
		o.TrackingNumber = ptr(strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12]))
	}
	if sample.Chance(f.rng, 0.5) {
		o.CampaignID = ptr(fmt.Sprintf("CAMP-%d", sample.IntBetween(f.rng, 1000, 9999)))
	}
	if money.Discount.IsPositive() {
		o.CouponCode = ptr(f.couponCode())
	}
	return o
}

// PageView generates a page impression and registers its session in the
// entity pool. Roughly 60% of views attach to a pooled customer.
func (f *Factory) PageView() *PageView {
	now := f.now()
	sessionID := uuid.New()

	var customerID *uuid.UUID
	if sample.Chance(f.rng, viewAttachProbability) {
		if ref, ok := f.pool.PickCustomer(); ok {
			customerID = ptr(ref.ID)
		}
	}

	pageType := f.pageType.Pick(f.rng)
	slug := f.slug()

	v := &PageView{
		ViewID:             uuid.New(),
		SessionID:          sessionID,
		CustomerID:         customerID,
		AnonymousID:        uuid.New(),
		PageURL:            fmt.Sprintf("https://shop.example.com/%s/%s", pageType, slug),
		PagePath:           fmt.Sprintf("/%s/%s", pageType, slug),
		PageTitle:          fmt.Sprintf("%s | Example Shop", f.faker.ProductName()),
		PageType:           pageType,
		DeviceType:         f.viewDevice.Pick(f.rng),
		Browser:            sample.Uniform(f.rng, browsers),
		BrowserVersion:     fmt.Sprintf("%d.0.%d", sample.IntBetween(f.rng, 80, 120), f.rng.Intn(10000)),
		OS:                 sample.Uniform(f.rng, operatingSystems),
		OSVersion:          fmt.Sprintf("%d.%d", sample.IntBetween(f.rng, 10, 15), f.rng.Intn(10)),
		ScreenResolution:   sample.Uniform(f.rng, screenResolutions),
		IPAddress:          f.faker.IPv4Address(),
		GeoCountry:         sample.Uniform(f.rng, geoCountries),
		GeoRegion:          f.faker.StateAbr(),
		GeoCity:            f.faker.City(),
		PageLoadTimeMS:     int32(sample.IntBetween(f.rng, 200, 5000)),
		TimeOnPageSeconds:  int32(sample.IntBetween(f.rng, 5, 300)),
		ScrollDepthPercent: int32(sample.IntBetween(f.rng, 10, 100)),
		ClicksCount:        int32(f.rng.Intn(21)),
		ViewTimestamp:      f.faker.DateRange(now.AddDate(0, 0, -1), now),
		CreatedAt:          now,
	}

	if pageType == "product" {
		p := sample.Uniform(f.rng, f.products)
		v.ProductID = ptr(p.ID)
		v.ProductName = ptr(p.Name)
		v.ProductCategory = ptr(p.Category)
		v.ProductPrice = ptr(p.Price)
		v.AddToCartClicked = flag(sample.Chance(f.rng, 0.15))
		v.BuyNowClicked = flag(sample.Chance(f.rng, 0.05))
	}
	if pageType == "search" {
		v.SearchQuery = ptr(f.faker.Word() + " " + f.faker.Word())
		v.SearchResultsCount = ptr(int32(f.rng.Intn(501)))
	}
	if sample.Chance(f.rng, 0.6) {
		v.ReferrerURL = ptr(f.faker.URL())
		v.ReferrerDomain = ptr(f.faker.DomainName())
	}
	if sample.Chance(f.rng, 0.4) {
		v.UTMSource = ptr(sample.Uniform(f.rng, utmSources))
		v.UTMMedium = ptr(sample.Uniform(f.rng, utmMediums))
		v.UTMCampaign = ptr(fmt.Sprintf("campaign_%d", sample.IntBetween(f.rng, 1, 100)))
	}

	var poolCustomer uuid.UUID
	if customerID != nil {
		poolCustomer = *customerID
	}
	f.pool.AddSession(pool.SessionRef{ID: sessionID, CustomerID: poolCustomer})
	return v
}

// ShoppingCart generates a cart, preferring a pooled session so carts line up
// with previously seen page views.
func (f *Factory) ShoppingCart() *ShoppingCart {
	now := f.now()

	session, ok := f.pool.PickSession()
	if !ok {
		session = pool.SessionRef{ID: uuid.New()}
	}
	var customerID *uuid.UUID
	if session.CustomerID != uuid.Nil {
		customerID = ptr(session.CustomerID)
	} else if sample.Chance(f.rng, 0.5) {
		if ref, found := f.pool.PickCustomer(); found {
			customerID = ptr(ref.ID)
		}
	}

	status := f.cartStatus.Pick(f.rng)
	created := f.faker.DateRange(now.AddDate(0, 0, -1), now)
	updated := created.Add(time.Duration(sample.IntBetween(f.rng, 1, 60)) * time.Minute)

	items := f.pickItems(1, 6)
	shipping := decimal.Zero
	if items.subtotal.LessThan(decimal.NewFromInt(50)) {
		shipping = decimal.NewFromFloat(sample.Between(f.rng, 0, 12.99)).Round(2)
	}
	discount := decimal.Zero
	if sample.Chance(f.rng, 0.2) {
		discount = items.subtotal.Mul(decimal.NewFromFloat(sample.Between(f.rng, 0, 0.15))).Round(2)
	}
	money := computeOrderMoney(items.subtotal, sample.Between(f.rng, 0.05, 0.12), shipping, discount)

	addedTimes := make([]time.Time, len(items.products))
	for i := range addedTimes {
		addedTimes[i] = created.Add(time.Duration(f.rng.Intn(31)) * time.Minute)
	}

	var itemsCount int32
	for _, q := range items.quantities {
		itemsCount += q
	}

	c := &ShoppingCart{
		CartID:              uuid.New(),
		SessionID:           session.ID,
		CustomerID:          customerID,
		AnonymousID:         uuid.New(),
		Status:              status,
		CreatedTime:         created,
		UpdatedTime:         updated,
		ItemProductIDs:      items.ids(),
		ItemProductNames:    items.names(),
		ItemCategories:      items.categories(),
		ItemQuantities:      items.quantities,
		ItemUnitPrices:      items.unitPrices(),
		ItemTotalPrices:     items.totalPrices(),
		ItemAddedTimestamps: addedTimes,
		ItemsCount:          itemsCount,
		UniqueItemsCount:    int32(len(items.products)),
		Subtotal:            money.Subtotal,
		EstimatedTax:        money.Tax,
		EstimatedShipping:   money.Shipping,
		DiscountAmount:      money.Discount,
		EstimatedTotal:      money.Total,
		Currency:            f.currency.Pick(f.rng),
		CouponCodes:         []string{},
		PromotionIDs:        []string{},
		SourceChannel:       sample.Uniform(f.rng, sourceChannels),
		LandingPageURL:      fmt.Sprintf("https://shop.example.com/%s", f.slug()),
		DeviceType:          f.cartDevice.Pick(f.rng),
		Browser:             sample.Uniform(f.rng, browsers),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	switch status {
	case "abandoned":
		c.AbandonedAt = ptr(updated.Add(time.Duration(sample.IntBetween(f.rng, 1, 24)) * time.Hour))
		c.RecoveryEmailsSent = int32(f.rng.Intn(4))
		if sample.Chance(f.rng, 0.5) {
			c.LastRecoveryEmailAt = ptr(c.AbandonedAt.Add(time.Duration(sample.IntBetween(f.rng, 1, 12)) * time.Hour))
		}
	case "converted":
		c.ConvertedAt = ptr(updated.Add(time.Duration(sample.IntBetween(f.rng, 5, 30)) * time.Minute))
		c.ConvertedOrderID = ptr(uuid.New())
	}

	if money.Discount.IsPositive() {
		c.CouponCodes = []string{f.couponCode()}
	}
	if sample.Chance(f.rng, 0.2) {
		c.PromotionIDs = []string{fmt.Sprintf("PROMO-%d", sample.IntBetween(f.rng, 100, 999))}
	}
	if sample.Chance(f.rng, 0.5) {
		c.UTMSource = ptr(sample.Uniform(f.rng, utmSources))
		c.UTMMedium = ptr(sample.Uniform(f.rng, utmMediums))
		c.UTMCampaign = ptr(fmt.Sprintf("campaign_%d", sample.IntBetween(f.rng, 1, 50)))
	}
	return c
}

// lineItems is a random draw from the product catalog with per-line
// quantities.
type lineItems struct {
	products   []Product
	quantities []int32
	subtotal   decimal.Decimal
}

func (f *Factory) pickItems(minItems, maxItems int) lineItems {
	n := sample.IntBetween(f.rng, minItems, maxItems)
	li := lineItems{
		products:   sample.UniformN(f.rng, f.products, n),
		quantities: make([]int32, n),
	}
	li.subtotal = decimal.Zero
	for i, p := range li.products {
		q := int32(sample.IntBetween(f.rng, 1, 3))
		li.quantities[i] = q
		li.subtotal = li.subtotal.Add(p.Price.Mul(decimal.NewFromInt32(q)))
	}
	li.subtotal = li.subtotal.Round(2)
	return li
}

func (li lineItems) ids() []string {
	out := make([]string, len(li.products))
	for i, p := range li.products {
		out[i] = p.ID
	}
	return out
}

func (li lineItems) names() []string {
	out := make([]string, len(li.products))
	for i, p := range li.products {
		out[i] = p.Name
	}
	return out
}

func (li lineItems) categories() []string {
	out := make([]string, len(li.products))
	for i, p := range li.products {
		out[i] = p.Category
	}
	return out
}

func (li lineItems) unitPrices() []decimal.Decimal {
	out := make([]decimal.Decimal, len(li.products))
	for i, p := range li.products {
		out[i] = p.Price
	}
	return out
}

func (li lineItems) totalPrices() []decimal.Decimal {
	out := make([]decimal.Decimal, len(li.products))
	for i, p := range li.products {
		out[i] = p.Price.Mul(decimal.NewFromInt32(li.quantities[i])).Round(2)
	}
	return out
}

func (f *Factory) couponCode() string {
	letters := make([]byte, 4)
	for i := range letters {
		letters[i] = byte('A' + f.rng.Intn(26))
	}
	return fmt.Sprintf("%s%d", letters, sample.IntBetween(f.rng, 10, 99))
}

func (f *Factory) slug() string {
	return strings.ToLower(f.faker.Word() + "-" + f.faker.Word())
}

func ptr[T any](v T) *T {
	return &v
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
