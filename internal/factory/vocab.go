package factory

// Field vocabularies and their weights. Several distributions are
// deliberately skewed: most accounts are active, most orders end up
// delivered, abandoned carts outnumber converted ones.

var (
	genders = []string{"male", "female", "non_binary", "prefer_not_to_say", "other"}

	accountStatuses      = []string{"active", "inactive", "suspended", "pending_verification"}
	accountStatusWeights = []float64{0.85, 0.08, 0.02, 0.05}

	preferredChannels = []string{"email", "sms", "push", "mail", "phone"}
	customerSegments  = []string{"new", "regular", "vip", "churned", "at_risk", "high_value"}
	loyaltyTiers      = []string{"bronze", "silver", "gold", "platinum", "diamond"}

	// Lifecycle order: pending, confirmed, processing, shipped, delivered,
	// cancelled, refunded.
	orderStatuses      = []string{"pending", "confirmed", "processing", "shipped", "delivered", "cancelled", "refunded"}
	orderStatusWeights = []float64{0.05, 0.10, 0.15, 0.20, 0.40, 0.05, 0.05}

	paymentMethods   = []string{"credit_card", "debit_card", "paypal", "apple_pay", "google_pay", "bank_transfer", "crypto"}
	shippingMethods  = []string{"standard", "express", "overnight", "economy", "pickup"}
	shippingCarriers = []string{"fedex", "ups", "usps", "dhl", "amazon_logistics", "ontrac"}
	sourceChannels   = []string{"organic", "paid_search", "social", "email", "referral", "direct", "affiliate"}

	pageTypes       = []string{"home", "category", "product", "search", "cart", "checkout", "account", "blog", "about", "contact"}
	pageTypeWeights = []float64{0.15, 0.2, 0.3, 0.1, 0.08, 0.05, 0.04, 0.04, 0.02, 0.02}

	deviceTypes           = []string{"desktop", "mobile", "tablet"}
	viewDeviceWeights     = []float64{0.45, 0.45, 0.1}
	cartDeviceWeights     = []float64{0.4, 0.5, 0.1}
	browsers              = []string{"chrome", "safari", "firefox", "edge", "opera", "samsung_browser"}
	operatingSystems      = []string{"windows", "macos", "ios", "android", "linux"}
	screenResolutions     = []string{"1920x1080", "1366x768", "1536x864", "2560x1440", "390x844", "414x896"}

	cartStatuses      = []string{"active", "abandoned", "converted", "expired"}
	cartStatusWeights = []float64{0.3, 0.4, 0.25, 0.05}

	currencies      = []string{"USD", "EUR", "GBP", "CAD", "AUD"}
	currencyWeights = []float64{0.6, 0.15, 0.1, 0.1, 0.05}

	customerCountries = []string{"US", "UK", "CA", "AU"}
	orderCountries    = []string{"US", "UK", "CA", "AU", "DE", "FR"}
	geoCountries      = []string{"US", "UK", "CA", "AU", "DE", "FR", "JP", "BR"}

	utmSources = []string{"google", "facebook", "instagram", "twitter", "email", "bing"}
	utmMediums = []string{"cpc", "organic", "social", "email", "referral"}

	productCategories = []string{"electronics", "clothing", "home_garden", "sports", "books", "beauty", "toys", "food", "automotive"}
)

// productCatalogSize is the number of synthetic products generated at
// startup, matching the PROD-0001..PROD-0100 id space referenced by the
// mutation templates.
const productCatalogSize = 100
