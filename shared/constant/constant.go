package constant

const (
	StoreKeyBookings = "trip_bookings"
	StoreKeyUsers    = "trip_users"
	StoreKeyCurrent  = "trip_current"
)

const (
	BookingStatusConfirmed = "Confirmed"

	DefaultBookerName = "Guest"
	NotAvailable      = "N/A"
	DefaultPersons    = 1
)

const (
	RequestParamIndex   = "index"
	RequestParamName    = "name"
	RequestParamPackage = "package"
	RequestParamPrice   = "price"
	RequestParamPersons = "persons"
)

const (
	// DateFormat is used for the "booked on" timestamp shown with each booking.
	DateFormat = "2006-01-02 15:04:05"
	// TravelDateFormat is the calendar date layout of a travel date.
	TravelDateFormat = "2006-01-02"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelStorageScopeName    = "storage"
)

const (
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderCacheControl       = "Cache-Control"
	RequestHeaderConnection         = "Connection"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
)

const (
	ContentTypeJSON        = "application/json"
	ContentTypeEventStream = "text/event-stream"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Empty = ""
)
