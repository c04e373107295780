package model

const (
	EntityName = "booking"
)

// Booking is a single reservation as it is persisted in the bookings record.
// Field names follow the layout older clients already wrote to the store.
type Booking struct {
	ID              string  `json:"id,omitempty"`
	Package         string  `json:"package"`
	PackagePrice    float64 `json:"packagePrice"`
	BookerName      string  `json:"bookerName"`
	BookerEmail     string  `json:"bookerEmail"`
	BookerPhone     string  `json:"bookerPhone"`
	NumberOfPersons int     `json:"numberOfPersons"`
	TravelDate      string  `json:"travelDate"`
	TotalPrice      float64 `json:"totalPrice"`
	SpecialRequests string  `json:"specialRequests"`
	// Time is the creation timestamp in unix milliseconds.
	Time      int64  `json:"time"`
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	Status    string `json:"status"`
}
