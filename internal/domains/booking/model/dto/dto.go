package dto

import (
	"strings"

	"github.com/google/uuid"

	"tripplanner/internal/domains/booking/model"
	sessionModel "tripplanner/internal/domains/session/model"
	"tripplanner/shared/constant"
	"tripplanner/shared/timezone"
)

type CreateBookingRequest struct {
	Package         string  `json:"package"`
	PackagePrice    float64 `json:"packagePrice"    validate:"gte=0"`
	BookerName      string  `json:"bookerName"      validate:"required,max=100"`
	BookerEmail     string  `json:"bookerEmail"     validate:"required,email,max=100"`
	BookerPhone     string  `json:"bookerPhone"     validate:"required,len=10"`
	NumberOfPersons int     `json:"numberOfPersons" validate:"gte=0"`
	TravelDate      string  `json:"travelDate"      validate:"required,traveldate"`
	SpecialRequests string  `json:"specialRequests" validate:"omitempty,max=500"`
}

// Normalize trims the free text fields the way the booking form does before
// anything is checked.
func (c *CreateBookingRequest) Normalize() {
	c.Package = strings.TrimSpace(c.Package)
	c.BookerName = strings.TrimSpace(c.BookerName)
	c.BookerEmail = strings.TrimSpace(c.BookerEmail)
	c.BookerPhone = strings.TrimSpace(c.BookerPhone)
	c.TravelDate = strings.TrimSpace(c.TravelDate)
	c.SpecialRequests = strings.TrimSpace(c.SpecialRequests)
}

// MissingRequired reports whether any of name, email, phone or travel date is blank.
func (c *CreateBookingRequest) MissingRequired() bool {
	return c.BookerName == constant.Empty ||
		c.BookerEmail == constant.Empty ||
		c.BookerPhone == constant.Empty ||
		c.TravelDate == constant.Empty
}

// Persons is the person count the total is computed with.
func (c *CreateBookingRequest) Persons() int {
	if c.NumberOfPersons == 0 {
		return constant.DefaultPersons
	}

	return c.NumberOfPersons
}

func (c *CreateBookingRequest) ToModel(current sessionModel.Session) model.Booking {
	persons := c.Persons()

	userName := current.Name
	if userName == constant.Empty {
		userName = current.Email
	}

	return model.Booking{
		ID:              uuid.NewString(),
		Package:         c.Package,
		PackagePrice:    c.PackagePrice,
		BookerName:      c.BookerName,
		BookerEmail:     c.BookerEmail,
		BookerPhone:     c.BookerPhone,
		NumberOfPersons: persons,
		TravelDate:      c.TravelDate,
		TotalPrice:      TotalPrice(c.PackagePrice, persons),
		SpecialRequests: c.SpecialRequests,
		Time:            timezone.Now().UnixMilli(),
		UserEmail:       current.Email,
		UserName:        userName,
		Status:          constant.BookingStatusConfirmed,
	}
}

// TotalPrice is the unit price times the person count. A count below one is
// treated as a single person.
func TotalPrice(price float64, persons int) float64 {
	if persons <= 0 {
		persons = constant.DefaultPersons
	}

	return price * float64(persons)
}

type BookingResponse struct {
	Index           int     `json:"index"`
	ID              string  `json:"id"`
	Package         string  `json:"package"`
	PackagePrice    float64 `json:"packagePrice"`
	BookerName      string  `json:"bookerName"`
	BookerEmail     string  `json:"bookerEmail"`
	BookerPhone     string  `json:"bookerPhone"`
	NumberOfPersons int     `json:"numberOfPersons"`
	TravelDate      string  `json:"travelDate"`
	TotalPrice      float64 `json:"totalPrice"`
	SpecialRequests string  `json:"specialRequests"`
	Time            int64   `json:"time"`
	BookedOn        string  `json:"bookedOn"`
	UserEmail       string  `json:"userEmail"`
	UserName        string  `json:"userName"`
	Status          string  `json:"status"`
}

func (r *BookingResponse) FromModel(index int, model model.Booking) {
	r.Index = index
	r.ID = model.ID
	r.Package = model.Package
	r.PackagePrice = model.PackagePrice
	r.BookerName = orDefault(model.BookerName, constant.DefaultBookerName)
	r.BookerEmail = model.BookerEmail
	r.BookerPhone = orDefault(model.BookerPhone, constant.NotAvailable)
	r.NumberOfPersons = model.NumberOfPersons
	r.TravelDate = orDefault(model.TravelDate, constant.NotAvailable)
	r.TotalPrice = model.TotalPrice
	r.SpecialRequests = model.SpecialRequests
	r.Time = model.Time
	r.BookedOn = constant.NotAvailable
	r.UserEmail = model.UserEmail
	r.UserName = model.UserName
	r.Status = orDefault(model.Status, constant.BookingStatusConfirmed)

	if r.NumberOfPersons == 0 {
		r.NumberOfPersons = constant.DefaultPersons
	}

	if model.Time > 0 {
		r.BookedOn = timezone.Format(timezone.FromUnixMilli(model.Time), constant.DateFormat)
	}
}

type GetBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Count    int               `json:"count"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking) {
	r.Count = len(models)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(i, mod)
	}
}

// DraftResponse is the booking form prefilled for the signed in user.
type DraftResponse struct {
	Package         string  `json:"package"`
	PackagePrice    float64 `json:"packagePrice"`
	BookerName      string  `json:"bookerName"`
	BookerEmail     string  `json:"bookerEmail"`
	NumberOfPersons int     `json:"numberOfPersons"`
	MinTravelDate   string  `json:"minTravelDate"`
	TotalPrice      float64 `json:"totalPrice"`
}

func (r *DraftResponse) FromSession(pkg string, price float64, current sessionModel.Session) {
	r.Package = pkg
	r.PackagePrice = price
	r.BookerName = current.Name
	r.BookerEmail = current.Email
	r.NumberOfPersons = constant.DefaultPersons
	r.MinTravelDate = timezone.Today()
	r.TotalPrice = TotalPrice(price, constant.DefaultPersons)
}

type QuoteResponse struct {
	PackagePrice    float64 `json:"packagePrice"`
	NumberOfPersons int     `json:"numberOfPersons"`
	TotalPrice      float64 `json:"totalPrice"`
}

func (r *QuoteResponse) FromInput(price float64, persons int) {
	if persons <= 0 {
		persons = constant.DefaultPersons
	}

	r.PackagePrice = price
	r.NumberOfPersons = persons
	r.TotalPrice = TotalPrice(price, persons)
}

func orDefault(value, fallback string) string {
	if value == constant.Empty {
		return fallback
	}

	return value
}
