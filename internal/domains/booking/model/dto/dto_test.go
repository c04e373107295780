package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tripplanner/internal/domains/booking/model"
	"tripplanner/internal/domains/booking/model/dto"
	sessionModel "tripplanner/internal/domains/session/model"
	"tripplanner/shared/constant"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		Package:         "Paris Getaway",
		PackagePrice:    50000,
		BookerName:      "Ann",
		BookerEmail:     "ann@x.com",
		BookerPhone:     "9876543210",
		NumberOfPersons: 2,
		TravelDate:      "2030-05-01",
		SpecialRequests: "window seat",
	}

	booking := req.ToModel(sessionModel.Session{Name: "Ann", Email: "ann@x.com"})

	assert.NotEmpty(t, booking.ID, "expected ID to be generated")
	assert.Equal(t, req.Package, booking.Package)
	assert.InDelta(t, 100000, booking.TotalPrice, 0)
	assert.Equal(t, 2, booking.NumberOfPersons)
	assert.Equal(t, "window seat", booking.SpecialRequests)
	assert.Equal(t, "ann@x.com", booking.UserEmail)
	assert.Equal(t, "Ann", booking.UserName)
	assert.Equal(t, constant.BookingStatusConfirmed, booking.Status)
	assert.Positive(t, booking.Time)
}

func TestCreateBookingRequest_Normalize(t *testing.T) {
	req := dto.CreateBookingRequest{
		BookerName:  "  Ann ",
		BookerEmail: " ann@x.com",
		BookerPhone: "9876543210 ",
		TravelDate:  " ",
	}

	req.Normalize()

	assert.Equal(t, "Ann", req.BookerName)
	assert.Equal(t, "ann@x.com", req.BookerEmail)
	assert.Equal(t, "9876543210", req.BookerPhone)
	assert.True(t, req.MissingRequired())
}

func TestTotalPrice(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		persons int
		want    float64
	}{
		{name: "paris for two", price: 50000, persons: 2, want: 100000},
		{name: "single", price: 1200.5, persons: 1, want: 1200.5},
		{name: "zero persons", price: 700, persons: 0, want: 700},
		{name: "free package", price: 0, persons: 5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, dto.TotalPrice(tt.price, tt.persons), 0)
		})
	}
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	models := []model.Booking{
		{ID: "a", Package: "Paris Getaway", BookerName: "Ann", Status: constant.BookingStatusConfirmed},
		{ID: "b", Package: "Bali Escape"},
	}

	var res dto.GetBookingsResponse
	res.FromModels(models)

	assert.Equal(t, 2, res.Count)
	assert.Len(t, res.Bookings, 2)
	assert.Equal(t, "a", res.Bookings[0].ID)
	assert.Equal(t, 1, res.Bookings[1].Index)
	assert.Equal(t, constant.DefaultBookerName, res.Bookings[1].BookerName)
	assert.Equal(t, constant.NotAvailable, res.Bookings[1].BookedOn)
}

func TestQuoteResponse_FromInput(t *testing.T) {
	var res dto.QuoteResponse
	res.FromInput(50000, -2)

	assert.Equal(t, 1, res.NumberOfPersons)
	assert.InDelta(t, 50000, res.TotalPrice, 0)
}
