package response

import (
	"time"

	"travel-kernel/internal/domain/booking"
	"travel-kernel/internal/usecase/commands"
	"travel-kernel/internal/usecase/queries"
)

// Amounts are integer cents.
type BookingResponse struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	ListingID        string     `json:"listingId"`
	Variant          string     `json:"variant"`
	Quantity         int        `json:"quantity"`
	SubType          string     `json:"subType,omitempty"`
	TravelDate       *time.Time `json:"travelDate,omitempty"`
	CheckIn          *time.Time `json:"checkIn,omitempty"`
	CheckOut         *time.Time `json:"checkOut,omitempty"`
	TotalAmountCents int64      `json:"totalAmount"`
	Status           string     `json:"status"`
	BillingID        string     `json:"billingId,omitempty"`
	CheckoutID       string     `json:"checkoutId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	out := &BookingResponse{}
	mustCopy(out, v)
	return out
}

func FromBookingViews(vs []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromBookingView(v))
	}
	return out
}

func FromBookings(bs []*booking.Booking) []*BookingResponse {
	return FromBookingViews(queries.NewBookingViews(bs))
}

type CheckoutResponse struct {
	CheckoutID       string             `json:"checkoutId"`
	Bookings         []*BookingResponse `json:"bookings"`
	TotalAmountCents int64              `json:"totalAmount"`
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		CheckoutID:       r.CheckoutID,
		Bookings:         FromBookings(r.Bookings),
		TotalAmountCents: r.TotalAmountCents,
	}
}

type PaymentResponse struct {
	BillingID        string             `json:"billingId"`
	Bookings         []*BookingResponse `json:"bookings"`
	TotalAmountCents int64              `json:"totalAmount"`
}

func FromPaymentResult(r *commands.PaymentResult) *PaymentResponse {
	return &PaymentResponse{
		BillingID:        r.BillingID,
		Bookings:         FromBookings(r.Bookings),
		TotalAmountCents: r.TotalAmountCents,
	}
}

type CancelResponse struct {
	Cancelled []*BookingResponse `json:"cancelled"`
}

type FailBookingsResponse struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

type ExpireBookingsResponse struct {
	ExpiredIDs []string `json:"expiredIds"`
}

type AvailabilityResponse struct {
	ListingID  string     `json:"listingId"`
	Variant    string     `json:"variant"`
	SubType    string     `json:"subType,omitempty"`
	TravelDate *time.Time `json:"travelDate,omitempty"`
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
	Remaining  int        `json:"remaining"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	out := &AvailabilityResponse{}
	mustCopy(out, v)
	return out
}
