package request

import (
	"time"

	"travel-kernel/internal/domain/booking"
	"travel-kernel/internal/usecase/shared"
)

type ListBookingsQuery struct {
	Status    string `form:"status"`
	BillingID string `form:"billingId"`
}

func (q ListBookingsQuery) ToFilter() shared.BookingFilter {
	return shared.BookingFilter{Status: booking.Status(q.Status), BillingID: q.BillingID}
}

type FailBookingsRequest struct {
	BookingIDs []string `json:"bookingIds" binding:"required,min=1"`
}

// ExpireBookingsRequest overrides the configured hold horizon when Minutes is set.
type ExpireBookingsRequest struct {
	Minutes *int `json:"minutes,omitempty" binding:"omitempty,min=1"`
}

func (r ExpireBookingsRequest) Horizon() time.Duration {
	if r.Minutes == nil {
		return 0
	}
	return time.Duration(*r.Minutes) * time.Minute
}

type AvailabilityQuery struct {
	SubType string     `form:"subType"`
	Date    *time.Time `form:"date" time_format:"2006-01-02" time_utc:"1"`
	From    *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To      *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}
