package request

import (
	"time"

	"travel-kernel/internal/domain/billing"
)

type BillSearchQuery struct {
	Start  *time.Time `form:"start" time_format:"2006-01-02" time_utc:"1"`
	End    *time.Time `form:"end" time_format:"2006-01-02" time_utc:"1"`
	Month  int        `form:"month"`
	Year   int        `form:"year"`
	UserID string     `form:"userId"`
	Status string     `form:"status"`
}

func (q BillSearchQuery) ToFilter() billing.SearchFilter {
	return billing.SearchFilter{
		Start:  q.Start,
		End:    q.End,
		Month:  q.Month,
		Year:   q.Year,
		UserID: q.UserID,
		Status: billing.Status(q.Status),
	}
}
