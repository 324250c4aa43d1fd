package billing

import (
	"sort"
	"time"

	"travel-kernel/internal/domain/listing"
)

// Line is one presented entry of a bill. Hotel rows that share a listing are
// folded into one line; flights and cars always get a line per booking.
type Line struct {
	Variant     listing.Variant
	ListingID   string
	BookingIDs  []string
	AmountCents int64
}

// Bill is the logical aggregate of every row sharing a billing id.
type Bill struct {
	BillingID       string
	UserID          string
	CheckoutID      string
	PaymentMethod   string
	Status          Status
	TransactionDate time.Time
	TotalCents      int64
	Lines           []Line
	Rows            []Row
}

// NewBill aggregates the rows of a single billing id.
func NewBill(rows []Row) (*Bill, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyBill
	}
	first := rows[0]
	bill := &Bill{
		BillingID:       first.BillingID,
		UserID:          first.UserID,
		CheckoutID:      first.CheckoutID,
		PaymentMethod:   first.PaymentMethod,
		Status:          StatusCompleted,
		TransactionDate: first.TransactionDate,
	}

	hotelLine := map[string]int{}
	for _, r := range rows {
		if r.BillingID != first.BillingID || r.UserID != first.UserID {
			return nil, ErrMixedBill
		}
		if r.Status == StatusFailed {
			bill.Status = StatusFailed
		}
		if r.TransactionDate.Before(bill.TransactionDate) {
			bill.TransactionDate = r.TransactionDate
		}
		bill.TotalCents += r.AmountCents
		bill.Rows = append(bill.Rows, r)

		listingID := r.Invoice.ListingID
		if r.Variant == listing.VariantHotel && listingID != "" {
			if idx, ok := hotelLine[listingID]; ok {
				bill.Lines[idx].BookingIDs = append(bill.Lines[idx].BookingIDs, r.BookingID)
				bill.Lines[idx].AmountCents += r.AmountCents
				continue
			}
			hotelLine[listingID] = len(bill.Lines)
		}
		bill.Lines = append(bill.Lines, Line{
			Variant:     r.Variant,
			ListingID:   listingID,
			BookingIDs:  []string{r.BookingID},
			AmountCents: r.AmountCents,
		})
	}
	return bill, nil
}

// Group splits rows by billing id, newest transaction first.
func Group(rows []Row) ([]*Bill, error) {
	order := []string{}
	byID := map[string][]Row{}
	for _, r := range rows {
		if _, ok := byID[r.BillingID]; !ok {
			order = append(order, r.BillingID)
		}
		byID[r.BillingID] = append(byID[r.BillingID], r)
	}

	bills := make([]*Bill, 0, len(order))
	for _, id := range order {
		b, err := NewBill(byID[id])
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	sort.SliceStable(bills, func(i, j int) bool {
		return bills[i].TransactionDate.After(bills[j].TransactionDate)
	})
	return bills, nil
}

// SearchFilter selects ledger rows by a date range or a calendar month.
type SearchFilter struct {
	Start  *time.Time
	End    *time.Time
	Month  int
	Year   int
	UserID string
	Status Status
}

// Range resolves the filter to a half-open [from, to) interval in UTC.
func (f SearchFilter) Range() (time.Time, time.Time, error) {
	switch {
	case f.Start != nil && f.End != nil:
		if f.End.Before(*f.Start) {
			return time.Time{}, time.Time{}, ErrSearchInverted
		}
		// end is an inclusive calendar day
		end := f.End.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
		return f.Start.UTC(), end, nil
	case f.Month != 0 || f.Year != 0:
		if f.Month < 1 || f.Month > 12 {
			return time.Time{}, time.Time{}, ErrSearchMonth
		}
		if f.Year == 0 {
			return time.Time{}, time.Time{}, ErrSearchRange
		}
		from := time.Date(f.Year, time.Month(f.Month), 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, time.Time{}, ErrSearchRange
	}
}
