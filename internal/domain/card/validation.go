package card

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"travel-kernel/internal/pkg/errs"
)

var (
	ErrPANFormat      = errs.NewValidation("cardNumber", "card number must be 13 to 19 digits")
	ErrPANChecksum    = errs.NewValidation("cardNumber", "card number failed the checksum")
	ErrExpiryFormat   = errs.NewValidation("expiryDate", "expiry date must be MM/YY")
	ErrExpired        = errs.NewValidation("expiryDate", "card has expired")
	ErrZIPFormat      = errs.NewValidation("zipCode", "ZIP code must be 5 digits or ZIP+4")
	ErrHolderLength   = errs.NewValidation("cardHolder", "card holder name must be 2 to 100 characters")
	ErrCVVFormat      = errs.NewValidation("cvv", "CVV must be 3 or 4 digits")
	ErrZIPMissing     = errs.NewValidation("zipCode", "saved card has no billing ZIP code on file")
	ErrCardIDRequired = errs.NewValidation("cardId", "cardId is required")
)

var (
	panPattern = regexp.MustCompile(`^\d{13,19}$`)
	zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	cvvPattern = regexp.MustCompile(`^\d{3,4}$`)
	expPattern = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
)

// Well-known processor test numbers. They skip the Luhn check only when the
// policy allows it.
var testCards = map[string]struct{}{
	"4242424242424242": {},
	"4000056655665556": {},
	"5555555555554444": {},
	"2223003122003222": {},
	"5200828282828210": {},
	"378282246310005":  {},
}

type Policy struct {
	AcceptTestCards bool
}

func IsTestCard(pan string) bool {
	_, ok := testCards[pan]
	return ok
}

// Luhn reports whether a digit string passes the mod-10 checksum.
func Luhn(pan string) bool {
	sum := 0
	double := false
	for i := len(pan) - 1; i >= 0; i-- {
		d := int(pan[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// NormalizePAN strips the spaces and dashes users commonly type.
func NormalizePAN(pan string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(pan))
}

func (p Policy) ValidatePAN(pan string) error {
	if !panPattern.MatchString(pan) {
		return ErrPANFormat
	}
	if p.AcceptTestCards && IsTestCard(pan) {
		return nil
	}
	if !Luhn(pan) {
		return ErrPANChecksum
	}
	return nil
}

// Expiry is a card's MM/YY expiry. A card is usable through the last instant
// of its expiry month.
type Expiry struct {
	Month int
	Year  int
}

func ParseExpiry(s string) (Expiry, error) {
	m := expPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Expiry{}, ErrExpiryFormat
	}
	month, _ := strconv.Atoi(m[1])
	yy, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return Expiry{}, ErrExpiryFormat
	}
	return Expiry{Month: month, Year: 2000 + yy}, nil
}

func (e Expiry) String() string {
	return fmt.Sprintf("%02d/%02d", e.Month, e.Year%100)
}

func (e Expiry) Expired(now time.Time) bool {
	firstOfNext := time.Date(e.Year, time.Month(e.Month)+1, 1, 0, 0, 0, 0, time.UTC)
	return !now.UTC().Before(firstOfNext)
}

// ValidateExpiry parses s and rejects past expiries.
func ValidateExpiry(s string, now time.Time) (Expiry, error) {
	e, err := ParseExpiry(s)
	if err != nil {
		return Expiry{}, err
	}
	if e.Expired(now) {
		return Expiry{}, ErrExpired
	}
	return e, nil
}

func ValidateZIP(zip string) error {
	if !zipPattern.MatchString(zip) {
		return ErrZIPFormat
	}
	return nil
}

// NormalizeZIP reduces a ZIP or ZIP+4 to its first five digits.
func NormalizeZIP(zip string) string {
	zip = strings.TrimSpace(zip)
	if len(zip) > 5 {
		return zip[:5]
	}
	return zip
}

func ValidateHolder(holder string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(holder))
	if n < 2 || n > 100 {
		return ErrHolderLength
	}
	return nil
}

func ValidateCVV(cvv string) error {
	if !cvvPattern.MatchString(cvv) {
		return ErrCVVFormat
	}
	return nil
}

// ZIPMismatch is returned when the billing ZIP submitted at payment differs
// from the one stored with the saved card.
func ZIPMismatch(submitted string) error {
	return errs.NewValidation("zipCode", fmt.Sprintf("ZIP code %s does not match the billing ZIP on file", submitted))
}

// Mask renders the only form of a card number that may leave the service.
func Mask(last4 string) string {
	return "****-****-****-" + last4
}

func Last4(pan string) string {
	if len(pan) < 4 {
		return pan
	}
	return pan[len(pan)-4:]
}
