package response

import (
	"time"

	"travel-kernel/internal/usecase/queries"
)

type CardResponse struct {
	CardID     string    `json:"cardId"`
	CardNumber string    `json:"cardNumber"`
	CardHolder string    `json:"cardHolder"`
	ExpiryDate string    `json:"expiryDate"`
	ZipCode    string    `json:"zipCode,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func FromCardView(v *queries.CardView) *CardResponse {
	out := &CardResponse{}
	mustCopy(out, v)
	return out
}

func FromCardViews(vs []*queries.CardView) []*CardResponse {
	out := make([]*CardResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromCardView(v))
	}
	return out
}
