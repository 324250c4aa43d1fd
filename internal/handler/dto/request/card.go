package request

import "travel-kernel/internal/usecase/commands"

type AddCardRequest struct {
	CardNumber string `json:"cardNumber" binding:"required"`
	CardHolder string `json:"cardHolder" binding:"required"`
	ExpiryDate string `json:"expiryDate" binding:"required"`
	ZipCode    string `json:"zipCode,omitempty"`
}

func (r AddCardRequest) ToCommand(userID string) commands.AddCardRequest {
	return commands.AddCardRequest{
		UserID:     userID,
		CardNumber: r.CardNumber,
		CardHolder: r.CardHolder,
		ExpiryDate: r.ExpiryDate,
		ZipCode:    r.ZipCode,
	}
}

type UpdateCardRequest struct {
	CardNumber *string `json:"cardNumber,omitempty"`
	CardHolder *string `json:"cardHolder,omitempty"`
	ExpiryDate *string `json:"expiryDate,omitempty"`
	ZipCode    *string `json:"zipCode,omitempty"`
}

func (r UpdateCardRequest) ToCommand(userID, cardID string) commands.UpdateCardRequest {
	return commands.UpdateCardRequest{
		UserID:     userID,
		CardID:     cardID,
		CardNumber: r.CardNumber,
		CardHolder: r.CardHolder,
		ExpiryDate: r.ExpiryDate,
		ZipCode:    r.ZipCode,
	}
}
