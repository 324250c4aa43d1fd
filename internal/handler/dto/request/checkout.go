package request

import (
	"travel-kernel/internal/usecase/commands"
)

type CartItemRequest struct {
	ListingID  string `json:"listingId" binding:"required"`
	Variant    string `json:"variant" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	SubType    string `json:"subType,omitempty"`
	TravelDate *Date  `json:"travelDate,omitempty"`
	CheckIn    *Date  `json:"checkIn,omitempty"`
	CheckOut   *Date  `json:"checkOut,omitempty"`
	PickupDate *Date  `json:"pickupDate,omitempty"`
	ReturnDate *Date  `json:"returnDate,omitempty"`
}

type CheckoutRequest struct {
	UserID    string            `json:"userId" binding:"required"`
	CartItems []CartItemRequest `json:"cartItems" binding:"required,min=1,dive"`
}

func (r CheckoutRequest) ToCommand() commands.CheckoutRequest {
	items := make([]commands.CartItem, 0, len(r.CartItems))
	for _, it := range r.CartItems {
		items = append(items, commands.CartItem{
			ListingID:  it.ListingID,
			Variant:    it.Variant,
			Quantity:   it.Quantity,
			SubType:    it.SubType,
			TravelDate: it.TravelDate.Ptr(),
			CheckIn:    it.CheckIn.Ptr(),
			CheckOut:   it.CheckOut.Ptr(),
			PickupDate: it.PickupDate.Ptr(),
			ReturnDate: it.ReturnDate.Ptr(),
		})
	}
	return commands.CheckoutRequest{UserID: r.UserID, Items: items}
}

type CardDataRequest struct {
	CardID     string `json:"cardId,omitempty"`
	CardNumber string `json:"cardNumber,omitempty"`
	CardHolder string `json:"cardHolder,omitempty"`
	ExpiryDate string `json:"expiryDate,omitempty"`
	CVV        string `json:"cvv" binding:"required"`
	ZipCode    string `json:"zipCode,omitempty"`
}

type PaymentRequest struct {
	CheckoutID    string          `json:"checkoutId"`
	UserID        string          `json:"userId" binding:"required"`
	BookingIDs    []string        `json:"bookingIds" binding:"required,min=1"`
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
	CardData      CardDataRequest `json:"cardData"`
}

func (r PaymentRequest) ToCommand() commands.PaymentRequest {
	return commands.PaymentRequest{
		CheckoutID:    r.CheckoutID,
		UserID:        r.UserID,
		BookingIDs:    r.BookingIDs,
		PaymentMethod: r.PaymentMethod,
		Card: commands.CardData{
			CardID:     r.CardData.CardID,
			CardNumber: r.CardData.CardNumber,
			CardHolder: r.CardData.CardHolder,
			ExpiryDate: r.CardData.ExpiryDate,
			CVV:        r.CardData.CVV,
			ZipCode:    r.CardData.ZipCode,
		},
	}
}
