package docstore

import (
	"context"
	"time"

	"travel-kernel/internal/domain/card"
	"travel-kernel/internal/domain/user"
	"travel-kernel/internal/infra"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type savedCardDoc struct {
	CardID     string    `bson:"cardId"`
	CardNumber string    `bson:"cardNumber"`
	CardHolder string    `bson:"cardHolder"`
	ExpiryDate string    `bson:"expiryDate"`
	Last4      string    `bson:"last4"`
	ZipCode    string    `bson:"zipCode,omitempty"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

type userDoc struct {
	ID           string         `bson:"_id" yaml:"id"`
	UserID       string         `bson:"userId" yaml:"-"`
	Email        string         `bson:"email" yaml:"email"`
	Role         string         `bson:"role" yaml:"role"`
	SavedCards   []savedCardDoc `bson:"savedCreditCards" yaml:"-"`
	CardsVersion int64          `bson:"cardsVersion" yaml:"-"`
	CreatedAt    time.Time      `bson:"createdAt" yaml:"-"`
	UpdatedAt    time.Time      `bson:"updatedAt" yaml:"-"`
}

// WalletStore reads and writes the savedCreditCards array of a user record.
type WalletStore struct {
	*Store
}

func NewWalletStore(s *Store) *WalletStore {
	return &WalletStore{Store: s}
}

func (s *WalletStore) Load(ctx context.Context, userID string) (*card.Wallet, error) {
	var doc userDoc
	err := s.collection(collUsers).FindOne(ctx,
		bson.M{"_id": userID},
		options.FindOne().SetProjection(bson.M{"savedCreditCards": 1, "cardsVersion": 1}),
	).Decode(&doc)
	if err != nil {
		return nil, wrapMongoErr(s.logger, "failed to load wallet", err)
	}

	cards := make([]card.SavedCard, 0, len(doc.SavedCards))
	for _, c := range doc.SavedCards {
		cards = append(cards, card.SavedCard{
			ID:        c.CardID,
			CipherPAN: c.CardNumber,
			Holder:    c.CardHolder,
			Expiry:    c.ExpiryDate,
			Last4:     c.Last4,
			ZIP:       c.ZipCode,
			CreatedAt: c.CreatedAt.UTC(),
			UpdatedAt: c.UpdatedAt.UTC(),
		})
	}
	return card.ReconstructWallet(userID, doc.CardsVersion, cards), nil
}

// Save replaces the card array if nobody else saved since Load.
func (s *WalletStore) Save(ctx context.Context, w *card.Wallet) error {
	cards := make([]savedCardDoc, 0, w.Len())
	for _, c := range w.Cards() {
		cards = append(cards, savedCardDoc{
			CardID:     c.ID,
			CardNumber: c.CipherPAN,
			CardHolder: c.Holder,
			ExpiryDate: c.Expiry,
			Last4:      c.Last4,
			ZipCode:    c.ZIP,
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
		})
	}

	filter := bson.M{"_id": w.UserID(), "cardsVersion": w.Version()}
	if w.Version() == 0 {
		// records written before versioning carry no cardsVersion
		filter = bson.M{"_id": w.UserID(), "$or": bson.A{
			bson.M{"cardsVersion": 0},
			bson.M{"cardsVersion": bson.M{"$exists": false}},
		}}
	}

	res, err := s.collection(collUsers).UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"savedCreditCards": cards, "updatedAt": s.clock.Now()},
		"$inc": bson.M{"cardsVersion": 1},
	})
	if err != nil {
		return wrapMongoErr(s.logger, "failed to save wallet", err)
	}
	if res.MatchedCount == 0 {
		return infra.WrapRepoErr(s.logger, infra.KindWriteConflict, "wallet changed concurrently", nil)
	}
	return nil
}

// UpsertUser writes the identity fields of a user record, leaving saved cards untouched.
func (s *WalletStore) UpsertUser(ctx context.Context, u *user.User) error {
	now := s.clock.Now()
	_, err := s.collection(collUsers).UpdateOne(ctx,
		bson.M{"_id": u.ID()},
		bson.M{
			"$set": bson.M{"userId": u.ID(), "email": u.Email().Value(), "role": string(u.Role()), "updatedAt": now},
			"$setOnInsert": bson.M{
				"createdAt":        u.CreatedAt(),
				"savedCreditCards": bson.A{},
				"cardsVersion":     int64(0),
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return wrapMongoErr(s.logger, "failed to upsert user", err)
	}
	return nil
}
