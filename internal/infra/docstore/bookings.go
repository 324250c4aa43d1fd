package docstore

import (
	"context"
	"time"

	"travel-kernel/internal/domain/booking"
	"travel-kernel/internal/domain/listing"
	"travel-kernel/internal/infra"
	"travel-kernel/internal/pkg/errs"
	"travel-kernel/internal/usecase/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

type bookingDoc struct {
	ID          string     `bson:"_id"`
	UserID      string     `bson:"userId"`
	ListingID   string     `bson:"listingId"`
	Variant     string     `bson:"variant"`
	Quantity    int        `bson:"quantity"`
	SubType     string     `bson:"subType,omitempty"`
	TravelDate  *time.Time `bson:"travelDate,omitempty"`
	CheckIn     *time.Time `bson:"checkIn,omitempty"`
	CheckOut    *time.Time `bson:"checkOut,omitempty"`
	TotalAmount int64      `bson:"totalAmount"`
	Status      string     `bson:"status"`
	BillingID   string     `bson:"billingId,omitempty"`
	CheckoutID  string     `bson:"checkoutId,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
}

func toBookingDoc(b *booking.Booking) bookingDoc {
	d := b.Dates()
	return bookingDoc{
		ID:          b.ID(),
		UserID:      b.UserID(),
		ListingID:   b.ListingID(),
		Variant:     string(b.Variant()),
		Quantity:    b.Quantity(),
		SubType:     b.SubType(),
		TravelDate:  d.TravelDate,
		CheckIn:     d.CheckIn,
		CheckOut:    d.CheckOut,
		TotalAmount: b.TotalAmount().Cents(),
		Status:      string(b.Status()),
		BillingID:   b.BillingID(),
		CheckoutID:  b.CheckoutID(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
}

func (d bookingDoc) toDomain() *booking.Booking {
	return booking.ReconstructBooking(
		d.ID, d.UserID, d.ListingID,
		listing.Variant(d.Variant),
		d.Quantity,
		d.SubType,
		booking.Dates{TravelDate: utcPtr(d.TravelDate), CheckIn: utcPtr(d.CheckIn), CheckOut: utcPtr(d.CheckOut)},
		booking.NewMoney(d.TotalAmount),
		booking.Status(d.Status),
		d.BillingID, d.CheckoutID,
		d.CreatedAt.UTC(), d.UpdatedAt.UTC(),
	)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

var activeStatuses = bson.A{string(booking.StatusPending), string(booking.StatusConfirmed)}

// BookingStore persists bookings and serialises holds through inventory_locks.
type BookingStore struct {
	*Store
}

func NewBookingStore(s *Store) *BookingStore {
	return &BookingStore{Store: s}
}

func (s *BookingStore) txnOptions() *options.TransactionOptions {
	return options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())
}

// Hold bumps the lock document for key before running fn. Two holds on the
// same key therefore write the same document and the later one aborts with a
// write conflict. The conflict is reported as exhausted capacity.
func (s *BookingStore) Hold(ctx context.Context, key shared.InventoryKey, fn func(ctx context.Context, tx shared.BookingTx) error) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return wrapMongoErr(s.logger, "failed to start session", err)
	}
	defer sess.EndSession(context.WithoutCancel(ctx))

	err = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sess.StartTransaction(s.txnOptions()); err != nil {
			return err
		}
		abort := func(cause error) error {
			if abortErr := sess.AbortTransaction(context.WithoutCancel(sc)); abortErr != nil {
				s.logger.Warn("hold transaction abort failed", "key", key.String(), "error", abortErr.Error())
			}
			return cause
		}

		_, err := s.collection(collLocks).UpdateOne(sc,
			bson.M{"_id": key.String()},
			bson.M{
				"$inc": bson.M{"version": 1},
				"$set": bson.M{"updatedAt": s.clock.Now()},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return abort(err)
		}

		if err := fn(sc, &bookingTx{store: s}); err != nil {
			return abort(err)
		}
		return sess.CommitTransaction(sc)
	})
	if err == nil {
		return nil
	}

	if isWriteConflict(err) || mongo.IsDuplicateKeyError(err) {
		s.logger.Info("concurrent hold collided", "key", key.String())
		return booking.ErrInsufficientCapacity
	}
	if isRepoOrDomain(err) {
		return err
	}
	return wrapMongoErr(s.logger, "hold transaction failed", err)
}

// Within retries the whole callback on transient transaction errors.
func (s *BookingStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.BookingTx) error) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return wrapMongoErr(s.logger, "failed to start session", err)
	}
	defer sess.EndSession(context.WithoutCancel(ctx))

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, &bookingTx{store: s})
	}, s.txnOptions())
	if err == nil {
		return nil
	}
	if isRepoOrDomain(err) {
		return err
	}
	return wrapMongoErr(s.logger, "booking transaction failed", err)
}

func isRepoOrDomain(err error) bool {
	var repoErr infra.RepositoryError
	if errs.As(err, &repoErr) {
		return true
	}
	_, ok := errs.AsValidation(err)
	return ok || errs.Is(err, errs.ErrConflict) || errs.Is(err, errs.ErrNotFound)
}

func (s *BookingStore) Active(ctx context.Context, listingID string, from, to time.Time) ([]*booking.Booking, error) {
	return findActive(ctx, s.Store, listingID, from, to)
}

func (s *BookingStore) FindByID(ctx context.Context, id string) (*booking.Booking, error) {
	return findBookingByID(ctx, s.Store, id)
}

func (s *BookingStore) FindByIDs(ctx context.Context, ids []string) ([]*booking.Booking, error) {
	return findBookings(ctx, s.Store, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

func (s *BookingStore) ListByUser(ctx context.Context, userID string, filter shared.BookingFilter) ([]*booking.Booking, error) {
	q := bson.M{"userId": userID}
	if filter.Status != "" {
		q["status"] = string(filter.Status)
	}
	if filter.BillingID != "" {
		q["billingId"] = filter.BillingID
	}
	return findBookings(ctx, s.Store, q, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

type bookingTx struct {
	store *BookingStore
}

func (t *bookingTx) coll() *mongo.Collection {
	return t.store.collection(collBookings)
}

func (t *bookingTx) Active(ctx context.Context, listingID string, from, to time.Time) ([]*booking.Booking, error) {
	return findActive(ctx, t.store.Store, listingID, from, to)
}

func (t *bookingTx) FindByID(ctx context.Context, id string) (*booking.Booking, error) {
	return findBookingByID(ctx, t.store.Store, id)
}

func (t *bookingTx) FindByIDs(ctx context.Context, ids []string) ([]*booking.Booking, error) {
	return findBookings(ctx, t.store.Store, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

func (t *bookingTx) FindByBillingID(ctx context.Context, billingID string) ([]*booking.Booking, error) {
	return findBookings(ctx, t.store.Store, bson.M{"billingId": billingID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

func (t *bookingTx) Insert(ctx context.Context, b *booking.Booking) error {
	if _, err := t.coll().InsertOne(ctx, toBookingDoc(b)); err != nil {
		return wrapMongoErr(t.store.logger, "failed to insert booking", err)
	}
	return nil
}

func (t *bookingTx) Update(ctx context.Context, b *booking.Booking, from booking.Status) error {
	set := bson.M{
		"status":    string(b.Status()),
		"updatedAt": b.UpdatedAt(),
	}
	if b.BillingID() != "" {
		set["billingId"] = b.BillingID()
	}
	res, err := t.coll().UpdateOne(ctx,
		bson.M{"_id": b.ID(), "status": string(from)},
		bson.M{"$set": set},
	)
	if err != nil {
		return wrapMongoErr(t.store.logger, "failed to update booking", err)
	}
	if res.MatchedCount == 0 {
		return infra.WrapRepoErr(t.store.logger, infra.KindWriteConflict, "booking status changed concurrently", nil)
	}
	return nil
}

func (t *bookingTx) Stale(ctx context.Context, cutoff time.Time, scope shared.StaleScope) ([]*booking.Booking, error) {
	q := bson.M{
		"status":    string(booking.StatusPending),
		"createdAt": bson.M{"$lte": cutoff},
	}
	if scope.UserID != "" {
		q["userId"] = scope.UserID
	}
	if scope.ListingID != "" {
		q["listingId"] = scope.ListingID
	}
	return findBookings(ctx, t.store.Store, q, nil)
}

// findActive uses closed-interval overlap on either date shape; the domain
// refines the result per variant.
func findActive(ctx context.Context, s *Store, listingID string, from, to time.Time) ([]*booking.Booking, error) {
	q := bson.M{
		"listingId": listingID,
		"status":    bson.M{"$in": activeStatuses},
		"$or": bson.A{
			bson.M{"travelDate": bson.M{"$gte": from, "$lte": to}},
			bson.M{"checkIn": bson.M{"$lte": to}, "checkOut": bson.M{"$gte": from}},
		},
	}
	return findBookings(ctx, s, q, nil)
}

func findBookingByID(ctx context.Context, s *Store, id string) (*booking.Booking, error) {
	var doc bookingDoc
	if err := s.collection(collBookings).FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, wrapMongoErr(s.logger, "failed to find booking", err)
	}
	return doc.toDomain(), nil
}

func findBookings(ctx context.Context, s *Store, filter bson.M, opts *options.FindOptions) ([]*booking.Booking, error) {
	findOpts := []*options.FindOptions{}
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	cur, err := s.collection(collBookings).Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, wrapMongoErr(s.logger, "failed to query bookings", err)
	}
	var docs []bookingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrapMongoErr(s.logger, "failed to decode bookings", err)
	}
	out := make([]*booking.Booking, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
