package docstore

import (
	"context"
	"errors"
	"log/slog"

	"travel-kernel/internal/pkg/clock"
	"travel-kernel/internal/pkg/config"
	"travel-kernel/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collBookings  = "bookings"
	collUsers     = "users"
	collFlights   = "flights"
	collHotels    = "hotels"
	collCars      = "cars"
	collAdmins    = "admins"
	collProviders = "providers"
	collLocks     = "inventory_locks"
)

const codeNamespaceExists = 48

func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, func(), error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetTimeout(cfg.Timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to connect document store")
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, nil, errs.Wrap(err, "failed to ping document store")
	}

	cleanup := func() {
		slog.Info("closing document store client")
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Warn("document store disconnect failed", "error", err.Error())
		}
	}
	return client, cleanup, nil
}

// Store owns the database handle shared by every collection adapter.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	clock  clock.Clock
	logger *slog.Logger
}

func NewStore(client *mongo.Client, cfg config.MongoConfig, clk clock.Clock, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		db:     client.Database(cfg.Database),
		clock:  clk,
		logger: logger,
	}
}

func (s *Store) Name() string { return "mongodb" }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// EnsureIndexes creates the collections and indexes the kernel relies on.
// Collections must exist up front: a multi-document transaction cannot create one.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for _, name := range []string{collBookings, collUsers, collFlights, collHotels, collCars, collAdmins, collProviders, collLocks} {
		if err := s.db.CreateCollection(ctx, name); err != nil {
			var cmdErr mongo.CommandError
			if errors.As(err, &cmdErr) && cmdErr.Code == codeNamespaceExists {
				continue
			}
			return errs.Wrapf(err, "create collection %s", name)
		}
	}

	bookingIdx := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "listingId", Value: 1},
				{Key: "variant", Value: 1},
				{Key: "subType", Value: 1},
				{Key: "checkIn", Value: 1},
				{Key: "checkOut", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetName("bookings_availability"),
		},
		{
			Keys:    bson.D{{Key: "listingId", Value: 1}, {Key: "status", Value: 1}, {Key: "travelDate", Value: 1}},
			Options: options.Index().SetName("bookings_flight_day"),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("bookings_user_status"),
		},
		{
			Keys:    bson.D{{Key: "billingId", Value: 1}},
			Options: options.Index().SetName("bookings_billing").SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("bookings_stale_holds"),
		},
	}
	if _, err := s.collection(collBookings).Indexes().CreateMany(ctx, bookingIdx); err != nil {
		return errs.Wrap(err, "create booking indexes")
	}

	userIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("users_email").SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetName("users_user_id").SetUnique(true)},
	}
	if _, err := s.collection(collUsers).Indexes().CreateMany(ctx, userIdx); err != nil {
		return errs.Wrap(err, "create user indexes")
	}

	s.logger.Info("document store indexes ensured", slog.String("database", s.db.Name()))
	return nil
}
