package docstore

import (
	"context"
	"log/slog"
	"os"

	"travel-kernel/internal/domain/user"
	"travel-kernel/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

// Fixtures is the YAML seed format for development and e2e databases.
type Fixtures struct {
	Users   []userDoc    `yaml:"users"`
	Flights []listingDoc `yaml:"flights"`
	Hotels  []listingDoc `yaml:"hotels"`
	Cars    []listingDoc `yaml:"cars"`
}

func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errs.Wrap(err, "failed to parse listing fixtures")
	}
	return &f, nil
}

// LoadListingFixtures upserts every record of the YAML file at path.
func (s *Store) LoadListingFixtures(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errs.Wrapf(err, "read fixtures %s", path)
	}
	f, err := ParseFixtures(data)
	if err != nil {
		return err
	}
	return s.ApplyFixtures(ctx, f)
}

func (s *Store) ApplyFixtures(ctx context.Context, f *Fixtures) error {
	sets := []struct {
		coll string
		docs []listingDoc
	}{
		{collFlights, f.Flights},
		{collHotels, f.Hotels},
		{collCars, f.Cars},
	}
	for _, set := range sets {
		for _, doc := range set.docs {
			_, err := s.collection(set.coll).ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
			if err != nil {
				return wrapMongoErr(s.logger, "failed to seed listing", err)
			}
		}
	}

	wallets := NewWalletStore(s)
	for _, u := range f.Users {
		email, err := user.NewEmail(u.Email)
		if err != nil {
			return errs.Wrapf(err, "fixture user %s", u.ID)
		}
		role, err := user.NewRole(u.Role)
		if err != nil {
			return errs.Wrapf(err, "fixture user %s", u.ID)
		}
		rec, err := user.NewUser(u.ID, email, role, s.clock.Now())
		if err != nil {
			return errs.Wrapf(err, "fixture user %s", u.ID)
		}
		if err := wallets.UpsertUser(ctx, rec); err != nil {
			return err
		}
	}

	s.logger.Info("fixtures applied",
		slog.Int("flights", len(f.Flights)),
		slog.Int("hotels", len(f.Hotels)),
		slog.Int("cars", len(f.Cars)),
		slog.Int("users", len(f.Users)),
	)
	return nil
}
