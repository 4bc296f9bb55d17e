// Package shared sets up the dependencies common to the apps.
package shared

import (
	"context"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/student"
	"github.com/trezcool/academia/storage/database"
	inmemdb "github.com/trezcool/academia/storage/database/inmem"
	sqlxrepos "github.com/trezcool/academia/storage/database/sqlx"
	"github.com/trezcool/academia/storage/seed"
)

// NewValidator returns a validator with every custom validation registered, and its english translator.
func NewValidator() (*validator.Validate, ut.Translator) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	core.InitValidators(validate, translator)
	student.InitValidators(validate, translator)
	return validate, translator
}

type resetter interface {
	Reset(ctx context.Context) error
}

// Store is an open storage engine.
type Store struct {
	Repos seed.Repositories

	engine resetter
	close  func() error
}

// Reset empties the store and reloads the seed data.
func (s *Store) Reset(ctx context.Context) error {
	return s.engine.Reset(ctx)
}

func (s *Store) Close() error {
	return s.close()
}

// OpenStore opens the storage engine selected by conf.Database.Engine.
// The in-memory engine is always seeded. Postgres is migrated up, then seeded if conf.Database.Seed
// is set and it holds no student yet.
func OpenStore(ctx context.Context, conf *core.Config, logger core.Logger) (*Store, error) {
	fixture, err := seed.Default()
	if err != nil {
		return nil, err
	}

	switch conf.Database.Engine {
	case core.EngineInMem:
		db, err := inmemdb.Open(ctx, fixture)
		if err != nil {
			return nil, err
		}
		return &Store{Repos: db.Repositories(), engine: db, close: func() error { return nil }}, nil

	case core.EnginePostgres:
		db, err := database.Open(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(db, "up"); err != nil {
			_ = db.Close()
			return nil, err
		}
		st := sqlxrepos.NewStore(db, fixture)
		store := &Store{Repos: st.Repositories(), engine: st, close: db.Close}

		if conf.Database.Seed {
			students, err := store.Repos.Students.QueryStudents(ctx, student.QueryFilter{})
			if err != nil {
				_ = db.Close()
				return nil, errors.Wrap(err, "checking seed")
			}
			if len(students) == 0 {
				logger.Info("seeding empty database")
				if err = st.Reset(ctx); err != nil {
					_ = db.Close()
					return nil, err
				}
			}
		}
		return store, nil

	default:
		return nil, errors.Errorf("unknown database engine %q", conf.Database.Engine)
	}
}
