// exposes a Store interface that is passed to API handlers
package db

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)

	// settings functions
	GetSettings(userID int) (model.Settings, error)
	SaveSettings(userID int, settings model.Settings) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{db: DB}
}

func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	query := `
	INSERT INTO users (email, hashed_password, name, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id;
	`
	var newID int
	if err := s.db.QueryRow(query, email, hashedPassword, name).Scan(&newID); err != nil {
		log.Error().Err(err).Msg("failed to create user")
		return 0, err
	}
	return newID, nil
}

func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, email, hashed_password, name, created_at, updated_at
	FROM users
	WHERE email = $1;
	`
	if err := s.db.Get(&u, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by email")
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, email, hashed_password, name, created_at, updated_at
	FROM users
	WHERE id = $1;
	`
	if err := s.db.Get(&u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by id")
		return nil, err
	}
	return &u, nil
}

// GetSettings returns the user's saved settings, or the defaults when
// the user never saved any.
func (s *pgStore) GetSettings(userID int) (model.Settings, error) {
	var settings model.Settings
	query := `
	SELECT congregation_window_minutes, travel_mode, travel_buffer_minutes,
	       prayer_duration_minutes, max_search_radius_km, distance_unit
	FROM user_settings
	WHERE user_id = $1;
	`
	if err := s.db.Get(&settings, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DefaultSettings(), nil
		}
		log.Error().Err(err).Msg("failed to get user settings")
		return model.Settings{}, err
	}
	return settings, nil
}

func (s *pgStore) SaveSettings(userID int, settings model.Settings) error {
	query := `
	INSERT INTO user_settings (
		user_id, congregation_window_minutes, travel_mode,
		travel_buffer_minutes, prayer_duration_minutes,
		max_search_radius_km, distance_unit, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, now())
	ON CONFLICT (user_id) DO UPDATE SET
		congregation_window_minutes = EXCLUDED.congregation_window_minutes,
		travel_mode                 = EXCLUDED.travel_mode,
		travel_buffer_minutes       = EXCLUDED.travel_buffer_minutes,
		prayer_duration_minutes     = EXCLUDED.prayer_duration_minutes,
		max_search_radius_km        = EXCLUDED.max_search_radius_km,
		distance_unit               = EXCLUDED.distance_unit,
		updated_at                  = now();
	`
	if _, err := s.db.Exec(query,
		userID,
		settings.CongregationWindowMinutes,
		settings.TravelMode,
		settings.TravelBufferMinutes,
		settings.PrayerDurationMinutes,
		settings.MaxSearchRadiusKm,
		settings.DistanceUnit,
	); err != nil {
		log.Error().Err(err).Msg("failed to save user settings")
		return err
	}
	return nil
}
