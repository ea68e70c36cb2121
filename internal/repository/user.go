package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"artnotifier/internal/entity"
	"artnotifier/pkg/storage/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository reads and writes the preference matrix stored on the user
// row. The rest of the user record belongs to another service.
type UserRepository struct {
	db *postgres.Postgres
}

func NewUserRepository(db *postgres.Postgres) *UserRepository {
	return &UserRepository{db: db}
}

// GetPreferences returns the stored matrix, or the defaults when the user
// never saved one.
func (r *UserRepository) GetPreferences(
	ctx context.Context,
	qe postgres.QueryExecuter,
	userID uuid.UUID,
) (*entity.PreferenceMatrix, error) {
	const op = "repository.UserRepository.GetPreferences"

	if qe == nil {
		qe = r.db
	}

	sql, args, err := r.db.Select("notification_preferences").
		From(_usersTable).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	var raw []byte
	if err = qe.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}
		return nil, mapError(op, err)
	}

	if len(raw) == 0 {
		prefs := entity.DefaultPreferences()
		return &prefs, nil
	}

	var prefs entity.PreferenceMatrix
	if err = json.Unmarshal(raw, &prefs); err != nil {
		return nil, fmt.Errorf("%s: decode preferences: %w", op, err)
	}
	return &prefs, nil
}

func (r *UserRepository) SetPreferences(
	ctx context.Context,
	qe postgres.QueryExecuter,
	userID uuid.UUID,
	prefs entity.PreferenceMatrix,
) error {
	const op = "repository.UserRepository.SetPreferences"

	if qe == nil {
		qe = r.db
	}

	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("%s: encode preferences: %w", op, err)
	}

	sql, args, err := r.db.Update(_usersTable).
		Set("notification_preferences", raw).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}

	res, err := qe.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(op, err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
	}
	return nil
}
