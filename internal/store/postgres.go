package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	model "github.com/kasundularaam/flash-feather-starter-v6/internal/models"
)

const userColumns = `id, name, email, COALESCE(hashed_password,'') AS hashed_password,
	is_active, auth_provider, role, COALESCE(profile_picture,'') AS profile_picture,
	created_at, updated_at`

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	return scanUser(row)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	return scanUser(row)
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*model.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE name=$1`, name)
	return scanUser(row)
}

func (s *PostgresStore) Create(ctx context.Context, user *model.User) (*model.User, error) {
	err := s.db.QueryRow(ctx,
		`INSERT INTO users(name, email, hashed_password, is_active, auth_provider, role, profile_picture)
		 VALUES($1,$2,$3,true,$4,$5,$6)
		 RETURNING id, is_active, created_at, updated_at`,
		user.Name, user.Email, user.HashedPassword, user.AuthProvider, user.Role, user.ProfilePicture,
	).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	return user, nil
}

func (s *PostgresStore) UpdateProfilePicture(ctx context.Context, id, pictureURL string) error {
	res, err := s.db.Exec(ctx,
		`UPDATE users SET profile_picture=$2, updated_at=NOW() WHERE id=$1`,
		id, pictureURL,
	)
	if err != nil {
		return fmt.Errorf("could not update profile picture: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// scanUser scanne une ligne SQL vers un User
func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.HashedPassword,
		&user.IsActive, &user.AuthProvider, &user.Role, &user.ProfilePicture,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not scan user row: %w", err)
	}
	return &user, nil
}
