package account

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// Repository defines the database operations for users.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByActivationCode(ctx context.Context, code string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateProfile(ctx context.Context, user *User) error
	SetActive(ctx context.Context, id string) error
	SetPasswordHash(ctx context.Context, id, hash string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgresRepository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, username, first_name, last_name, avatar_url,
	password_hash, is_active, is_staff, activation_code, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
		&u.AvatarURL, &u.PasswordHash, &u.IsActive, &u.IsStaff,
		&u.ActivationCode, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a user row.
func (r *PostgresRepository) Create(ctx context.Context, user *User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, username, first_name, last_name, avatar_url,
			password_hash, is_active, is_staff, activation_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, user.ID, user.Email, user.Username, user.FirstName, user.LastName,
		user.AvatarURL, user.PasswordHash, user.IsActive, user.IsStaff,
		user.ActivationCode, user.CreatedAt, user.UpdatedAt)
	return err
}

// GetByID fetches a user by primary key.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail fetches a user by email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// GetByActivationCode fetches a user by pending activation code.
func (r *PostgresRepository) GetByActivationCode(ctx context.Context, code string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE activation_code = $1 AND activation_code != ''`, code))
}

// List returns every user ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateProfile updates the mutable profile fields.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, user *User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET username = $1, first_name = $2, last_name = $3, avatar_url = $4, updated_at = NOW()
		WHERE id = $5
	`, user.Username, user.FirstName, user.LastName, user.AvatarURL, user.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive activates the account and burns the activation code.
func (r *PostgresRepository) SetActive(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET is_active = TRUE, activation_code = '', updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPasswordHash replaces the stored password hash.
func (r *PostgresRepository) SetPasswordHash(ctx context.Context, id, hash string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2
	`, hash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
