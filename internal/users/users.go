// Package users stores application accounts and checks their credentials.
package users

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrInvalidUser = errors.New("login and password are required")
	ErrInvalidRole = errors.New("unknown role")
	ErrLastAdmin   = errors.New("cannot remove the last admin")
)

// User is an account without its credentials.
type User struct {
	Login    string `json:"login" db:"login"`
	FullName string `json:"fullName" db:"full_name"`
	Role     string `json:"role" db:"role"`
}

type credentials struct {
	User
	PasswordHash string `db:"password_hash"`
}

// IsAdmin reports whether u may change tariffs, settings and plans.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Repository is the users table.
type Repository struct {
	db *sqlx.DB
}

// NewRepository wraps database opened with driver.
func NewRepository(database *sql.DB, driver string) *Repository {
	return &Repository{db: sqlx.NewDb(database, driver)}
}

func (r *Repository) query(q string) string {
	return r.db.Rebind(q)
}

// HashPassword returns the stored form of a password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Authenticate returns the user when the password matches. Plain-text
// passwords left by older deployments are accepted too.
func (r *Repository) Authenticate(ctx context.Context, login, password string) (User, bool, error) {
	var c credentials
	err := r.db.GetContext(ctx, &c,
		r.query(`SELECT login, full_name, role, password_hash FROM users WHERE login = ?`), login)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, fmt.Errorf("query user credentials: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(c.PasswordHash), []byte(HashPassword(password))) == 1 {
		return c.User, true, nil
	}
	if subtle.ConstantTimeCompare([]byte(c.PasswordHash), []byte(password)) == 1 {
		return c.User, true, nil
	}
	return User{}, false, nil
}

// Get returns the user with the given login.
func (r *Repository) Get(ctx context.Context, login string) (User, error) {
	var u User
	err := r.db.GetContext(ctx, &u,
		r.query(`SELECT login, full_name, role FROM users WHERE login = ?`), login)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

// List returns every user ordered by login.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	list := make([]User, 0)
	if err := r.db.SelectContext(ctx, &list, `SELECT login, full_name, role FROM users ORDER BY login`); err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	return list, nil
}

// Save creates or replaces a user. An empty password keeps the stored one of
// an existing user. The last admin cannot be demoted.
func (r *Repository) Save(ctx context.Context, u User, password string) error {
	u.Login = strings.TrimSpace(u.Login)
	if u.Login == "" {
		return ErrInvalidUser
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Role != RoleAdmin && u.Role != RoleUser {
		return ErrInvalidRole
	}
	if u.Role != RoleAdmin {
		if err := r.keepLastAdmin(ctx, u.Login); err != nil {
			return err
		}
	}

	if password == "" {
		res, err := r.db.ExecContext(ctx,
			r.query(`UPDATE users SET full_name = ?, role = ? WHERE login = ?`),
			u.FullName, u.Role, u.Login)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrInvalidUser
		}
		return nil
	}

	_, err := r.db.ExecContext(ctx, r.query(`
		INSERT INTO users (login, full_name, role, password_hash)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (login) DO UPDATE SET
			full_name = excluded.full_name,
			role = excluded.role,
			password_hash = excluded.password_hash
	`), u.Login, u.FullName, u.Role, HashPassword(password))
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Delete removes a user. The last admin cannot be removed.
func (r *Repository) Delete(ctx context.Context, login string) error {
	if _, err := r.Get(ctx, login); err != nil {
		return err
	}
	if err := r.keepLastAdmin(ctx, login); err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, r.query(`DELETE FROM users WHERE login = ?`), login); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// keepLastAdmin fails when login is the only admin left.
func (r *Repository) keepLastAdmin(ctx context.Context, login string) error {
	u, err := r.Get(ctx, login)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !u.IsAdmin() {
		return nil
	}

	var admins int
	if err := r.db.GetContext(ctx, &admins,
		r.query(`SELECT COUNT(*) FROM users WHERE role = ?`), RoleAdmin); err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if admins <= 1 {
		return ErrLastAdmin
	}
	return nil
}

// EnsureAdmin creates the admin account when it does not exist yet and
// reports whether it did.
func (r *Repository) EnsureAdmin(ctx context.Context, login, password, fullName string) (bool, error) {
	if login == "" || password == "" {
		return false, nil
	}

	var exists bool
	err := r.db.QueryRowContext(ctx,
		r.query(`SELECT EXISTS(SELECT 1 FROM users WHERE login = ?)`), login).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return false, nil
	}

	if _, err := r.db.ExecContext(ctx,
		r.query(`INSERT INTO users (login, full_name, role, password_hash) VALUES (?, ?, ?, ?)`),
		login, fullName, RoleAdmin, HashPassword(password)); err != nil {
		return false, fmt.Errorf("insert admin user: %w", err)
	}
	return true, nil
}
