package repositories

import (
	"context"
	"strings"
	"time"

	"jenjangkarir/internal/domain/models"
)

type UserRepository struct {
	Conn
}

// GetByEmailOrUsername matches identifier case-insensitively against both.
func (r UserRepository) GetByEmailOrUsername(ctx context.Context, identifier string) (models.User, error) {
	id := strings.ToLower(strings.TrimSpace(identifier))
	var u models.User
	err := r.db().QueryRowContext(ctx, r.rebind(`SELECT id, COALESCE(name,''), username, email, password_hash, role, created_at
		FROM users WHERE LOWER(email) = ? OR LOWER(username) = ? LIMIT 1`), id, id).
		Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	return u, err
}

func (r UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var n int
	err := r.db().QueryRowContext(ctx, r.rebind(`SELECT COUNT(*) FROM users WHERE LOWER(email) = ? OR LOWER(username) = ?`),
		strings.ToLower(strings.TrimSpace(email)), strings.ToLower(strings.TrimSpace(username))).Scan(&n)
	return n > 0, err
}

func (r UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	return r.insert(ctx, r.db(), `INSERT INTO users (name, username, email, password_hash, role, created_at)
		VALUES (?,?,?,?,?,?)`,
		u.Name, strings.TrimSpace(u.Username), strings.ToLower(strings.TrimSpace(u.Email)), u.PasswordHash, u.Role, time.Now())
}

func (r UserRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db(), "users")
}
