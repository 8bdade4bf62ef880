//go:build unit || e2e

package dbtest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123", precomputed so fixtures stay fast.
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	name := strings.SplitN(email, "@", 2)[0]

	ctx := context.Background()
	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, name, role, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, name, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		// Already exists; fetch the existing id to keep deterministic behavior.
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestBook(t *testing.T, db DBLike, isbn, title string, totalCopies int) uuid.UUID {
	t.Helper()

	bookID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO books (id, isbn, title, author, total_copies, available_copies, status) VALUES ($1, $2, $3, '', $4, $4, 'AVAILABLE')",
		bookID, isbn, title, totalCopies)
	require.NoError(t, err)

	return bookID
}

// truncates all lending tables between sub tests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE reservations, loans, books, users RESTART IDENTITY CASCADE")
	return err
}
