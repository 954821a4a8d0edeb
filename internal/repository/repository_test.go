package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/nordqvist/webshop/internal/models"
	"github.com/nordqvist/webshop/internal/storage"
)

// The sqlite schema mirrors the Postgres migrations closely enough for
// the query shapes under test ($N placeholders bind by ordinal in both).
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:repo_tests_"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = db.Close() })

	for _, stmt := range []string{
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE inquiries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE images (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT NOT NULL,
			r2_key TEXT NOT NULL UNIQUE,
			url TEXT NOT NULL,
			alt_text TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
	} {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

func TestCreateAndFindUser(t *testing.T) {
	db := setupDB(t)
	repo := New(db)
	ctx := context.Background()

	user := &models.User{Username: "anna", Email: "anna@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	got, err := repo.FindUserByEmail(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "anna", got.Username)
	assert.Equal(t, "hash", got.PasswordHash)
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	db := setupDB(t)
	repo := New(db)

	_, err := repo.FindUserByEmail(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateInquiry_AndListSince(t *testing.T) {
	db := setupDB(t)
	repo := New(db)
	ctx := context.Background()

	inq := &models.Inquiry{Name: "A", Email: "a@b.com", Phone: "123", Message: "hi"}
	require.NoError(t, repo.CreateInquiry(ctx, inq))
	require.NotZero(t, inq.ID)

	recent, err := repo.ListInquiriesSince(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "hi", recent[0].Message)

	none, err := repo.ListInquiriesSince(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestWithTx_RollsBackFailedUnitOfWork(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	// Fault injected mid-unit-of-work: the insert before the failure must
	// not survive.
	err := WithTx(ctx, db, func(ctx context.Context, r *Repository) error {
		if err := r.CreateInquiry(ctx, &models.Inquiry{Name: "A", Email: "a@b.com", Phone: "1", Message: "m"}); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	rows, err := New(db).ListInquiriesSince(ctx, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestImages_CreateListDeactivate(t *testing.T) {
	db := setupDB(t)
	repo := New(db)
	ctx := context.Background()

	img := &models.Image{Filename: "a.jpg", R2Key: "inspiration/a.jpg", URL: "https://cdn.example/inspiration/a.jpg"}
	require.NoError(t, repo.CreateImage(ctx, img))
	require.NotZero(t, img.ID)
	assert.True(t, img.IsActive)

	withAlt := &models.Image{Filename: "b.jpg", R2Key: "inspiration/b.jpg", URL: "https://cdn.example/inspiration/b.jpg", AltText: "sofa"}
	require.NoError(t, repo.CreateImage(ctx, withAlt))

	active, err := repo.ListActiveImages(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)

	require.NoError(t, repo.DeactivateImage(ctx, img.ID))
	active, err = repo.ListActiveImages(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "sofa", active[0].AltText)

	err = repo.DeactivateImage(ctx, 9999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
