// Package repository provides parameterized SQL access to the service's
// tables. A Repository runs against either the pool or a transaction
// handle; writes that must be atomic go through WithTx so every unit of
// work commits or rolls back exactly once.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/nordqvist/webshop/internal/models"
	"github.com/nordqvist/webshop/internal/storage"
)

// Repository provides database operations over a pool or transaction.
type Repository struct {
	db storage.DBTX
}

// New initializes a repository over the given handle.
func New(db storage.DBTX) *Repository {
	return &Repository{db: db}
}

// WithTx runs fn with a transaction-scoped repository inside one unit of
// work against db.
func WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, r *Repository) error) error {
	return storage.WithTx(ctx, db, func(ctx context.Context, tx storage.DBTX) error {
		return fn(ctx, New(tx))
	})
}

// CreateUser inserts a new user and fills in its id and timestamp.
// A duplicate email surfaces as storage.ErrConflict.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	return storage.MapError(err)
}

// FindUserByEmail retrieves a user by email. Returns storage.ErrNotFound
// when no such user exists.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, storage.MapError(err)
	}
	return user, nil
}

// CreateInquiry inserts a contact-form submission.
func (r *Repository) CreateInquiry(ctx context.Context, inq *models.Inquiry) error {
	query := `
		INSERT INTO inquiries (name, email, phone, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, inq.Name, inq.Email, inq.Phone, inq.Message).
		Scan(&inq.ID, &inq.CreatedAt)
	return storage.MapError(err)
}

// ListInquiriesSince returns inquiries submitted at or after the given
// time, oldest first. Used by the daily digest.
func (r *Repository) ListInquiriesSince(ctx context.Context, since time.Time) ([]models.Inquiry, error) {
	query := `
		SELECT id, name, email, phone, message, created_at
		FROM inquiries
		WHERE created_at >= $1
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, storage.MapError(err)
	}
	defer rows.Close()

	var out []models.Inquiry
	for rows.Next() {
		var inq models.Inquiry
		if err := rows.Scan(&inq.ID, &inq.Name, &inq.Email, &inq.Phone, &inq.Message, &inq.CreatedAt); err != nil {
			return nil, storage.MapError(err)
		}
		out = append(out, inq)
	}
	return out, storage.MapError(rows.Err())
}

// CreateImage inserts media metadata for an uploaded object.
func (r *Repository) CreateImage(ctx context.Context, img *models.Image) error {
	query := `
		INSERT INTO images (filename, r2_key, url, alt_text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, is_active`
	var alt sql.NullString
	if img.AltText != "" {
		alt = sql.NullString{String: img.AltText, Valid: true}
	}
	err := r.db.QueryRowContext(ctx, query, img.Filename, img.R2Key, img.URL, alt).
		Scan(&img.ID, &img.CreatedAt, &img.IsActive)
	return storage.MapError(err)
}

// ListActiveImages returns all active images, newest first.
func (r *Repository) ListActiveImages(ctx context.Context) ([]models.Image, error) {
	query := `
		SELECT id, filename, r2_key, url, alt_text, created_at, is_active
		FROM images
		WHERE is_active = TRUE
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storage.MapError(err)
	}
	defer rows.Close()

	var out []models.Image
	for rows.Next() {
		var img models.Image
		var alt sql.NullString
		if err := rows.Scan(&img.ID, &img.Filename, &img.R2Key, &img.URL, &alt, &img.CreatedAt, &img.IsActive); err != nil {
			return nil, storage.MapError(err)
		}
		img.AltText = alt.String
		out = append(out, img)
	}
	return out, storage.MapError(rows.Err())
}

// DeactivateImage hides an image without deleting it. Returns
// storage.ErrNotFound when the id does not exist.
func (r *Repository) DeactivateImage(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE images SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return storage.MapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storage.MapError(err)
	}
	if n == 0 {
		return storage.MapError(sql.ErrNoRows)
	}
	return nil
}
