package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nordqvist/webshop/internal/apperr"
	"github.com/nordqvist/webshop/internal/config"
	"github.com/nordqvist/webshop/internal/models"
	"github.com/nordqvist/webshop/internal/repository"
)

// mediaFolder prefixes every uploaded object key.
const mediaFolder = "inspiration"

// ObjectStore is the narrow blob-storage interface the media service
// needs. Implemented by integrations/r2.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
}

// MediaService uploads gallery images to object storage and tracks
// their metadata.
type MediaService struct {
	db    *sql.DB
	store ObjectStore
	cfg   *config.Config
	log   *logrus.Logger
}

// NewMediaService initializes the media service.
func NewMediaService(db *sql.DB, store ObjectStore, cfg *config.Config, log *logrus.Logger) *MediaService {
	return &MediaService{db: db, store: store, cfg: cfg, log: log}
}

// Upload stores the file under a collision-free key and records its
// metadata. The object is written before the row: an orphaned object is
// harmless, a dangling row would 404 on the public gallery.
func (s *MediaService) Upload(ctx context.Context, filename, contentType, altText string, body io.Reader) (*models.Image, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("%w: no file provided", apperr.ErrValidation)
	}

	unique := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	key := mediaFolder + "/" + unique

	if err := s.store.Put(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("%w: upload failed: %w", apperr.ErrStorage, err)
	}

	img := &models.Image{
		Filename: unique,
		R2Key:    key,
		URL:      strings.TrimRight(s.cfg.Get("R2_PUBLIC_BASE_URL"), "/") + "/" + key,
		AltText:  strings.TrimSpace(altText),
	}
	err := repository.WithTx(ctx, s.db, func(ctx context.Context, r *repository.Repository) error {
		return r.CreateImage(ctx, img)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Image uploaded: %s", key)
	return img, nil
}

// ListActive returns the images shown on the public gallery, newest first.
func (s *MediaService) ListActive(ctx context.Context) ([]models.Image, error) {
	return repository.New(s.db).ListActiveImages(ctx)
}

// Deactivate hides an image from the gallery without removing the
// object from the bucket.
func (s *MediaService) Deactivate(ctx context.Context, id int64) error {
	err := repository.WithTx(ctx, s.db, func(ctx context.Context, r *repository.Repository) error {
		return r.DeactivateImage(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Infof("Image %d deactivated", id)
	return nil
}
