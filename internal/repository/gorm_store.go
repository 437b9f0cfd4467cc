package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/studyhub/progress/internal/domain"
)

// gormStore implements domain.ProgressStore using GORM
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a progress store over the progress_blobs table
func NewGormStore(db *gorm.DB) domain.ProgressStore {
	return &gormStore{db: db}
}

// Read finds the blob stored under key
func (r *gormStore) Read(ctx context.Context, key string) (string, bool, error) {
	var blob domain.ProgressBlob
	result := r.db.WithContext(ctx).Where("storage_key = ?", key).First(&blob)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, nil // Missing key is not an error
		}
		return "", false, fmt.Errorf("read %s: %w", key, result.Error)
	}
	return blob.Value, true, nil
}

// Write upserts the blob stored under key
func (r *gormStore) Write(ctx context.Context, key, value string) error {
	blob := domain.ProgressBlob{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&blob)
	if result.Error != nil {
		return fmt.Errorf("write %s: %w", key, result.Error)
	}
	return nil
}
