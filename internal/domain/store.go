package domain

import (
	"context"
	"time"
)

// Storage keys for the two progress documents
const (
	PracticeProgressKey = "practice-progress"
	ContestProgressKey  = "contest-progress"
)

// ProgressStore is durable key-value storage for serialized progress
// documents. Read reports found=false for a key that was never written.
type ProgressStore interface {
	Read(ctx context.Context, key string) (value string, found bool, err error)
	Write(ctx context.Context, key, value string) error
}

// ProgressBlob is the relational row backing a ProgressStore key
type ProgressBlob struct {
	Key       string    `gorm:"column:storage_key;type:varchar(255);primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (ProgressBlob) TableName() string {
	return "progress_blobs"
}
