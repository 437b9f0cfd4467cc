package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/studyhub/progress/internal/domain"
)

// loadDocument decodes the JSON document stored under key into v. A key that
// was never written leaves v untouched and returns found=false.
func loadDocument(ctx context.Context, store domain.ProgressStore, key string, v any) (bool, error) {
	raw, found, err := store.Read(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// saveDocument serializes v and writes it under key. Write failures come
// back as a *domain.DomainError wrapping ErrStoreUnavailable.
func saveDocument(ctx context.Context, store domain.ProgressStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Write(ctx, key, string(raw)); err != nil {
		return domain.WrapError(
			fmt.Errorf("write %s: %w: %w", key, domain.ErrStoreUnavailable, err),
			"Progress recorded but could not be saved",
		)
	}
	return nil
}
