package repository

import (
	"context"

	"github.com/studyhub/progress/internal/domain"
)

// scopedStore prefixes every key with a namespace
type scopedStore struct {
	inner     domain.ProgressStore
	namespace string
}

// NewScopedStore gives namespace its own disjoint key space inside inner.
// Keys become "<namespace>:<key>".
func NewScopedStore(inner domain.ProgressStore, namespace string) domain.ProgressStore {
	return &scopedStore{inner: inner, namespace: namespace}
}

func (s *scopedStore) Read(ctx context.Context, key string) (string, bool, error) {
	return s.inner.Read(ctx, s.namespace+":"+key)
}

func (s *scopedStore) Write(ctx context.Context, key, value string) error {
	return s.inner.Write(ctx, s.namespace+":"+key, value)
}
