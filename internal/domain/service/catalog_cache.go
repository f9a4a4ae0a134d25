package service

import "context"

// CatalogCache is a read-through cache for catalog reads.
type CatalogCache interface {
	// Get loads key into dest and reports whether it was present.
	Get(ctx context.Context, key string, dest any) (bool, error)

	Set(ctx context.Context, key string, value any) error

	// InvalidatePrefix drops every key starting with prefix.
	InvalidatePrefix(ctx context.Context, prefix string) error
}
