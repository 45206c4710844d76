package domain

import "context"

// Fetcher retrieves one supplier's native payload for a hotel ID.
type Fetcher interface {
	Fetch(ctx context.Context, hotelID string) FetchResult
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, hotelID string) FetchResult

func (f FetcherFunc) Fetch(ctx context.Context, hotelID string) FetchResult { return f(ctx, hotelID) }

// RawStore persists raw supplier payloads, one document per (supplier, hotel).
type RawStore interface {
	Save(ctx context.Context, supplier, hotelID string, payload any) (string, error)
	Load(ctx context.Context, supplier, hotelID string) (any, error)
}

// Normalizer maps a supplier payload onto the canonical schema.
type Normalizer interface {
	Normalize(supplier string, raw any) (*CanonicalHotel, error)
}

// AccessRepository answers per-user access questions.
type AccessRepository interface {
	IPWhitelist(ctx context.Context, userID string) ([]string, error)
	HasSupplierPermission(ctx context.Context, userID, supplier string) (bool, error)
}

// ActivityStore persists audit events.
type ActivityStore interface {
	InsertActivity(ctx context.Context, a Activity) error
}

// AuditLogger records activity without ever failing the caller.
type AuditLogger interface {
	LogActivity(ctx context.Context, a Activity)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
