package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_content/internal/domain"
)

// DetailsService loads a raw payload and normalizes it, caching the result.
type DetailsService struct {
	store    domain.RawStore
	norm     domain.Normalizer
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

type DetailsOption func(*DetailsService)

// WithDetailsClock sets the clock used to restamp cached records.
func WithDetailsClock(now func() time.Time) DetailsOption {
	return func(s *DetailsService) { s.now = now }
}

func NewDetailsService(store domain.RawStore, n domain.Normalizer, c domain.Cache, ttl time.Duration, opts ...DetailsOption) *DetailsService {
	s := &DetailsService{store: store, norm: n, cache: c, cacheTTL: ttl, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *DetailsService) Details(ctx context.Context, supplier, hotelID string) (*domain.CanonicalHotel, error) {
	if !domain.KnownSupplier(supplier) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSupplier, supplier)
	}
	if !ValidHotelID(hotelID) {
		return nil, domain.ErrInvalidHotelID
	}

	key := DetailsCacheKey(supplier, hotelID)
	if s.cache != nil {
		var h domain.CanonicalHotel
		ok, err := s.cache.Get(ctx, key, &h)
		if err != nil {
			// degrade to direct normalization
			log.Warn().Err(err).Str("key", key).Msg("details cache unavailable")
		}
		if ok {
			// created/timestamp describe this response, not the cached normalization
			h.Stamp(s.now())
			return &h, nil
		}
	}

	raw, err := s.store.Load(ctx, supplier, hotelID)
	if err != nil {
		return nil, err
	}
	h, err := s.norm.Normalize(supplier, raw)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds())); err != nil {
			log.Debug().Err(err).Str("key", key).Msg("details cache set failed")
		}
	}
	return h, nil
}

// RawService returns stored payloads without normalization.
type RawService struct {
	store domain.RawStore
}

func NewRawService(store domain.RawStore) *RawService { return &RawService{store: store} }

func (s *RawService) Raw(ctx context.Context, supplier, hotelID string) (any, error) {
	if !domain.KnownSupplier(supplier) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSupplier, supplier)
	}
	if !ValidHotelID(hotelID) {
		return nil, domain.ErrInvalidHotelID
	}
	return s.store.Load(ctx, supplier, hotelID)
}
