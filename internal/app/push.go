package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_content/internal/adapters/observability"
	"hotel_content/internal/domain"
)

// FetcherSource resolves a supplier code to its fetch adapter.
type FetcherSource interface {
	Fetcher(code string) (domain.Fetcher, bool)
}

// DetailsCacheKey is the cache key of one hotel's normalized details.
func DetailsCacheKey(supplier, hotelID string) string {
	return fmt.Sprintf("details:%s:%s", supplier, hotelID)
}

type PushService struct {
	fetchers FetcherSource
	store    domain.RawStore
	cache    domain.Cache
	workers  int
}

func NewPushService(f FetcherSource, store domain.RawStore, cache domain.Cache, workers int) *PushService {
	if workers <= 0 {
		workers = 1
	}
	return &PushService{fetchers: f, store: store, cache: cache, workers: workers}
}

// Push fetches and stores every ID with bounded concurrency. Results keep
// request order and each ID's outcome is independent of the others.
func (s *PushService) Push(ctx context.Context, supplier string, ids []string) (domain.PushReport, error) {
	f, ok := s.fetchers.Fetcher(supplier)
	if !ok || !domain.KnownSupplier(supplier) {
		return domain.PushReport{}, fmt.Errorf("%w: %q", domain.ErrUnknownSupplier, supplier)
	}

	results := make([]domain.PushResult, len(ids))
	sem := semaphore.NewWeighted(int64(s.workers))
	var wg sync.WaitGroup

	for i, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			for j := i; j < len(ids); j++ {
				results[j] = domain.PushResult{HotelID: ids[j], Status: domain.PushFetchFailed, Reason: err.Error()}
			}
			break
		}
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = s.pushOne(ctx, f, supplier, id)
		}(i, id)
	}
	wg.Wait()

	return domain.PushReport{Supplier: supplier, Results: results}, nil
}

func (s *PushService) pushOne(ctx context.Context, f domain.Fetcher, supplier, rawID string) domain.PushResult {
	id := strings.TrimSpace(rawID)
	res := domain.PushResult{HotelID: id}
	defer func() { observability.ObservePush(supplier, res.Status) }()

	if !ValidHotelID(id) {
		res.Status = domain.PushInvalidInput
		res.Reason = domain.ErrInvalidHotelID.Error()
		return res
	}

	out := f.Fetch(ctx, id)
	switch out.Status {
	case domain.FetchNoData:
		res.Status = domain.PushNoData
		return res
	case domain.FetchFailed:
		res.Status = domain.PushFetchFailed
		res.Reason = out.Reason
		return res
	}

	path, err := s.store.Save(ctx, supplier, id, out.Payload)
	if err != nil {
		log.Warn().Str("supplier", supplier).Str("hotel_id", id).Err(err).Msg("raw save failed")
		res.Status = domain.PushSaveFailed
		res.Reason = err.Error()
		if errors.Is(err, domain.ErrInvalidHotelID) {
			res.Status = domain.PushInvalidInput
		}
		return res
	}
	res.Status = domain.PushSaved
	res.Path = path

	if s.cache != nil {
		if err := s.cache.Del(ctx, DetailsCacheKey(supplier, id)); err != nil {
			log.Debug().Err(err).Str("supplier", supplier).Str("hotel_id", id).Msg("details cache invalidation failed")
		}
	}
	return res
}

// ValidHotelID rejects empty IDs and anything that could escape the raw
// store's directory.
func ValidHotelID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, "/\\\x00")
}
