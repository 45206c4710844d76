package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_content/internal/adapters/observability"
	redisad "hotel_content/internal/adapters/redis"
	"hotel_content/internal/adapters/suppliers"
	"hotel_content/internal/app"
	"hotel_content/internal/domain"
	"hotel_content/internal/shared"
	"hotel_content/internal/storage/rawfs"
)

func main() {
	supplier := flag.String("supplier", "", "supplier code, e.g. hotelbeds")
	idsFlag := flag.String("ids", "", "comma-separated hotel IDs")
	file := flag.String("file", "", "file with one hotel ID per line")
	flag.Parse()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ids, err := collectIDs(*idsFlag, *file)
	if err != nil {
		log.Fatal().Err(err).Msg("reading hotel IDs failed")
	}
	if *supplier == "" || len(ids) == 0 {
		fmt.Fprintln(os.Stderr, "usage: ingestor -supplier <code> [-ids a,b,c | -file ids.txt]")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("supplier", *supplier).
		Int("ids", len(ids)).
		Int("workers", cfg.Workers).
		Msg("ingestor starting")

	store, err := rawfs.New(cfg.RawBaseDir)
	if err != nil {
		log.Fatal().Err(err).Msg("raw store init failed")
	}

	// saved IDs invalidate cached details when redis is reachable
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Msg("redis unavailable; cache invalidation skipped")
		} else {
			cache = rc
		}
		cancel()
	}

	push := app.NewPushService(suppliers.NewRegistry(cfg.SupplierCredentials()), store, cache, cfg.Workers)
	start := time.Now()
	report, err := push.Push(ctx, *supplier, ids)
	if err != nil {
		log.Fatal().Err(err).Msg("push failed")
	}

	for _, r := range report.Results {
		ev := log.Info()
		if r.Status != domain.PushSaved {
			ev = log.Warn()
		}
		ev.Str("supplier", report.Supplier).
			Str("hotel_id", r.HotelID).
			Str("status", r.Status).
			Str("reason", r.Reason).
			Str("path", r.Path).
			Msg("ingest result")
	}

	counts := tally(report)
	log.Info().
		Interface("counts", counts).
		Dur("elapsed", time.Since(start)).
		Msg("ingestion completed")

	if hardFailures(counts) > 0 {
		os.Exit(1)
	}
}

// collectIDs merges -ids and -file, trimming blanks and "#" comment lines
// and dropping duplicates while keeping first-seen order.
func collectIDs(list, path string) ([]string, error) {
	var raw []string
	if list != "" {
		raw = append(raw, strings.Split(list, ",")...)
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		lines, err := readLines(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		raw = append(raw, lines...)
	}

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" || strings.HasPrefix(id, "#") || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return out, nil
}

func tally(rep domain.PushReport) map[string]int {
	out := make(map[string]int)
	for _, r := range rep.Results {
		out[r.Status]++
	}
	return out
}

// hardFailures counts transport and save failures; missing data and bad IDs
// are not retryable and do not fail the run.
func hardFailures(counts map[string]int) int {
	return counts[domain.PushFetchFailed] + counts[domain.PushSaveFailed]
}
