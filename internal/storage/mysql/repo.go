// Package mysql backs the access checks and the activity log.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"hotel_content/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func valJSON(v map[string]any) (any, error) {
	if len(v) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Open connects and pings with a bounded wait.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql ping: %w", err)
	}
	return db, nil
}

func (r *Repo) IPWhitelist(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, selectIPWhitelistSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) HasSupplierPermission(ctx context.Context, userID, supplier string) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, hasSupplierPermissionSQL, userID, supplier).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *Repo) AddIPPattern(ctx context.Context, userID, pattern string) error {
	_, err := r.db.ExecContext(ctx, insertIPPatternSQL, userID, pattern)
	return err
}

func (r *Repo) GrantSupplier(ctx context.Context, userID, supplier string) error {
	_, err := r.db.ExecContext(ctx, grantSupplierSQL, userID, supplier)
	return err
}

func (r *Repo) RevokeSupplier(ctx context.Context, userID, supplier string) error {
	_, err := r.db.ExecContext(ctx, revokeSupplierSQL, userID, supplier)
	return err
}

func (r *Repo) InsertActivity(ctx context.Context, a domain.Activity) error {
	details, err := valJSON(a.Details)
	if err != nil {
		return fmt.Errorf("encode activity details: %w", err)
	}
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err = r.db.ExecContext(ctx, insertActivitySQL,
		a.ID,
		a.Type,
		valStr(a.UserID),
		details,
		valStr(a.IP),
		valStr(a.UserAgent),
		valStr(a.Path),
		string(a.SecurityLevel),
		a.Success,
		created.UTC(),
	)
	return err
}

// RecentActivity returns a user's newest events first.
func (r *Repo) RecentActivity(ctx context.Context, userID string, limit int) ([]domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx, recentActivitySQL, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Activity
	for rows.Next() {
		var (
			a                  domain.Activity
			user, ip, ua, path sql.NullString
			details            []byte
			level              string
		)
		if err := rows.Scan(&a.ID, &a.Type, &user, &details, &ip, &ua, &path, &level, &a.Success, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.UserID, a.IP, a.UserAgent, a.Path = user.String, ip.String, ua.String, path.String
		a.SecurityLevel = domain.SecurityLevel(level)
		if len(details) > 0 {
			if err := json.Unmarshal(details, &a.Details); err != nil {
				return nil, fmt.Errorf("decode activity details: %w", err)
			}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
