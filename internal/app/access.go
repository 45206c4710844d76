package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/match"

	"hotel_content/internal/domain"
)

// RoleChecker reports whether a role reads a supplier without a grant.
type RoleChecker interface {
	Elevated(role domain.Role, supplier string) (bool, error)
}

// Caller describes the request being authorized.
type Caller struct {
	User      domain.User
	IP        string
	UserAgent string
	Path      string
}

type AccessService struct {
	repo  domain.AccessRepository
	roles RoleChecker
	audit domain.AuditLogger
}

func NewAccessService(repo domain.AccessRepository, roles RoleChecker, audit domain.AuditLogger) *AccessService {
	return &AccessService{repo: repo, roles: roles, audit: audit}
}

// AuthorizeDetails requires the caller's IP on their whitelist, then either
// an elevated role or an explicit supplier grant. Each denial is audited
// before ErrForbidden is returned.
func (s *AccessService) AuthorizeDetails(ctx context.Context, c Caller, supplier, hotelID string) error {
	patterns, err := s.repo.IPWhitelist(ctx, c.User.ID)
	if err != nil {
		return fmt.Errorf("ip whitelist: %w", err)
	}
	if !IPAllowed(c.IP, patterns) {
		s.deny(ctx, c, domain.ActivityIPDenied, map[string]any{
			"supplier_code": supplier,
			"hotel_id":      hotelID,
			"reason":        "ip not whitelisted",
		})
		return fmt.Errorf("%w: ip %s is not whitelisted", domain.ErrForbidden, c.IP)
	}

	elevated, err := s.roles.Elevated(c.User.Role, supplier)
	if err != nil {
		return err
	}
	if elevated {
		return nil
	}

	granted, err := s.repo.HasSupplierPermission(ctx, c.User.ID, supplier)
	if err != nil {
		return fmt.Errorf("supplier permission: %w", err)
	}
	if !granted {
		s.deny(ctx, c, domain.ActivityPermissionDenied, map[string]any{
			"supplier_code": supplier,
			"hotel_id":      hotelID,
			"role":          string(c.User.Role),
		})
		return fmt.Errorf("%w: no permission for supplier %s", domain.ErrForbidden, supplier)
	}
	return nil
}

func (s *AccessService) deny(ctx context.Context, c Caller, typ string, details map[string]any) {
	if s.audit == nil {
		return
	}
	s.audit.LogActivity(ctx, domain.Activity{
		Type:          typ,
		UserID:        c.User.ID,
		Details:       details,
		IP:            c.IP,
		UserAgent:     c.UserAgent,
		Path:          c.Path,
		SecurityLevel: domain.SecurityHigh,
		Success:       false,
	})
}

// IPAllowed matches ip against exact entries and wildcard patterns such as
// "10.0.*".
func IPAllowed(ip string, patterns []string) bool {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return false
	}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if p == ip || (match.IsPattern(p) && match.Match(ip, p)) {
			return true
		}
	}
	return false
}
