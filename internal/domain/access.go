package domain

import "time"

// Role is the closed set of caller roles carried in bearer tokens.
type Role string

const (
	RoleSuperUser   Role = "super_user"
	RoleAdminUser   Role = "admin_user"
	RoleGeneralUser Role = "general_user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperUser, RoleAdminUser, RoleGeneralUser:
		return true
	}
	return false
}

// User is the authenticated caller.
type User struct {
	ID   string
	Role Role
}

type SecurityLevel string

const (
	SecurityLow    SecurityLevel = "low"
	SecurityMedium SecurityLevel = "medium"
	SecurityHigh   SecurityLevel = "high"
)

// Activity types written to the activity log.
const (
	ActivityPushHotel        = "hotel_push"
	ActivityRawRead          = "hotel_raw_read"
	ActivityDetailsRead      = "hotel_details_read"
	ActivityIPDenied         = "ip_not_whitelisted"
	ActivityPermissionDenied = "supplier_permission_denied"
	ActivityRoleDenied       = "role_denied"
	ActivityAuthFailed       = "authentication_failed"
)

// Activity is one audit event.
type Activity struct {
	ID            string
	Type          string
	UserID        string
	Details       map[string]any
	IP            string
	UserAgent     string
	Path          string
	SecurityLevel SecurityLevel
	Success       bool
	CreatedAt     time.Time
}
