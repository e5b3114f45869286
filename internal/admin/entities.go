package admin

import (
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/arthur-debert/nanotable/internal/validation"
)

// User statuses
const (
	UserActive    = "active"
	UserInactive  = "inactive"
	UserSuspended = "suspended"
)

// API key statuses
const (
	KeyActive   = "active"
	KeyInactive = "inactive"
	KeyExpired  = "expired"
)

// Roles
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleModerator  = "moderator"
)

// Lifecycle actions
const (
	ActionDeactivate = "deactivate"
	ActionSuspend    = "suspend"
	ActionExpire     = "expire"
)

// Never is shown for users and keys that were never used
const Never = "Never"

// Permissions an admin user or API key can hold
var Permissions = []string{"read", "write", "delete", "admin"}

func checkPermissions(field string, perms []string) error {
	var errs []error
	for _, p := range perms {
		errs = append(errs, validation.OneOf(field, p, Permissions...))
	}
	errs = append(errs, validation.Unique(field, perms))
	return errors.Join(errs...)
}

// lastSeen accepts Never or a timestamp
func lastSeen(field, value string) error {
	if value == Never {
		return nil
	}
	return validation.Timestamp(field, value)
}

// User is an operator of the admin console
type User struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Status      string   `json:"status"`
	LastLogin   string   `json:"lastLogin"`
	Permissions []string `json:"permissions"`
	CreatedAt   string   `json:"createdAt"`
}

func (u User) GetID() string { return u.ID }
func (u User) WithID(id string) User { u.ID = id; return u }
func (u User) GetStatus() string { return u.Status }
func (u User) WithStatus(s string) User { u.Status = s; return u }
func (u User) SearchText() []string { return []string{u.Name, u.Email, u.Role} }
func (u User) ActorNames() []string { return []string{u.Name} }
func (u User) Timestamp() string { return u.CreatedAt }

func (u User) Validate() error {
	return errors.Join(
		validation.Required("name", u.Name),
		validation.Email("email", u.Email),
		validation.OneOf("role", u.Role, RoleSuperAdmin, RoleAdmin, RoleModerator),
		checkPermissions("permissions", u.Permissions),
		lastSeen("lastLogin", u.LastLogin),
		validation.Timestamp("createdAt", u.CreatedAt),
	)
}

// APIKey is a credential issued to an integration
type APIKey struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Key         string   `json:"key"`
	Permissions []string `json:"permissions"`
	CreatedAt   string   `json:"createdAt"`
	LastUsed    string   `json:"lastUsed"`
	Status      string   `json:"status"`
}

func (k APIKey) GetID() string { return k.ID }
func (k APIKey) WithID(id string) APIKey { k.ID = id; return k }
func (k APIKey) GetStatus() string { return k.Status }
func (k APIKey) WithStatus(s string) APIKey { k.Status = s; return k }
func (k APIKey) SearchText() []string { return []string{k.Name} }
func (k APIKey) Timestamp() string { return k.CreatedAt }

func (k APIKey) Validate() error {
	return errors.Join(
		validation.Required("name", k.Name),
		validation.Required("key", k.Key),
		checkPermissions("permissions", k.Permissions),
		lastSeen("lastUsed", k.LastUsed),
		validation.Timestamp("createdAt", k.CreatedAt),
	)
}

// ActivityLog is one entry of the audit trail. Entries are listed newest
// first.
type ActivityLog struct {
	ID      string `json:"id"`
	Action  string `json:"action"`
	User    string `json:"user"`
	At      string `json:"timestamp"`
	Details string `json:"details"`
}

func (l ActivityLog) GetID() string { return l.ID }
func (l ActivityLog) WithID(id string) ActivityLog { l.ID = id; return l }
func (l ActivityLog) SearchText() []string { return []string{l.Details, l.User} }
func (l ActivityLog) ActorNames() []string { return []string{l.User} }
func (l ActivityLog) Timestamp() string { return l.At }

// GetStatus exposes the action so status criteria select one kind of entry
func (l ActivityLog) GetStatus() string { return l.Action }

func (l ActivityLog) Validate() error {
	return errors.Join(
		validation.Required("action", l.Action),
		validation.Required("user", l.User),
		validation.Timestamp("timestamp", l.At),
	)
}

// SystemLog is an application log line surfaced read-only in the console
type SystemLog struct {
	ID          string `json:"id"`
	At          string `json:"timestamp"`
	Level       string `json:"level"`
	Component   string `json:"component"`
	Message     string `json:"message"`
	Details     string `json:"details"`
	Environment string `json:"environment"`
	RequestID   string `json:"requestId"`
	StackTrace  string `json:"stackTrace,omitempty"`
}

func (l SystemLog) GetID() string { return l.ID }
func (l SystemLog) WithID(id string) SystemLog { l.ID = id; return l }
func (l SystemLog) Timestamp() string { return l.At }
func (l SystemLog) SearchText() []string {
	return []string{l.Message, l.Details, l.Component, l.RequestID}
}

// GetStatus exposes the level so status criteria select by severity
func (l SystemLog) GetStatus() string { return l.Level }

// NotificationConfig controls which events are mailed and to whom
type NotificationConfig struct {
	Email           bool     `json:"email"`
	SystemAlerts    bool     `json:"systemAlerts"`
	AuditLogs       bool     `json:"auditLogs"`
	SecurityEvents  bool     `json:"securityEvents"`
	MaintenanceMode bool     `json:"maintenanceMode"`
	EmailRecipients []string `json:"emailRecipients"`
}

func (n NotificationConfig) Validate() error {
	errs := []error{validation.Unique("emailRecipients", n.EmailRecipients)}
	for _, r := range n.EmailRecipients {
		errs = append(errs, validation.Email("emailRecipients", r))
	}
	return errors.Join(errs...)
}

// SystemSettings are the console-wide settings
type SystemSettings struct {
	SiteName        string   `json:"siteName"`
	AdminEmail      string   `json:"adminEmail"`
	Timezone        string   `json:"timezone"`
	MaintenanceMode bool     `json:"maintenanceMode"`
	TwoFactorAuth   bool     `json:"twoFactorAuth"`
	SessionTimeout  int      `json:"sessionTimeout"`
	IPWhitelist     bool     `json:"ipWhitelist"`
	IPAddresses     []string `json:"ipAddresses"`
	CacheEnabled    bool     `json:"cacheEnabled"`
	CacheTTL        int      `json:"cacheTTL"`
	DebugMode       bool     `json:"debugMode"`
}

// maxSessionTimeout is one day, in minutes
const maxSessionTimeout = 24 * 60

func (s SystemSettings) Validate() error {
	errs := []error{
		validation.Required("siteName", s.SiteName),
		validation.Email("adminEmail", s.AdminEmail),
		validation.Range("sessionTimeout", float64(s.SessionTimeout), 1, maxSessionTimeout),
		validation.NonNegative("cacheTTL", float64(s.CacheTTL)),
		validation.Unique("ipAddresses", s.IPAddresses),
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil || s.Timezone == "" {
		errs = append(errs, fmt.Errorf("timezone: %q is not a known time zone", s.Timezone))
	}
	for _, ip := range s.IPAddresses {
		if _, err := netip.ParsePrefix(ip); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(ip); err != nil {
			errs = append(errs, fmt.Errorf("ipAddresses: %q is not an IP address or CIDR range", ip))
		}
	}
	if s.IPWhitelist && len(s.IPAddresses) == 0 {
		errs = append(errs, errors.New("ipAddresses: the whitelist is enabled but empty"))
	}
	return errors.Join(errs...)
}
