// Package admin is the settings side of the admin console: operator
// accounts, API keys, the audit trail, system logs, notification routing
// and system settings.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/nanotable/nanotable/collection"
	"github.com/arthur-debert/nanotable/nanotable/export"
	"github.com/arthur-debert/nanotable/types"
)

// ExportPrefix names admin export files
const ExportPrefix = "admin-settings"

// Audit trail actions
const (
	AuditAddUser    = "Add Admin User"
	AuditUpdateUser = "Update Admin User"
	AuditSuspend    = "Suspend Admin User"
	AuditDeactivate = "Deactivate Admin User"
	AuditDeleteUser = "Delete Admin User"
	AuditAddKey     = "Add API Key"
	AuditRotateKey  = "Rotate API Key"
	AuditDeleteKey  = "Delete API Key"
	AuditSettings   = "Update Settings"
	AuditNotify     = "Update Notifications"
)

// NewSecret returns an API key secret of the form sk_<random>_<random>
func NewSecret() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "sk_" + hex[:13] + "_" + hex[13:26]
}

// Console owns the admin collections and settings documents
type Console struct {
	Users         *collection.Collection[User]
	Keys          *collection.Collection[APIKey]
	Activity      *collection.Collection[ActivityLog]
	SystemLogs    *collection.Collection[SystemLog]
	Notifications *collection.Singleton[NotificationConfig]
	Settings      *collection.Singleton[SystemSettings]

	// Operator is credited in the audit trail for changes made through
	// the console
	Operator string

	// Secrets generates API key secrets
	Secrets func() string

	now    func() time.Time
	logger *slog.Logger
}

// New creates an empty console; call Refresh to hydrate it. now stamps
// creation and rotation times and defaults to time.Now.
func New(logger *slog.Logger, now func() time.Time, opts ...collection.Option) (*Console, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	opts = append([]collection.Option{collection.WithLogger(logger), collection.WithTimeFunc(now)}, opts...)
	with := func(extra ...collection.Option) []collection.Option {
		return append(append([]collection.Option(nil), opts...), extra...)
	}

	c := &Console{
		Operator: "Admin",
		Secrets:  NewSecret,
		now:      now,
		logger:   logger.With("component", "admin"),
	}
	var err error
	if c.Users, err = collection.New[User](UsersKey, with(collection.WithLifecycle(userLifecycle()))...); err != nil {
		return nil, err
	}
	if c.Keys, err = collection.New[APIKey](KeysKey, with(collection.WithLifecycle(keyLifecycle()))...); err != nil {
		return nil, err
	}
	if c.Activity, err = collection.New[ActivityLog](ActivityKey, with(collection.WithNewestFirst())...); err != nil {
		return nil, err
	}
	// system logs come from the application and are never persisted here
	if c.SystemLogs, err = collection.New[SystemLog]("system_logs", collection.WithLogger(logger)); err != nil {
		return nil, err
	}
	c.Notifications = collection.NewSingleton(NotificationsKey, DefaultNotifications(), opts...)
	c.Settings = collection.NewSingleton(SettingsKey, DefaultSettings(), opts...)
	return c, nil
}

// Refresh hydrates every collection and document from its snapshot,
// falling back to seed data
func (c *Console) Refresh(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	run := func(fn func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	run(func() { c.Users.Hydrate(SeedUsers()) })
	run(func() { c.Keys.Hydrate(SeedAPIKeys()) })
	run(func() { c.Activity.Hydrate(SeedActivity()) })
	run(func() { c.SystemLogs.Load(SeedSystemLogs()) })
	run(func() { c.Notifications.Hydrate(DefaultNotifications()) })
	run(func() { c.Settings.Hydrate(DefaultSettings()) })

	if err := g.Wait(); err != nil {
		return fmt.Errorf("admin refresh: %w", err)
	}
	return nil
}

func (c *Console) stamp() string { return c.now().UTC().Format(time.RFC3339) }

// audit records an entry in the activity log. A failure is logged and
// does not undo the change being audited.
func (c *Console) audit(action, user, details string) {
	_, err := c.Activity.Add(ActivityLog{Action: action, User: user, At: c.stamp(), Details: details})
	if err != nil {
		c.logger.Error("failed to record activity", "action", action, "error", err)
	}
}

// NewUser is the input for AddUser
type NewUser struct {
	Name        string
	Email       string
	Role        string
	Permissions []string
}

// AddUser creates an active operator account. The role defaults to admin
// and emails must be unique.
func (c *Console) AddUser(in NewUser) (User, error) {
	if in.Role == "" {
		in.Role = RoleAdmin
	}
	if err := c.emailFree(in.Email, ""); err != nil {
		return User{}, err
	}
	u, err := c.Users.Add(User{
		Name:        in.Name,
		Email:       in.Email,
		Role:        in.Role,
		LastLogin:   Never,
		Permissions: slices.Clone(in.Permissions),
		CreatedAt:   c.stamp(),
	})
	if err != nil {
		return User{}, err
	}
	c.audit(AuditAddUser, u.Name, "Added admin user: "+u.Email)
	return u, nil
}

// UserPatch lists the user fields to change; nil fields are kept
type UserPatch struct {
	Name        *string
	Email       *string
	Role        *string
	Permissions []string
}

// UpdateUser edits a user's profile
func (c *Console) UpdateUser(id string, p UserPatch) (User, error) {
	if p.Email != nil {
		if err := c.emailFree(*p.Email, id); err != nil {
			return User{}, err
		}
	}
	u, err := c.Users.Update(id, func(u User) User {
		if p.Name != nil {
			u.Name = *p.Name
		}
		if p.Email != nil {
			u.Email = *p.Email
		}
		if p.Role != nil {
			u.Role = *p.Role
		}
		if p.Permissions != nil {
			u.Permissions = slices.Clone(p.Permissions)
		}
		return u
	})
	if err != nil {
		return User{}, err
	}
	c.audit(AuditUpdateUser, c.Operator, "Updated admin user: "+u.Email)
	return u, nil
}

func (c *Console) emailFree(email, except string) error {
	for _, u := range c.Users.All() {
		if u.ID != except && strings.EqualFold(u.Email, email) {
			return fmt.Errorf("%w: email %s is already used by %s", types.ErrValidation, email, u.Name)
		}
	}
	return nil
}

// SuspendUser suspends an active or inactive user for good
func (c *Console) SuspendUser(id string) (User, error) {
	u, err := c.Users.Transition(id, ActionSuspend, "")
	if err != nil {
		return User{}, err
	}
	c.audit(AuditSuspend, c.Operator, "Suspended admin user: "+u.Email)
	return u, nil
}

// DeactivateUser marks an active user inactive
func (c *Console) DeactivateUser(id string) (User, error) {
	u, err := c.Users.Transition(id, ActionDeactivate, "")
	if err != nil {
		return User{}, err
	}
	c.audit(AuditDeactivate, c.Operator, "Deactivated admin user: "+u.Email)
	return u, nil
}

// ToggleUser is the status switch of the users table: it suspends an
// active user. Suspension cannot be undone, so toggling a user that is
// not active fails with types.ErrInvalidTransition.
func (c *Console) ToggleUser(id string) (User, error) {
	u, err := c.Users.Get(id)
	if err != nil {
		return User{}, err
	}
	if u.Status != UserActive {
		return User{}, fmt.Errorf("%w: user %s is %s", types.ErrInvalidTransition, id, u.Status)
	}
	return c.SuspendUser(id)
}

// DeleteUser removes a user account
func (c *Console) DeleteUser(id string) error {
	u, err := c.Users.Get(id)
	if err != nil {
		return err
	}
	if err := c.Users.Remove(id); err != nil {
		return err
	}
	c.audit(AuditDeleteUser, u.Name, "Deleted admin user: "+u.Email)
	return nil
}

// AddAPIKey issues a new active key
func (c *Console) AddAPIKey(name string, permissions []string) (APIKey, error) {
	k, err := c.Keys.Add(APIKey{
		Name:        name,
		Key:         c.Secrets(),
		Permissions: slices.Clone(permissions),
		CreatedAt:   c.stamp(),
		LastUsed:    Never,
	})
	if err != nil {
		return APIKey{}, err
	}
	c.audit(AuditAddKey, c.Operator, "Created API key: "+k.Name)
	return k, nil
}

// RotateAPIKey replaces the secret of an active key
func (c *Console) RotateAPIKey(id string) (APIKey, error) {
	current, err := c.Keys.Get(id)
	if err != nil {
		return APIKey{}, err
	}
	if current.Status != KeyActive {
		return APIKey{}, fmt.Errorf("%w: key %s is %s", types.ErrInvalidTransition, id, current.Status)
	}
	k, err := c.Keys.Update(id, func(k APIKey) APIKey {
		k.Key = c.Secrets()
		k.LastUsed = c.stamp()
		return k
	})
	if err != nil {
		return APIKey{}, err
	}
	c.audit(AuditRotateKey, c.Operator, "Rotated API key: "+k.Name)
	return k, nil
}

// DeactivateAPIKey disables an active key
func (c *Console) DeactivateAPIKey(id string) (APIKey, error) {
	return c.Keys.Transition(id, ActionDeactivate, "")
}

// ExpireAPIKey retires a key permanently
func (c *Console) ExpireAPIKey(id string) (APIKey, error) {
	return c.Keys.Transition(id, ActionExpire, "")
}

// DeleteAPIKey removes a key
func (c *Console) DeleteAPIKey(id string) error {
	k, err := c.Keys.Get(id)
	if err != nil {
		return err
	}
	if err := c.Keys.Remove(id); err != nil {
		return err
	}
	c.audit(AuditDeleteKey, c.Operator, "Deleted API key: "+k.Name)
	return nil
}

// SetNotifications replaces the notification configuration
func (c *Console) SetNotifications(n NotificationConfig) error {
	if err := c.Notifications.Set(n); err != nil {
		return err
	}
	c.audit(AuditNotify, c.Operator, "Updated notification settings")
	return nil
}

// AddRecipient adds an address to the notification mailing list
func (c *Console) AddRecipient(email string) (NotificationConfig, error) {
	return c.Notifications.Update(func(n NotificationConfig) (NotificationConfig, error) {
		if slices.Contains(n.EmailRecipients, email) {
			return n, fmt.Errorf("%w: %s is already a recipient", types.ErrValidation, email)
		}
		n.EmailRecipients = append(slices.Clone(n.EmailRecipients), email)
		return n, nil
	})
}

// RemoveRecipient drops an address from the mailing list
func (c *Console) RemoveRecipient(email string) (NotificationConfig, error) {
	return c.Notifications.Update(func(n NotificationConfig) (NotificationConfig, error) {
		i := slices.Index(n.EmailRecipients, email)
		if i < 0 {
			return n, fmt.Errorf("%w: recipient %s", types.ErrNotFound, email)
		}
		n.EmailRecipients = slices.Delete(slices.Clone(n.EmailRecipients), i, i+1)
		return n, nil
	})
}

// SetSettings replaces the system settings
func (c *Console) SetSettings(s SystemSettings) error {
	if err := c.Settings.Set(s); err != nil {
		return err
	}
	c.audit(AuditSettings, c.Operator, "Updated system settings")
	return nil
}

// Export bundles every admin collection and document
func (c *Console) Export(date time.Time) export.Bundle {
	return export.Bundle{
		Prefix: ExportPrefix,
		Date:   date,
		Sections: []export.Section{
			{Key: "adminUsers", Sheet: "Admin Users", Rows: c.Users.All()},
			{Key: "auditLogs", Sheet: "Audit Logs", Rows: c.Activity.All()},
			{Key: "systemLogs", Sheet: "System Logs", Rows: c.SystemLogs.All()},
			{Key: "notificationConfig", Sheet: "Notifications", Rows: c.Notifications.Get()},
			{Key: "apiKeys", Sheet: "API Keys", Rows: c.Keys.All()},
			{Key: "systemSettings", Sheet: "System Settings", Rows: c.Settings.Get()},
		},
	}
}
