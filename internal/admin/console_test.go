package admin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/nanotable/nanotable/collection"
	"github.com/arthur-debert/nanotable/nanotable/query"
	"github.com/arthur-debert/nanotable/nanotable/storage"
	"github.com/arthur-debert/nanotable/nanotable/storage/memory"
	"github.com/arthur-debert/nanotable/types"
)

var fixedNow = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func newConsole(t *testing.T, blob storage.Blob) *Console {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := New(logger, func() time.Time { return fixedNow },
		collection.WithAdapter(storage.NewAdapter(blob, storage.WithLogger(logger))))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	n := 0
	c.Secrets = func() string {
		n++
		return "sk_test_" + strings.Repeat("x", n)
	}
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	return c
}

func latestActivity(t *testing.T, c *Console) ActivityLog {
	t.Helper()
	all := c.Activity.All()
	if len(all) == 0 {
		t.Fatal("activity log is empty")
	}
	return all[0]
}

func TestRefreshLoadsSeeds(t *testing.T) {
	c := newConsole(t, memory.New())
	if c.Users.Len() != 3 || c.Keys.Len() != 2 || c.Activity.Len() != 5 || c.SystemLogs.Len() != 5 {
		t.Error("seed data not loaded")
	}
	if diff := cmp.Diff(DefaultSettings(), c.Settings.Get()); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestSeedsAreValid(t *testing.T) {
	for _, u := range SeedUsers() {
		if err := u.Validate(); err != nil {
			t.Errorf("user %s: %v", u.ID, err)
		}
	}
	for _, k := range SeedAPIKeys() {
		if err := k.Validate(); err != nil {
			t.Errorf("key %s: %v", k.ID, err)
		}
	}
	for _, l := range SeedActivity() {
		if err := l.Validate(); err != nil {
			t.Errorf("activity %s: %v", l.ID, err)
		}
	}
	if err := DefaultNotifications().Validate(); err != nil {
		t.Error(err)
	}
	if err := DefaultSettings().Validate(); err != nil {
		t.Error(err)
	}
}

func TestAddUser(t *testing.T) {
	blob := memory.New()
	c := newConsole(t, blob)

	u, err := c.AddUser(NewUser{Name: "Ana Ops", Email: "ana@sheetsway.com", Permissions: []string{"read"}})
	if err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}
	if u.Status != UserActive || u.Role != RoleAdmin || u.LastLogin != Never || u.ID == "" {
		t.Errorf("AddUser() = %+v", u)
	}

	entry := latestActivity(t, c)
	if entry.Action != AuditAddUser || entry.Details != "Added admin user: ana@sheetsway.com" || entry.User != "Ana Ops" {
		t.Errorf("activity = %+v", entry)
	}

	reloaded := newConsole(t, blob)
	if _, err := reloaded.Users.Get(u.ID); err != nil {
		t.Errorf("user not persisted: %v", err)
	}
	if reloaded.Activity.Len() != 6 {
		t.Errorf("activity entries after reload = %d, want 6", reloaded.Activity.Len())
	}
}

func TestAddUserValidation(t *testing.T) {
	c := newConsole(t, memory.New())
	tests := []struct {
		name string
		in   NewUser
	}{
		{"missing name", NewUser{Email: "x@sheetsway.com"}},
		{"missing email", NewUser{Name: "X"}},
		{"bad email", NewUser{Name: "X", Email: "x"}},
		{"bad role", NewUser{Name: "X", Email: "x@sheetsway.com", Role: "root"}},
		{"bad permission", NewUser{Name: "X", Email: "x@sheetsway.com", Permissions: []string{"sudo"}}},
		{"duplicate email", NewUser{Name: "X", Email: "JOHN@sheetsway.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.AddUser(tt.in); !errors.Is(err, types.ErrValidation) {
				t.Errorf("AddUser() error = %v, want ErrValidation", err)
			}
		})
	}
	if c.Users.Len() != 3 || c.Activity.Len() != 5 {
		t.Error("rejected users changed state")
	}
}

func TestUpdateUser(t *testing.T) {
	c := newConsole(t, memory.New())
	role := RoleModerator
	u, err := c.UpdateUser("2", UserPatch{Role: &role, Permissions: []string{"read"}})
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != RoleModerator || u.Name != "Sarah Manager" {
		t.Errorf("UpdateUser() = %+v", u)
	}

	taken := "john@sheetsway.com"
	if _, err := c.UpdateUser("2", UserPatch{Email: &taken}); !errors.Is(err, types.ErrValidation) {
		t.Errorf("duplicate email: error = %v", err)
	}
	own := "sarah@sheetsway.com"
	if _, err := c.UpdateUser("2", UserPatch{Email: &own}); err != nil {
		t.Errorf("keeping own email: %v", err)
	}
}

func TestUserStatus(t *testing.T) {
	c := newConsole(t, memory.New())

	u, err := c.ToggleUser("1")
	if err != nil {
		t.Fatal(err)
	}
	if u.Status != UserSuspended {
		t.Errorf("status = %q, want suspended", u.Status)
	}
	if _, err := c.ToggleUser("1"); !errors.Is(err, types.ErrInvalidTransition) {
		t.Errorf("toggling a suspended user: error = %v", err)
	}
	if _, err := c.DeactivateUser("3"); !errors.Is(err, types.ErrInvalidTransition) {
		t.Errorf("deactivating an inactive user: error = %v", err)
	}
	if _, err := c.SuspendUser("3"); err != nil {
		t.Errorf("suspending an inactive user: %v", err)
	}
	if _, err := c.ToggleUser("42"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("unknown user: error = %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	c := newConsole(t, memory.New())
	c.Users.Selection().Toggle("2")
	if err := c.DeleteUser("2"); err != nil {
		t.Fatal(err)
	}
	if c.Users.Selection().Contains("2") {
		t.Error("deleted user still selected")
	}
	if entry := latestActivity(t, c); entry.Details != "Deleted admin user: sarah@sheetsway.com" {
		t.Errorf("activity = %+v", entry)
	}
	if err := c.DeleteUser("2"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("second delete: error = %v", err)
	}
}

func TestAPIKeys(t *testing.T) {
	c := newConsole(t, memory.New())

	k, err := c.AddAPIKey("CI", []string{"read"})
	if err != nil {
		t.Fatal(err)
	}
	if k.Key != "sk_test_x" || k.LastUsed != Never || k.Status != KeyActive {
		t.Errorf("AddAPIKey() = %+v", k)
	}
	if _, err := c.AddAPIKey("", nil); !errors.Is(err, types.ErrValidation) {
		t.Errorf("unnamed key: error = %v", err)
	}

	rotated, err := c.RotateAPIKey(k.ID)
	if err != nil {
		t.Fatal(err)
	}
	if rotated.Key == k.Key || rotated.LastUsed != "2024-01-20T12:00:00Z" {
		t.Errorf("RotateAPIKey() = %+v", rotated)
	}

	if _, err := c.DeactivateAPIKey(k.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := c.RotateAPIKey(k.ID); !errors.Is(err, types.ErrInvalidTransition) {
		t.Errorf("rotating an inactive key: error = %v", err)
	}
	if _, err := c.ExpireAPIKey(k.ID); err != nil {
		t.Fatal(err)
	}
	if err := c.DeleteAPIKey(k.ID); err != nil {
		t.Fatal(err)
	}
	if c.Keys.Len() != 2 {
		t.Errorf("keys = %d, want 2", c.Keys.Len())
	}
}

func TestRecipients(t *testing.T) {
	c := newConsole(t, memory.New())

	n, err := c.AddRecipient("ops@sheetsway.com")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"admin@sheetsway.com", "ops@sheetsway.com"}, n.EmailRecipients); diff != "" {
		t.Errorf("recipients mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"", "ops@sheetsway.com", "not-an-email"} {
		if _, err := c.AddRecipient(bad); err == nil {
			t.Errorf("AddRecipient(%q) accepted", bad)
		}
	}

	if _, err := c.RemoveRecipient("admin@sheetsway.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.RemoveRecipient("admin@sheetsway.com"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("removing twice: error = %v", err)
	}
	if diff := cmp.Diff([]string{"ops@sheetsway.com"}, c.Notifications.Get().EmailRecipients); diff != "" {
		t.Errorf("recipients mismatch (-want +got):\n%s", diff)
	}
}

func TestSettings(t *testing.T) {
	blob := memory.New()
	c := newConsole(t, blob)

	s := c.Settings.Get()
	s.MaintenanceMode = true
	s.IPWhitelist = true
	s.IPAddresses = []string{"10.0.0.0/8", "192.168.1.100"}
	if err := c.SetSettings(s); err != nil {
		t.Fatalf("SetSettings() error = %v", err)
	}
	if latestActivity(t, c).Action != AuditSettings {
		t.Error("settings change not audited")
	}

	bad := []func(*SystemSettings){
		func(s *SystemSettings) { s.SiteName = "" },
		func(s *SystemSettings) { s.AdminEmail = "admin" },
		func(s *SystemSettings) { s.Timezone = "Mars/Olympus" },
		func(s *SystemSettings) { s.SessionTimeout = 0 },
		func(s *SystemSettings) { s.IPAddresses = []string{"300.1.1.1"} },
		func(s *SystemSettings) { s.IPAddresses = nil },
	}
	for i, mutate := range bad {
		next := c.Settings.Get()
		mutate(&next)
		if err := c.SetSettings(next); !errors.Is(err, types.ErrValidation) {
			t.Errorf("case %d: error = %v, want ErrValidation", i, err)
		}
	}

	reloaded := newConsole(t, blob)
	if !reloaded.Settings.Get().MaintenanceMode {
		t.Error("settings not persisted")
	}
}

func TestActivityFilters(t *testing.T) {
	c := newConsole(t, memory.New())

	byUser := query.Filter(c.Activity.All(), types.Criteria{ActorName: "Sarah Manager"})
	if diff := cmp.Diff([]string{"3", "5"}, types.IDs(byUser)); diff != "" {
		t.Errorf("by user mismatch (-want +got):\n%s", diff)
	}
	byAction := query.Filter(c.Activity.All(), types.Criteria{Status: "Login"})
	if diff := cmp.Diff([]string{"1"}, types.IDs(byAction)); diff != "" {
		t.Errorf("by action mismatch (-want +got):\n%s", diff)
	}
	errorsOnly := query.Filter(c.SystemLogs.All(), types.Criteria{Status: "ERROR"})
	if diff := cmp.Diff([]string{"3", "5"}, types.IDs(errorsOnly)); diff != "" {
		t.Errorf("system log level mismatch (-want +got):\n%s", diff)
	}
}

func TestExport(t *testing.T) {
	c := newConsole(t, memory.New())
	b := c.Export(fixedNow)
	var keys []string
	for _, s := range b.Sections {
		keys = append(keys, s.Key)
	}
	want := []string{"adminUsers", "auditLogs", "systemLogs", "notificationConfig", "apiKeys", "systemSettings"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
	if b.Filename("json") != "admin-settings-export-2024-01-20.json" {
		t.Errorf("Filename() = %q", b.Filename("json"))
	}
}

func TestNewSecret(t *testing.T) {
	a, b := NewSecret(), NewSecret()
	if a == b || !strings.HasPrefix(a, "sk_") || len(a) != len("sk_")+13+1+13 {
		t.Errorf("NewSecret() = %q, %q", a, b)
	}
}
