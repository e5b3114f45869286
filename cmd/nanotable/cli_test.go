package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/nanotable/internal/admin"
	"github.com/arthur-debert/nanotable/internal/finance"
	"github.com/arthur-debert/nanotable/internal/vetting"
	"github.com/arthur-debert/nanotable/nanotable/storage/file"
	"github.com/arthur-debert/nanotable/testutil"
	"github.com/arthur-debert/nanotable/types"
)

// run executes one CLI invocation with a frozen clock and isolated cache
// and home directories, returning stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NANOTABLE_CONFIG", "")

	cli := NewCLI()
	cli.now = testutil.Clock

	var stdout, stderr bytes.Buffer
	cli.rootCmd.SetOut(&stdout)
	cli.rootCmd.SetErr(&stderr)
	cli.rootCmd.SetArgs(args)

	err := cli.Execute(context.Background())
	return stdout.String(), err
}

// mustRun fails the test when the invocation errors
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("nanotable %s: %v", strings.Join(args, " "), err)
	}
	return out
}

// decode parses JSON output into v
func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("failed to decode output %q: %v", out, err)
	}
	return v
}

// fileStore returns the flags selecting a fresh file-backed store, so
// changes survive between invocations
func fileStore(t *testing.T) []string {
	t.Helper()
	return []string{"--store-driver", "file", "--store-path", t.TempDir()}
}

func with(base []string, args ...string) []string {
	return append(append([]string(nil), base...), args...)
}

func TestListCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"all users", []string{"users", "list"}, []string{"1", "2", "3"}},
		{"users by status", []string{"users", "list", "--status", "inactive"}, []string{"3"}},
		{"users by text", []string{"users", "list", "--q", "SARAH"}, []string{"2"}},
		{"second page", []string{"--page-size", "2", "users", "list", "--page", "2"}, []string{"3"}},
		{"escrow by status", []string{"escrow", "list", "--status", "pending"}, []string{"ESC-001"}},
		{"escrow by amount", []string{"escrow", "list", "--min", "2500", "--max", "6000"}, []string{"ESC-001", "ESC-002"}},
		{"escrow from amount", []string{"escrow", "list", "--min", "5000"}, []string{"ESC-001", "ESC-004"}},
		{"audit by actor", []string{"logs", "list", "--actor", "Sarah Manager"}, []string{"3", "5"}},
		{"audit by day", []string{"logs", "list", "--from", "2024-01-14", "--to", "2024-01-14"}, []string{"3", "4"}},
		{"system logs by level", []string{"syslogs", "list", "--status", "ERROR"}, []string{"3", "5"}},
		{"disputes", []string{"disputes", "list", "--status", "all"}, []string{"DISP-001", "DISP-002", "DISP-003"}},
		{"revenue", []string{"finance", "revenue"}, []string{"REV-001", "REV-002", "REV-003"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustRun(t, with([]string{"-f", "json"}, tt.args...)...)
			var got []string
			for _, rec := range decode[[]map[string]any](t, out) {
				got = append(got, rec["id"].(string))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListRejectsBadFilters(t *testing.T) {
	for _, args := range [][]string{
		{"escrow", "list", "--min", "10", "--max", "5"},
		{"logs", "list", "--from", "yesterday"},
	} {
		if _, err := run(t, args...); !errors.Is(err, types.ErrValidation) {
			t.Errorf("%v: error = %v, want ErrValidation", args, err)
		}
	}
}

func TestTableOutput(t *testing.T) {
	out := mustRun(t, "users", "list", "--status", "inactive")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[1], "mike@sheetsway.com") {
		t.Errorf("unexpected table:\n%s", out)
	}
}

func TestEscrowTransitionsPersist(t *testing.T) {
	store := fileStore(t)

	released := decode[finance.Escrow](t, mustRun(t, with(store, "-f", "json", "escrow", "release", "ESC-001")...))
	if released.Status != finance.EscrowReleased {
		t.Errorf("status = %q, want released", released.Status)
	}

	out := mustRun(t, with(store, "-f", "json", "escrow", "list", "--status", "released")...)
	if got := len(decode[[]finance.Escrow](t, out)); got != 2 {
		t.Errorf("released escrows = %d, want 2", got)
	}

	_, err := run(t, with(store, "escrow", "release", "ESC-001")...)
	if !errors.Is(err, types.ErrInvalidTransition) {
		t.Errorf("second release error = %v, want ErrInvalidTransition", err)
	}
	var cliErr *CLIError
	if !errors.As(err, &cliErr) || cliErr.Operation != "release escrow" {
		t.Errorf("error = %#v, want a CLIError for release escrow", err)
	}
}

func TestResolveDisputeUpdatesEscrow(t *testing.T) {
	store := fileStore(t)

	d := decode[finance.Dispute](t, mustRun(t, with(store, "-f", "json",
		"disputes", "resolve", "DISP-001", "--action", "refund", "--notes", "client refunded")...))
	if d.Status != finance.DisputeRefunded || d.AdminNotes != "client refunded" {
		t.Errorf("dispute = %+v", d)
	}

	out := mustRun(t, with(store, "-f", "json", "escrow", "list", "--status", "refunded")...)
	escrows := decode[[]finance.Escrow](t, out)
	if len(escrows) != 1 || escrows[0].ID != "ESC-003" {
		t.Errorf("refunded escrows = %+v, want ESC-003", escrows)
	}

	if _, err := run(t, with(store, "disputes", "resolve", "DISP-002", "--action", "split", "--notes", "x")...); !errors.Is(err, types.ErrValidation) {
		t.Errorf("unknown action error = %v, want ErrValidation", err)
	}
	if _, err := run(t, with(store, "disputes", "resolve", "DISP-002")...); !errors.Is(err, types.ErrValidation) {
		t.Errorf("missing notes error = %v, want ErrValidation", err)
	}
}

func TestMilestoneCommands(t *testing.T) {
	store := fileStore(t)

	m := decode[finance.Milestone](t, mustRun(t, with(store, "-f", "json", "milestones", "progress", "MIL-001", "100")...))
	if m.Status != finance.MilestoneCompleted || m.Progress != 100 {
		t.Errorf("milestone = %+v, want completed at 100%%", m)
	}

	if _, err := run(t, with(store, "milestones", "progress", "MIL-001", "half")...); !errors.Is(err, types.ErrValidation) {
		t.Errorf("non-numeric progress error = %v, want ErrValidation", err)
	}
	if _, err := run(t, with(store, "milestones", "dispute", "MIL-001", "--reason", "late")...); !errors.Is(err, types.ErrInvalidTransition) {
		t.Errorf("dispute of a completed milestone error = %v, want ErrInvalidTransition", err)
	}
}

func TestFinanceStats(t *testing.T) {
	stats := decode[finance.Stats](t, mustRun(t, "-f", "json", "finance", "stats"))
	want := finance.Stats{
		TotalEscrowAmount:       18000,
		TotalRevenue:            45000,
		PendingTransactions:     4,
		FailedTransactions:      3,
		DisputedTransactions:    3,
		AverageTransactionValue: 1000,
		MonthlyGrowth:           18.4,
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}

	sizes := decode[[]collectionSize](t, mustRun(t, "-f", "json", "finance", "refresh"))
	if len(sizes) != 5 || sizes[0].Collection != finance.EscrowKey || sizes[0].Records != 4 {
		t.Errorf("refresh summary = %+v", sizes)
	}
}

func TestUserCommands(t *testing.T) {
	store := fileStore(t)

	u := decode[admin.User](t, mustRun(t, with(store, "-f", "json",
		"users", "add", "--name", "Dana Ops", "--email", "dana@sheetsway.com", "--permissions", "read,write")...))
	if u.Status != admin.UserActive || u.Role != admin.RoleAdmin || u.LastLogin != admin.Never {
		t.Errorf("added user = %+v", u)
	}

	logs := decode[[]admin.ActivityLog](t, mustRun(t, with(store, "-f", "json", "logs", "list")...))
	if len(logs) != 6 || logs[0].Details != "Added admin user: dana@sheetsway.com" {
		t.Errorf("newest audit entry = %+v", logs[0])
	}

	_, err := run(t, with(store, "users", "add", "--name", "Copy", "--email", "dana@sheetsway.com")...)
	if !errors.Is(err, types.ErrValidation) {
		t.Errorf("duplicate email error = %v, want ErrValidation", err)
	}

	updated := decode[admin.User](t, mustRun(t, with(store, "-f", "json", "users", "update", u.ID, "--role", admin.RoleModerator)...))
	if updated.Role != admin.RoleModerator || updated.Name != "Dana Ops" {
		t.Errorf("updated user = %+v", updated)
	}

	toggled := decode[admin.User](t, mustRun(t, with(store, "-f", "json", "users", "toggle", u.ID)...))
	if toggled.Status != admin.UserSuspended {
		t.Errorf("toggled status = %q, want suspended", toggled.Status)
	}
	if _, err := run(t, with(store, "users", "toggle", u.ID)...); !errors.Is(err, types.ErrInvalidTransition) {
		t.Errorf("toggle of a suspended user error = %v, want ErrInvalidTransition", err)
	}

	if out := mustRun(t, with(store, "users", "delete", u.ID)...); !strings.Contains(out, "deleted user") {
		t.Errorf("delete output = %q", out)
	}
	if _, err := run(t, with(store, "users", "delete", u.ID)...); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestAPIKeyCommands(t *testing.T) {
	store := fileStore(t)

	rotated := decode[admin.APIKey](t, mustRun(t, with(store, "-f", "json", "keys", "rotate", "1")...))
	if rotated.Key == "sk_live_1234567890abcdef" || !strings.HasPrefix(rotated.Key, "sk_") {
		t.Errorf("rotated key = %q", rotated.Key)
	}

	mustRun(t, with(store, "keys", "deactivate", "2")...)
	if _, err := run(t, with(store, "keys", "rotate", "2")...); !errors.Is(err, types.ErrInvalidTransition) {
		t.Errorf("rotate of an inactive key error = %v, want ErrInvalidTransition", err)
	}

	added := decode[admin.APIKey](t, mustRun(t, with(store, "-f", "json", "keys", "add", "CI key", "--permissions", "read")...))
	keys := decode[[]admin.APIKey](t, mustRun(t, with(store, "-f", "json", "keys", "list", "--q", "ci")...))
	if len(keys) != 1 || keys[0].ID != added.ID {
		t.Errorf("keys matching 'ci' = %+v", keys)
	}
}

func TestBulkDeleteLogs(t *testing.T) {
	store := fileStore(t)

	if out := mustRun(t, with(store, "logs", "delete", "--visible", "--actor", "Sarah Manager")...); !strings.Contains(out, "deleted 2") {
		t.Errorf("delete output = %q", out)
	}
	if out := mustRun(t, with(store, "logs", "delete", "1")...); !strings.Contains(out, "deleted 1") {
		t.Errorf("delete output = %q", out)
	}

	logs := decode[[]admin.ActivityLog](t, mustRun(t, with(store, "-f", "json", "logs", "list")...))
	var ids []string
	for _, l := range logs {
		ids = append(ids, l.ID)
	}
	if diff := cmp.Diff([]string{"2", "4"}, ids); diff != "" {
		t.Errorf("remaining entries (-want +got):\n%s", diff)
	}

	blob, err := file.New(store[len(store)-1])
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = blob.Close() }()
	testutil.AssertSnapshot(t, blob, admin.ActivityKey, "2", "4")

	// unknown ids are skipped, the rest of the batch still goes
	if out := mustRun(t, with(store, "logs", "delete", "99", "2")...); !strings.Contains(out, "deleted 1") {
		t.Errorf("delete output = %q", out)
	}
	testutil.AssertSnapshot(t, blob, admin.ActivityKey, "4")
	if out := mustRun(t, with(store, "logs", "delete", "99")...); !strings.Contains(out, "deleted 0") {
		t.Errorf("delete output = %q", out)
	}
	if _, err := run(t, with(store, "logs", "delete")...); !errors.Is(err, types.ErrValidation) {
		t.Errorf("no ids error = %v, want ErrValidation", err)
	}
}

func TestSettingsCommands(t *testing.T) {
	store := fileStore(t)

	mustRun(t, with(store, "settings", "set", "sessionTimeout=60", "maintenanceMode=true", "ipAddresses=[10.0.0.0/8]")...)

	s := decode[admin.SystemSettings](t, mustRun(t, with(store, "-f", "json", "settings", "show")...))
	if s.SessionTimeout != 60 || !s.MaintenanceMode || !cmp.Equal([]string{"10.0.0.0/8"}, s.IPAddresses) {
		t.Errorf("settings = %+v", s)
	}

	for _, bad := range [][]string{
		{"sessionTimeout=0"},
		{"sessionTimeout=soon"},
		{"colour=blue"},
		{"noequals"},
	} {
		if _, err := run(t, with(store, append([]string{"settings", "set"}, bad...)...)...); !errors.Is(err, types.ErrValidation) {
			t.Errorf("settings set %v error = %v, want ErrValidation", bad, err)
		}
	}

	logs := decode[[]admin.ActivityLog](t, mustRun(t, with(store, "-f", "json", "logs", "list", "--status", admin.AuditSettings)...))
	if len(logs) != 2 {
		t.Errorf("settings audit entries = %d, want the seed entry plus one", len(logs))
	}
}

func TestNotifyCommands(t *testing.T) {
	store := fileStore(t)

	n := decode[admin.NotificationConfig](t, mustRun(t, with(store, "-f", "json", "notify", "add-recipient", "ops@sheetsway.com")...))
	if n.EmailRecipients[len(n.EmailRecipients)-1] != "ops@sheetsway.com" {
		t.Errorf("recipients = %v", n.EmailRecipients)
	}
	if _, err := run(t, with(store, "notify", "add-recipient", "ops@sheetsway.com")...); !errors.Is(err, types.ErrValidation) {
		t.Errorf("duplicate recipient error = %v, want ErrValidation", err)
	}

	mustRun(t, with(store, "notify", "remove-recipient", "ops@sheetsway.com")...)
	if _, err := run(t, with(store, "notify", "remove-recipient", "ops@sheetsway.com")...); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("missing recipient error = %v, want ErrNotFound", err)
	}

	n = decode[admin.NotificationConfig](t, mustRun(t, with(store, "-f", "json", "notify", "set", "systemAlerts=false")...))
	if n.SystemAlerts {
		t.Error("systemAlerts still enabled")
	}
}

func TestExportCommand(t *testing.T) {
	out := mustRun(t, "export", "finance", "--format", "json", "--output", "-")
	doc := decode[map[string]json.RawMessage](t, out)
	for _, key := range []string{"escrowTransactions", "milestonePayments", "stats", "exportDate"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("export is missing %q", key)
		}
	}

	dir := t.TempDir()
	out = mustRun(t, "export", "admin", "--format", "xlsx", "--output", dir)
	want := filepath.Join(dir, "admin-settings-export-2024-01-20.xlsx")
	if strings.TrimSpace(out) != want {
		t.Errorf("export path = %q, want %q", strings.TrimSpace(out), want)
	}
	if info, err := os.Stat(want); err != nil || info.Size() == 0 {
		t.Errorf("workbook not written: %v", err)
	}

	vetted := decode[map[string]json.RawMessage](t, mustRun(t, "export", "vetting", "--format", "json", "--output", "-"))
	for _, key := range []string{"auditors", "clientRequests", "exportDate"} {
		if _, ok := vetted[key]; !ok {
			t.Errorf("vetting export is missing %q", key)
		}
	}

	if _, err := run(t, "export", "finance", "--format", "pdf"); !errors.Is(err, types.ErrValidation) {
		t.Errorf("unknown export format error = %v, want ErrValidation", err)
	}
	if _, err := run(t, "export", "billing"); !errors.Is(err, types.ErrValidation) {
		t.Errorf("unknown console error = %v, want ErrValidation", err)
	}
}

func TestAuditorCommands(t *testing.T) {
	store := fileStore(t)

	pending := decode[[]vetting.Auditor](t, mustRun(t, with(store, "-f", "json", "auditors", "list", "--status", vetting.AuditorPending)...))
	if len(pending) != 2 {
		t.Fatalf("pending auditors = %d, want 2", len(pending))
	}

	approved := decode[vetting.Auditor](t, mustRun(t, with(store, "-f", "json", "auditors", "approve", "axiom-audit")...))
	if approved.Status != vetting.AuditorActive || approved.ExpiryDate != "2026-01-20" {
		t.Errorf("approved = %s until %q", approved.Status, approved.ExpiryDate)
	}

	rejected := decode[vetting.Auditor](t, mustRun(t, with(store, "-f", "json", "auditors", "reject", "veritas-global", "--reason", "license expired")...))
	if rejected.Status != vetting.AuditorRejected || len(rejected.Notes) != 1 || rejected.Notes[0].Note != "license expired" {
		t.Errorf("rejected = %+v", rejected)
	}

	flagged := decode[vetting.Auditor](t, mustRun(t, with(store, "-f", "json", "auditors", "flag", "trust-inc")...))
	if !cmp.Equal([]string{vetting.RiskWatchlist}, flagged.RiskTags) || flagged.Status != vetting.AuditorActive {
		t.Errorf("flagged = %v in %s", flagged.RiskTags, flagged.Status)
	}

	if _, err := run(t, with(store, "auditors", "approve", "veritas-global")...); !errors.Is(err, types.ErrInvalidTransition) {
		t.Errorf("approving a rejected auditor error = %v, want ErrInvalidTransition", err)
	}
	if _, err := run(t, with(store, "auditors", "flag", "trust-inc", "--tag", "Shady")...); !errors.Is(err, types.ErrValidation) {
		t.Errorf("unknown tag error = %v, want ErrValidation", err)
	}
	if _, err := run(t, with(store, "auditors", "invite", "Ledgerwise")...); !errors.Is(err, types.ErrValidation) {
		t.Errorf("invite without email error = %v, want ErrValidation", err)
	}

	active := decode[[]vetting.Auditor](t, mustRun(t, with(store, "-f", "json", "auditors", "list", "--status", vetting.AuditorActive)...))
	var ids []string
	for _, a := range active {
		ids = append(ids, a.ID)
	}
	if diff := cmp.Diff([]string{"axiom-audit", "trust-inc", "audit-corp"}, ids); diff != "" {
		t.Errorf("active auditors (-want +got):\n%s", diff)
	}
}

func TestRequestCommands(t *testing.T) {
	store := fileStore(t)

	mustRun(t, with(store, "requests", "accept", "R-7889")...)
	marked := decode[vetting.ClientRequest](t, mustRun(t, with(store, "-f", "json", "requests", "mark", "R-7886", vetting.MarkerSpam)...))
	if marked.Risk != vetting.MarkerSpam {
		t.Errorf("risk = %q, want Spam", marked.Risk)
	}
	if _, err := run(t, with(store, "requests", "mark", "R-7886", "Weird")...); !errors.Is(err, types.ErrValidation) {
		t.Errorf("unknown marker error = %v, want ErrValidation", err)
	}

	mustRun(t, with(store, "requests", "hide", "R-7890")...)
	if _, err := run(t, with(store, "requests", "accept", "R-7890")...); !errors.Is(err, types.ErrInvalidTransition) {
		t.Errorf("accepting a hidden request error = %v, want ErrInvalidTransition", err)
	}
	mustRun(t, with(store, "requests", "delete", "R-7888")...)

	open := decode[[]vetting.ClientRequest](t, mustRun(t, with(store, "-f", "json", "requests", "list", "--status", vetting.RequestOpen)...))
	if len(open) != 1 || open[0].ID != "R-7886" {
		t.Errorf("open requests = %+v", open)
	}
	accepted := decode[[]vetting.ClientRequest](t, mustRun(t, with(store, "-f", "json", "requests", "list", "--status", vetting.RequestAccepted)...))
	if len(accepted) != 2 {
		t.Errorf("accepted requests = %d, want 2", len(accepted))
	}
}

func TestStoreCommands(t *testing.T) {
	store := fileStore(t)

	if keys := decode[[]snapshotInfo](t, mustRun(t, with(store, "-f", "json", "store", "keys")...)); len(keys) != 0 {
		t.Errorf("fresh store holds %v", keys)
	}

	mustRun(t, with(store, "auditors", "approve", "axiom-audit")...)
	mustRun(t, with(store, "logs", "delete", "1")...)

	keys := decode[[]snapshotInfo](t, mustRun(t, with(store, "-f", "json", "store", "keys")...))
	var names []string
	for _, k := range keys {
		names = append(names, k.Key)
		if k.Bytes == 0 {
			t.Errorf("snapshot %s is empty", k.Key)
		}
	}
	if diff := cmp.Diff([]string{admin.ActivityKey, vetting.AuditorsKey}, names); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	if out := mustRun(t, with(store, "store", "reset", vetting.AuditorsKey)...); !strings.Contains(out, "reset 1 snapshot(s)") {
		t.Errorf("reset output = %q", out)
	}
	pending := decode[[]vetting.Auditor](t, mustRun(t, with(store, "-f", "json", "auditors", "list", "--status", vetting.AuditorPending)...))
	if len(pending) != 2 {
		t.Errorf("pending auditors after reset = %d, want the 2 seeded", len(pending))
	}

	for _, args := range [][]string{
		{"store", "reset"},
		{"store", "reset", "floppy"},
		{"store", "reset", "--all", admin.UsersKey},
	} {
		if _, err := run(t, with(store, args...)...); !errors.Is(err, types.ErrValidation) {
			t.Errorf("%v: error = %v, want ErrValidation", args, err)
		}
	}

	if out := mustRun(t, with(store, "store", "reset", "--all")...); !strings.Contains(out, "reset 1 snapshot(s)") {
		t.Errorf("reset --all output = %q", out)
	}
	if keys := decode[[]snapshotInfo](t, mustRun(t, with(store, "-f", "json", "store", "keys")...)); len(keys) != 0 {
		t.Errorf("store still holds %v", keys)
	}
}

func TestConfigErrors(t *testing.T) {
	_, err := run(t, "--store-driver", "floppy", "users", "list")
	if err == nil || !strings.Contains(err.Error(), "configuration error") {
		t.Errorf("unknown driver error = %v", err)
	}

	_, err = run(t, "-f", "xml", "users", "list")
	if !errors.Is(err, types.ErrValidation) {
		t.Errorf("unknown format error = %v, want ErrValidation", err)
	}
}

func TestVerboseMirrorsLogsToStderr(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cli := NewCLI()
	cli.now = testutil.Clock

	var stdout, stderr bytes.Buffer
	cli.rootCmd.SetOut(&stdout)
	cli.rootCmd.SetErr(&stderr)
	cli.rootCmd.SetArgs([]string{"-v", "--log-level", "debug", "escrow", "release", "ESC-001"})
	if err := cli.Execute(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr.String(), "store opened") {
		t.Errorf("stderr does not mirror the log:\n%s", stderr.String())
	}

	data, err := os.ReadFile(filepath.Join(os.Getenv("XDG_CACHE_HOME"), "nanotable", "nanotable.log"))
	if err != nil {
		t.Fatalf("log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"store opened"`) {
		t.Errorf("log file is missing the open record:\n%s", data)
	}
}

func TestSQLiteDriverPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin.db")
	store := []string{"--store-driver", "sqlite", "--store-path", path}

	mustRun(t, with(store, "failed", "refund", "FAIL-001")...)

	out := mustRun(t, with(store, "-f", "json", "failed", "list", "--status", finance.FailureRefunded)...)
	failed := decode[[]finance.FailedTransaction](t, out)
	testutil.AssertIDs(t, failed, "FAIL-001")
	if len(failed) == 1 && failed[0].AdminNotes != finance.RefundNote {
		t.Errorf("admin notes = %q, want %q", failed[0].AdminNotes, finance.RefundNote)
	}
}
