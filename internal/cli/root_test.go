package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("APP_PASSWORD", "secret")
	t.Setenv("TZ_NAME", "UTC")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("KIMI_API_KEY", "")
	return filepath.Join(t.TempDir(), "nutrition.db")
}

// resetFlags puts every flag back to its default so runs do not leak into
// each other through the package level commands
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--env", ""}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := run(t, "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if !strings.Contains(out, "today") {
		t.Errorf("help does not list commands:\n%s", out)
	}
}

func TestAddTodayDelete(t *testing.T) {
	db := setupEnv(t)

	out, err := run(t, "--db", db, "add", "--date", "2025-03-09", "--food", "Oats", "--amount", "50",
		"--kcal", "190", "--protein", "7", "--carbs", "33", "--fat", "3.5", "--fiber", "5")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "Added Oats") {
		t.Errorf("add output = %q", out)
	}

	out, err = run(t, "--db", db, "today", "--date", "2025-03-09")
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	for _, want := range []string{"Oats", "Date: 2025-03-09 (as of 23:00)", "Entries: 1", "190 kcal / 2000 kcal"} {
		if !strings.Contains(out, want) {
			t.Errorf("today output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "--db", db, "entries", "--date", "2025-03-09")
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		t.Fatal("no entries listed")
	}
	id := fields[0]

	if _, err := run(t, "--db", db, "delete", id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := run(t, "--db", db, "delete", id); err == nil {
		t.Error("deleting twice should fail")
	}

	out, err = run(t, "--db", db, "entries", "--date", "2025-03-09")
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if !strings.Contains(out, "No entries.") {
		t.Errorf("entries after delete = %q", out)
	}
}

func TestAddRejectsNegativeMacros(t *testing.T) {
	db := setupEnv(t)
	if _, err := run(t, "--db", db, "add", "--date", "2025-03-09", "--food", "Oats", "--amount", "50",
		"--kcal", "-5", "--protein", "7", "--carbs", "33", "--fat", "3.5", "--fiber", "5"); err == nil {
		t.Error("negative calories were accepted")
	}
}

func TestAddRequiresEveryMacro(t *testing.T) {
	db := setupEnv(t)

	_, err := run(t, "--db", db, "add", "--date", "2025-03-09", "--food", "mystery", "--amount", "100")
	if err == nil {
		t.Fatal("add without macros succeeded")
	}
	for _, flag := range []string{"kcal", "protein", "carbs", "fat", "fiber"} {
		if !strings.Contains(err.Error(), flag) {
			t.Errorf("error %q does not name --%s", err, flag)
		}
	}

	out, err := run(t, "--db", db, "entries", "--date", "2025-03-09")
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if !strings.Contains(out, "No entries.") {
		t.Errorf("a partial entry was stored:\n%s", out)
	}

	// explicit zeros are accepted
	if _, err := run(t, "--db", db, "add", "--date", "2025-03-09", "--food", "Water", "--amount", "250",
		"--kcal", "0", "--protein", "0", "--carbs", "0", "--fat", "0", "--fiber", "0"); err != nil {
		t.Errorf("all-zero add: %v", err)
	}
}

func TestWeek(t *testing.T) {
	db := setupEnv(t)
	if _, err := run(t, "--db", db, "add", "--date", "2025-03-08", "--food", "Rice", "--amount", "100", "--kcal", "130",
		"--protein", "0", "--carbs", "0", "--fat", "0", "--fiber", "0"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := run(t, "--db", db, "week", "--end", "2025-03-10")
	if err != nil {
		t.Fatalf("week: %v", err)
	}
	for _, want := range []string{"Mar 4 - Mar 10", "Mar 8", "130 kcal", "Average:"} {
		if !strings.Contains(out, want) {
			t.Errorf("week output missing %q:\n%s", want, out)
		}
	}
}

func TestLogNeedsAProvider(t *testing.T) {
	db := setupEnv(t)
	if _, err := run(t, "--db", db, "log", "two eggs"); err == nil {
		t.Error("log without API keys should fail")
	}
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "hash-password", "hunter2")
	if err != nil {
		t.Fatalf("hash-password: %v", err)
	}
	if !strings.HasPrefix(out, "$2a$") {
		t.Errorf("hash = %q", out)
	}
}
