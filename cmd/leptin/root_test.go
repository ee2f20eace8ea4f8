package leptin

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so in-process runs do not
// leak values into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("leptin %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func daysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format("2006-01-02")
}

func TestRootHelp(t *testing.T) {
	out := mustRun(t, "--help")
	if !strings.Contains(out, "Leptin Method") {
		t.Fatalf("expected help output, got %q", out)
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leptin.db")
	for i := 0; i < 2; i++ {
		out := mustRun(t, "--db", path, "init")
		if !strings.Contains(out, "schema v3") {
			t.Fatalf("init run %d: unexpected output %q", i+1, out)
		}
	}
}

func TestTodayRequiresSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leptin.db")
	_, err := runCLI(t, "--db", path, "today")
	if err == nil || !strings.Contains(err.Error(), "leptin setup") {
		t.Fatalf("expected setup hint, got %v", err)
	}
}

func TestDailyFlow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leptin.db")

	out := mustRun(t, "--db", path, "setup", "--name", "דנה", "--start-date", daysAgo(14))
	if !strings.Contains(out, "Week 3 of 13") {
		t.Fatalf("unexpected setup output %q", out)
	}

	out = mustRun(t, "--db", path, "today")
	if !strings.Contains(out, "שלום דנה") || !strings.Contains(out, "Day 15 | Week 3 of 13") {
		t.Fatalf("unexpected today output %q", out)
	}
	if !strings.Contains(out, "🆘") {
		t.Fatalf("an empty day should offer rescue actions, got %q", out)
	}

	out = mustRun(t, "--db", path, "log", "set", "--water", "3", "--water-before", "3", "--veggies", "--protein", "--fats", "1", "--window", "10")
	if !strings.Contains(out, "score 100%") {
		t.Fatalf("unexpected log set output %q", out)
	}

	out = mustRun(t, "--db", path, "done")
	if !strings.Contains(out, "🏆") {
		t.Fatalf("unexpected done output %q", out)
	}

	out = mustRun(t, "--db", path, "history")
	if !strings.Contains(out, "🏆 "+daysAgo(0)) || !strings.Contains(out, "רצף נוכחי: 1") {
		t.Fatalf("unexpected history output %q", out)
	}

	out = mustRun(t, "--db", path, "log", "show", "--json")
	var shown struct {
		Score int `json:"score"`
		Log   struct {
			Done bool `json:"done"`
		} `json:"log"`
	}
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("decode log show json: %v\n%s", err, out)
	}
	if shown.Score != 100 || !shown.Log.Done {
		t.Fatalf("unexpected log show json %+v", shown)
	}
}

func TestSlipTrackingStartsInWeekThree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leptin.db")
	mustRun(t, "--db", path, "setup", "--start-date", daysAgo(3))

	_, err := runCLI(t, "--db", path, "log", "set", "--slip")
	if err == nil || !strings.Contains(err.Error(), "week 3") {
		t.Fatalf("expected week 3 gate, got %v", err)
	}
	mustRun(t, "--db", path, "log", "set", "--treat")
}

func TestCounterCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leptin.db")
	mustRun(t, "--db", path, "setup", "--start-date", daysAgo(1))

	mustRun(t, "--db", path, "log", "water-before", "up")
	out := mustRun(t, "--db", path, "log", "water-before", "up")
	if !strings.Contains(out, "2/3") {
		t.Fatalf("unexpected water-before output %q", out)
	}
	out = mustRun(t, "--db", path, "log", "fats", "5")
	if !strings.Contains(out, "5") || !strings.Contains(out, "⚠️") {
		t.Fatalf("unexpected fats output %q", out)
	}
	out = mustRun(t, "--db", path, "log", "fats", "down")
	if !strings.Contains(out, "4") {
		t.Fatalf("unexpected fats output %q", out)
	}
	if _, err := runCLI(t, "--db", path, "log", "fats", "lots"); err == nil {
		t.Fatalf("expected invalid step error")
	}
}

func TestWeekCommand(t *testing.T) {
	out := mustRun(t, "week", "3")
	if !strings.Contains(out, "סוכר") {
		t.Fatalf("week 3 should forbid sugar, got %q", out)
	}
	if _, err := runCLI(t, "week", "14"); err == nil {
		t.Fatalf("expected out-of-range week error")
	}
}

func TestTrackSelectionGate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leptin.db")
	mustRun(t, "--db", path, "setup", "--start-date", daysAgo(20))
	if _, err := runCLI(t, "--db", path, "track", "set", "fast"); err == nil || !strings.Contains(err.Error(), "week 9") {
		t.Fatalf("expected week 9 gate, got %v", err)
	}

	late := filepath.Join(t.TempDir(), "late.db")
	mustRun(t, "--db", late, "setup", "--start-date", daysAgo(70))
	out := mustRun(t, "--db", late, "track", "set", "cleanse")
	if !strings.Contains(out, "Track saved") {
		t.Fatalf("unexpected track output %q", out)
	}
	if _, err := runCLI(t, "--db", late, "track", "set", "fast"); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected saved track to need --force, got %v", err)
	}
	out = mustRun(t, "--db", late, "track", "set", "fast", "--force")
	if !strings.Contains(out, "Track saved") {
		t.Fatalf("unexpected forced track output %q", out)
	}
}

func TestExportImportCommands(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.db")
	dst := filepath.Join(dir, "dst.db")
	exported := filepath.Join(dir, "export.json")

	mustRun(t, "--db", src, "setup", "--start-date", daysAgo(5))
	mustRun(t, "--db", src, "log", "set", "--water", "3", "--veggies")
	out := mustRun(t, "--db", src, "export", "--out", exported)
	if !strings.Contains(out, "Exported 1 day(s)") {
		t.Fatalf("unexpected export output %q", out)
	}
	raw, err := os.ReadFile(exported)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(raw), `"user_settings"`) || !strings.Contains(string(raw), `"daily_logs"`) {
		t.Fatalf("unexpected export document %s", raw)
	}

	out = mustRun(t, "--db", dst, "import", "--in", exported, "--dry-run")
	if !strings.Contains(out, "Dry-run") {
		t.Fatalf("unexpected dry-run output %q", out)
	}
	if _, err := runCLI(t, "--db", dst, "log", "show"); err == nil {
		t.Fatalf("dry run must not write logs")
	}

	mustRun(t, "--db", dst, "import", "--in", exported, "--mode", "replace")
	out = mustRun(t, "--db", dst, "log", "show", "--json")
	if !strings.Contains(out, `"water": 3`) {
		t.Fatalf("imported log missing water, got %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out := mustRun(t, "version")
	if !strings.HasPrefix(out, "leptin ") {
		t.Fatalf("unexpected version output %q", out)
	}
}
