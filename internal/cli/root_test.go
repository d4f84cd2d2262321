package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("QTODO_DB_PATH", filepath.Join(dir, "qtodo.db"))
	t.Setenv("QTODO_LATENCY", "0s")
	t.Setenv("QTODO_EXCUSE_SEED", "5")
	t.Setenv("QTODO_ASTROLOGY_SEED", "11")
	t.Setenv("QTODO_MOTIVATION_SEED", "13")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("qtodo %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestAddListTogglePersistAcrossInvocations(t *testing.T) {
	setupEnv(t)

	out := mustRun(t, "add", "Write", "spec")
	if !strings.Contains(out, "#1 Write spec") || !strings.Contains(out, "Quantum Leap") {
		t.Fatalf("unexpected add output: %q", out)
	}
	mustRun(t, "add", "Review spec")

	out = mustRun(t, "toggle", "1")
	if !strings.Contains(out, "#1 collapsed") {
		t.Fatalf("unexpected toggle output: %q", out)
	}

	out = mustRun(t, "list")
	if !strings.Contains(out, "#1 Write spec") || !strings.Contains(out, "#2 Review spec") {
		t.Fatalf("list missing tasks: %q", out)
	}
	out = mustRun(t, "list", "--open")
	if strings.Contains(out, "Write spec") {
		t.Fatalf("--open should hide completed tasks: %q", out)
	}

	out = mustRun(t, "stats")
	if !strings.Contains(out, "completion:         50%") {
		t.Fatalf("expected 50%% completion: %q", out)
	}
	mustRun(t, "delete", "#2")
	out = mustRun(t, "stats")
	if !strings.Contains(out, "completion:         100%") {
		t.Fatalf("expected 100%% completion: %q", out)
	}
}

func TestUnlocksAnnouncedOnce(t *testing.T) {
	setupEnv(t)
	out := mustRun(t, "add", "first")
	if !strings.Contains(out, "achievement unlocked") {
		t.Fatalf("expected unlock: %q", out)
	}
	out = mustRun(t, "add", "second")
	if strings.Contains(out, "Quantum Leap") {
		t.Fatalf("first_task announced twice: %q", out)
	}
}

func TestExcuseAndClear(t *testing.T) {
	setupEnv(t)
	mustRun(t, "add", "procrastinate")
	mustRun(t, "add", "finish")
	mustRun(t, "toggle", "2")

	out := mustRun(t, "excuse", "1")
	if !strings.Contains(out, "#1: ") {
		t.Fatalf("unexpected excuse output: %q", out)
	}
	out = mustRun(t, "list")
	if !strings.Contains(out, "entangled") {
		t.Fatalf("excused open task should be entangled: %q", out)
	}

	out = mustRun(t, "clear")
	if !strings.Contains(out, "cleared 1 task(s)") {
		t.Fatalf("unexpected clear output: %q", out)
	}
	out = mustRun(t, "clear", "--all")
	if !strings.Contains(out, "cleared 1 task(s)") {
		t.Fatalf("unexpected clear --all output: %q", out)
	}
	out = mustRun(t, "list")
	if !strings.Contains(out, "no tasks") {
		t.Fatalf("expected empty list: %q", out)
	}
}

func TestTargetCommandErrors(t *testing.T) {
	setupEnv(t)
	if _, err := run(t, "toggle", "9"); err == nil || !strings.Contains(err.Error(), "no task #9") {
		t.Fatalf("expected missing task error, got %v", err)
	}
	if _, err := run(t, "delete", "abc"); err == nil {
		t.Fatal("expected invalid id error")
	}
	if _, err := run(t, "add", "   "); err == nil {
		t.Fatal("expected blank text error")
	}
}

func TestHoroscopeIsDeterministic(t *testing.T) {
	setupEnv(t)
	first := mustRun(t, "horoscope")
	second := mustRun(t, "horoscope")
	if first != second || !strings.Contains(first, "moon:") {
		t.Fatalf("horoscope not stable:\n%s\n%s", first, second)
	}
}

func TestListPagingAndOpenFilter(t *testing.T) {
	setupEnv(t)
	for _, text := range []string{"one", "two", "three", "four"} {
		mustRun(t, "add", text)
	}
	mustRun(t, "toggle", "2")

	out := mustRun(t, "list", "--open", "--limit", "2")
	if !strings.Contains(out, "#1 one") || !strings.Contains(out, "#3 three") {
		t.Fatalf("expected first two open tasks: %q", out)
	}
	if strings.Contains(out, "#2 two") || strings.Contains(out, "#4 four") {
		t.Fatalf("unexpected tasks on page: %q", out)
	}

	out = mustRun(t, "list", "--offset", "3")
	if !strings.Contains(out, "#4 four") || strings.Contains(out, "#3 three") {
		t.Fatalf("unexpected offset page: %q", out)
	}

	if _, err := run(t, "list", "--limit=-1"); err == nil {
		t.Fatal("expected negative limit to fail")
	}
}

func TestMotivateIsSeeded(t *testing.T) {
	setupEnv(t)
	first := mustRun(t, "motivate")
	second := mustRun(t, "motivate")
	if strings.TrimSpace(first) == "" || first != second {
		t.Fatalf("motivate not stable under a fixed seed:\n%s\n%s", first, second)
	}
}

func TestExportYAML(t *testing.T) {
	setupEnv(t)
	mustRun(t, "add", "export me")
	mustRun(t, "toggle", "1")

	out := mustRun(t, "export")
	var doc exportDocument
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("export is not yaml: %v\n%s", err, out)
	}
	if len(doc.Tasks) != 1 || doc.Tasks[0].Text != "export me" || !doc.Tasks[0].Completed {
		t.Fatalf("unexpected exported tasks: %+v", doc.Tasks)
	}
	if doc.Tasks[0].CompletedAt == nil || doc.Tasks[0].QuantumState != "collapsed" {
		t.Fatalf("completion not exported: %+v", doc.Tasks[0])
	}
	if doc.Productivity.CompletionRate != 100 || doc.Level.TotalPoints == 0 {
		t.Fatalf("unexpected stats: %+v %+v", doc.Productivity, doc.Level)
	}
	if len(doc.Achievements) == 0 {
		t.Fatal("expected unlocked achievements in export")
	}
}

func TestInMemoryConfigKeepsNothing(t *testing.T) {
	setupEnv(t)
	t.Setenv("QTODO_IN_MEMORY", "true")
	mustRun(t, "add", "ephemeral")
	out := mustRun(t, "list")
	if !strings.Contains(out, "no tasks") {
		t.Fatalf("in-memory run should not persist: %q", out)
	}
}
