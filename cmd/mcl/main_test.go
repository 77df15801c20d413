package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	lmsPath    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		lmsPath:    filepath.Join(base, "lms.db"),
	}

	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[lms]
database = %q
`, filepath.Join(base, "data"), filepath.Join(base, "logs"), env.lmsPath)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return env
}

func (env *cliTestEnv) writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(env.baseDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output missing %q:\n%s", want, output)
	}
}

const testCSV = `Four Digit,Previous Edition,Course (Shaded by author),CPA
1234,2024,Estate Planning Essentials,12.5
5678,2025,Tax Updates,8
`

func TestImportAndListCourses(t *testing.T) {
	env := setupCLITestEnv(t)
	csvPath := env.writeCSV(t, "courses.csv", testCSV)

	out, err := runCLI(t, env, "import", csvPath)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	requireContains(t, out, "Imported: 2")
	requireContains(t, out, "Skipped: 0")

	out, err = runCLI(t, env, "courses")
	if err != nil {
		t.Fatalf("courses: %v\n%s", err, out)
	}
	requireContains(t, out, "Estate Planning Essentials")
	requireContains(t, out, "CPA 12.5")
	requireContains(t, out, "2 courses (0 matched, 2 unmatched)")

	out, err = runCLI(t, env, "courses", "--search", "tax")
	if err != nil {
		t.Fatalf("courses --search: %v\n%s", err, out)
	}
	requireContains(t, out, "Tax Updates")
	if strings.Contains(out, "Estate Planning Essentials") {
		t.Fatalf("search filter leaked unrelated course:\n%s", out)
	}
}

func TestShowAndHistoryAfterReimport(t *testing.T) {
	env := setupCLITestEnv(t)
	csvPath := env.writeCSV(t, "courses.csv", testCSV)

	if out, err := runCLI(t, env, "import", csvPath); err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}

	changedPath := env.writeCSV(t, "changed.csv", strings.Replace(testCSV, "12.5", "15", 1))
	out, err := runCLI(t, env, "import", changedPath, "--actor", "reviewer")
	if err != nil {
		t.Fatalf("re-import: %v\n%s", err, out)
	}
	requireContains(t, out, "Updated: 2")

	out, err = runCLI(t, env, "show", "1")
	if err != nil {
		t.Fatalf("show: %v\n%s", err, out)
	}
	requireContains(t, out, "Estate Planning Essentials")
	requireContains(t, out, "15")

	out, err = runCLI(t, env, "history", "1")
	if err != nil {
		t.Fatalf("history: %v\n%s", err, out)
	}
	requireContains(t, out, "cpa_credits")
	requireContains(t, out, "reviewer")
	requireContains(t, out, "1 changes for 1234/2024")
}

func TestEditRecordsManualHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	csvPath := env.writeCSV(t, "courses.csv", testCSV)

	if out, err := runCLI(t, env, "import", csvPath); err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}

	out, err := runCLI(t, env, "edit", "1",
		"--set", "cpa_credits=16",
		"--set", "notes=second printing",
		"--actor", "editor")
	if err != nil {
		t.Fatalf("edit: %v\n%s", err, out)
	}
	requireContains(t, out, "Updated 2 fields for 1234/2024")

	out, err = runCLI(t, env, "show", "1")
	if err != nil {
		t.Fatalf("show: %v\n%s", err, out)
	}
	requireContains(t, out, "16")
	requireContains(t, out, "second printing")

	out, err = runCLI(t, env, "history", "1", "--field", "cpa_credits")
	if err != nil {
		t.Fatalf("history: %v\n%s", err, out)
	}
	requireContains(t, out, "manual-update")
	requireContains(t, out, "editor")

	out, err = runCLI(t, env, "edit", "1", "--set", "cpa_credits=16")
	if err != nil {
		t.Fatalf("idempotent edit: %v\n%s", err, out)
	}
	requireContains(t, out, "No changes for 1234/2024")

	if _, err := runCLI(t, env, "edit", "1", "--set", "bogus=1"); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if _, err := runCLI(t, env, "edit", "1"); err == nil {
		t.Fatal("expected error when no assignments are given")
	}
}

func TestConfigInit(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(env.baseDir, "generated", "config.toml")
	out, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, out)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when target already exists")
	}
}

func TestParseID(t *testing.T) {
	if _, err := parseID("abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
	if _, err := parseID("-4"); err == nil {
		t.Fatal("expected error for negative id")
	}
	id, err := parseID(" 12 ")
	if err != nil || id != 12 {
		t.Fatalf("parseID = %d, %v", id, err)
	}
}
