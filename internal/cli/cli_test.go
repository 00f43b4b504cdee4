package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tacogips/tmplstore/internal/template/model"
	"github.com/tacogips/tmplstore/internal/template/store"
)

type testEnv struct {
	dir    string
	state  string
	config string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	e := &testEnv{dir: dir, state: filepath.Join(dir, "state.json")}
	e.config = e.write(t, "config.json", "{}")
	return e
}

func (e *testEnv) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// execute runs the command tree against the test state file with an empty
// environment and an empty config file.
func (e *testEnv) execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	opts := &globalOptions{env: map[string]string{}}
	cmd := newRootCmd(opts)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{
		"--no-color",
		"--config", e.config,
		"--state", e.state,
	}, args...))

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func (e *testEnv) mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, _, err := e.execute(t, args...)
	if err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
	return out
}

func (e *testEnv) loadState(t *testing.T) store.State {
	t.Helper()
	data, err := os.ReadFile(e.state)
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	var st store.State
	if err := json.Unmarshal(data, &st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return st
}

const catalog = `{"templates": [
  {"id": "1", "meta": {"name": "cpu", "type": "dashboard", "version": "1"}, "labels": ["sys"], "status": "Done"},
  {"id": "2", "meta": {"name": "mem", "type": "dashboard", "version": "1"}, "labels": [], "status": "Done"}
]}`

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ValidateFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    model.RemoteDataState
		wantErr bool
	}{
		{"Done", model.Done, false},
		{"loading", model.Loading, false},
		{"not-started", model.NotStarted, false},
		{"error", model.Error, false},
		{"later", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ValidateStatus(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStateInitAndShow(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustExecute(t, "state", "init")
	if !strings.Contains(out, "State file ready") {
		t.Errorf("unexpected init output: %s", out)
	}
	if st := env.loadState(t); st.Status != model.NotStarted || st.Len() != 0 {
		t.Errorf("unexpected initial state %+v", st)
	}

	out = env.mustExecute(t, "state", "show")
	var shown map[string]any
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("state show is not JSON: %v\n%s", err, out)
	}
	if shown["status"] != "NotStarted" {
		t.Errorf("status = %v", shown["status"])
	}

	out = env.mustExecute(t, "state", "show", "--format", "yaml")
	if !strings.Contains(out, "status: NotStarted") {
		t.Errorf("unexpected YAML output:\n%s", out)
	}

	if _, _, err := env.execute(t, "state", "show", "--format", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestTemplateWorkflow(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustExecute(t, "template", "populate", env.write(t, "catalog.json", catalog))
	if !strings.Contains(out, "Loaded 2 templates") {
		t.Errorf("unexpected populate output: %s", out)
	}

	out = env.mustExecute(t, "template", "list")
	for _, want := range []string{"Status: Done", "ID", "cpu", "mem", "sys"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	env.mustExecute(t, "template", "add", env.write(t, "three.json",
		`{"id": "3", "meta": {"name": "disk"}, "labels": [], "status": "Done"}`))
	if st := env.loadState(t); len(st.AllIDs) != 3 {
		t.Errorf("AllIDs = %v, want 3 ids", st.AllIDs)
	}

	env.mustExecute(t, "template", "remove", "2")
	st := env.loadState(t)
	if strings.Join(st.AllIDs, ",") != "1,3" {
		t.Errorf("AllIDs = %v, want [1 3]", st.AllIDs)
	}
	if _, _, err := env.execute(t, "template", "remove", "2"); err == nil {
		t.Error("removing a missing template should fail")
	}

	env.mustExecute(t, "template", "set", "1", env.write(t, "one.json",
		`{"id": "1", "meta": {"name": "cpu-v2"}, "labels": [], "status": "Done"}`), "--status", "loading")
	st = env.loadState(t)
	if st.ByID["1"].Meta.Name != "cpu-v2" || st.Status != model.Loading {
		t.Errorf("unexpected state after set: %+v", st)
	}

	env.mustExecute(t, "template", "status", "done")
	if st := env.loadState(t); st.Status != model.Done {
		t.Errorf("Status = %s, want Done", st.Status)
	}
	if _, _, err := env.execute(t, "template", "status", "later"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestTemplatePopulateFailureRecordsError(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.execute(t, "template", "populate", filepath.Join(env.dir, "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing payload")
	}
	if st := env.loadState(t); st.Status != model.Error {
		t.Errorf("Status = %s, want Error", st.Status)
	}
}

func TestTemplateExport(t *testing.T) {
	env := newTestEnv(t)
	env.mustExecute(t, "template", "populate", env.write(t, "catalog.json", catalog))

	out := env.mustExecute(t, "template", "export", "2")
	var export model.ExportTemplate
	if err := json.Unmarshal([]byte(out), &export); err != nil {
		t.Fatalf("export output is not JSON: %v\n%s", err, out)
	}
	if export.Status != model.Done || export.Item == nil || export.Item.Meta.Name != "mem" {
		t.Errorf("unexpected export %+v", export)
	}

	if _, _, err := env.execute(t, "template", "export", "9"); err == nil {
		t.Error("expected error for unknown template")
	}
	if st := env.loadState(t); st.ExportTemplate.Status != model.Error {
		t.Errorf("failed export status = %s, want Error", st.ExportTemplate.Status)
	}
}

func TestInstallWorkflow(t *testing.T) {
	env := newTestEnv(t)
	loc := env.write(t, "community.json", `{
  "template": {"kind": "Dashboard"},
  "summary": {"dashboards": [
    {"dashboards": {"templateMetaName": "cpu"}},
    {"dashboards": {"templateMetaName": "mem", "shouldInstall": false}}
  ]}
}`)

	out := env.mustExecute(t, "install", "stage", loc)
	if !strings.Contains(out, "2 dashboards") {
		t.Errorf("unexpected stage output: %s", out)
	}
	st := env.loadState(t)
	if st.StagedTemplateURL != loc {
		t.Errorf("StagedTemplateURL = %s", st.StagedTemplateURL)
	}
	for _, d := range st.CommunityTemplateToInstall.Summary.Dashboards {
		if !d.ShouldInstall {
			t.Errorf("dashboard %s should be installed after staging", d.MetaName())
		}
	}

	env.mustExecute(t, "install", "toggle", "mem", "--install=false")
	if env.loadState(t).CommunityTemplateToInstall.Summary.Dashboards[1].ShouldInstall {
		t.Error("mem should be excluded after toggle")
	}

	out = env.mustExecute(t, "install", "show")
	for _, want := range []string{"Staged from", "cpu", "mem", "false"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}

	if _, _, err := env.execute(t, "install", "toggle", "disk"); err == nil {
		t.Error("expected error for unknown dashboard")
	}
}

func TestStackWorkflow(t *testing.T) {
	env := newTestEnv(t)

	env.mustExecute(t, "stack", "set", env.write(t, "stacks.json",
		`{"stacks": [{"id": "s1", "name": "one"}, {"id": "s2", "name": "two"}]}`))
	out := env.mustExecute(t, "stack", "list")
	if !strings.Contains(out, "s1") || !strings.Contains(out, "two") {
		t.Errorf("unexpected list output:\n%s", out)
	}

	env.mustExecute(t, "stack", "remove", "s1")
	st := env.loadState(t)
	if len(st.Stacks) != 1 || st.Stacks[0].ID != "s2" {
		t.Errorf("Stacks = %+v, want [s2]", st.Stacks)
	}
}

func TestStateReset(t *testing.T) {
	env := newTestEnv(t)
	env.mustExecute(t, "template", "populate", env.write(t, "catalog.json", catalog))

	env.mustExecute(t, "state", "reset", "--yes")
	if st := env.loadState(t); st.Len() != 0 || st.Status != model.NotStarted {
		t.Errorf("state not reset: %+v", st)
	}
}

func stubPrompts(t *testing.T, confirm func(string) (bool, error), dashboards func(model.CommunityTemplateToInstall) ([]string, error)) {
	t.Helper()
	origConfirm, origDashboards := promptConfirm, promptDashboards
	t.Cleanup(func() {
		promptConfirm, promptDashboards = origConfirm, origDashboards
	})
	if confirm != nil {
		promptConfirm = confirm
	}
	if dashboards != nil {
		promptDashboards = dashboards
	}
}

func TestStateResetConfirmation(t *testing.T) {
	env := newTestEnv(t)
	env.mustExecute(t, "template", "populate", env.write(t, "catalog.json", catalog))

	stubPrompts(t, func(string) (bool, error) { return false, nil }, nil)
	out := env.mustExecute(t, "state", "reset")
	if !strings.Contains(out, "Reset cancelled") {
		t.Errorf("unexpected output: %s", out)
	}
	if st := env.loadState(t); st.Len() != 2 {
		t.Errorf("declined reset changed the state: %+v", st)
	}

	stubPrompts(t, func(string) (bool, error) { return true, nil }, nil)
	env.mustExecute(t, "state", "reset")
	if st := env.loadState(t); st.Len() != 0 {
		t.Errorf("confirmed reset kept %d templates", st.Len())
	}
}

func TestInstallStageSelect(t *testing.T) {
	env := newTestEnv(t)
	loc := env.write(t, "community.json", `{
  "template": {},
  "summary": {"dashboards": [
    {"dashboards": {"templateMetaName": "cpu"}},
    {"dashboards": {"templateMetaName": "mem"}},
    {"dashboards": {}}
  ]}
}`)

	var offered []string
	stubPrompts(t, nil, func(staged model.CommunityTemplateToInstall) ([]string, error) {
		for _, d := range staged.Summary.Dashboards {
			offered = append(offered, d.MetaName())
		}
		return []string{"mem"}, nil
	})

	env.mustExecute(t, "install", "stage", loc, "--select")

	dashboards := env.loadState(t).CommunityTemplateToInstall.Summary.Dashboards
	if len(offered) != 3 {
		t.Errorf("prompt received %v", offered)
	}
	want := []bool{false, true, true}
	for i, d := range dashboards {
		if d.ShouldInstall != want[i] {
			t.Errorf("dashboard %d ShouldInstall = %v, want %v", i, d.ShouldInstall, want[i])
		}
	}
}

func TestInstallChoices(t *testing.T) {
	staged := model.CommunityTemplateToInstall{Summary: model.InstallSummary{Dashboards: []model.DashboardInstall{
		{Dashboards: map[string]any{"templateMetaName": "a"}, ShouldInstall: true},
		{Dashboards: map[string]any{"templateMetaName": "b"}, ShouldInstall: true},
		{Dashboards: map[string]any{}, ShouldInstall: true},
	}}}

	got := installChoices(staged, []string{"b"})
	if len(got) != 2 || got["a"] || !got["b"] {
		t.Errorf("installChoices() = %v", got)
	}
}

func TestQuietSuppressesMessages(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustExecute(t, "--quiet", "template", "populate", env.write(t, "catalog.json", catalog))
	if out != "" {
		t.Errorf("quiet output = %q, want empty", out)
	}

	out = env.mustExecute(t, "--quiet", "state", "show")
	if !strings.Contains(out, `"allIDs"`) {
		t.Error("structured output should not be suppressed by --quiet")
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	opts := &globalOptions{env: map[string]string{}}
	cmd := newRootCmd(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.json"), "state", "show"})

	// an explicit --config path is loaded strictly
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustExecute(t, "version", "--short")
	if strings.TrimSpace(out) == "" {
		t.Error("version --short printed nothing")
	}

	out = env.mustExecute(t, "version", "--json")
	var info VersionInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("version --json is not JSON: %v", err)
	}
	if info.Version == "" || info.GoVersion == "" {
		t.Errorf("incomplete version info %+v", info)
	}
}

func TestRunReportsErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--no-color", "template", "status"}, &stdout, &stderr)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Error:") {
		t.Errorf("stderr = %q, want an error message", stderr.String())
	}
}
