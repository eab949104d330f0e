package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zulandar/greenlight/internal/models"
	"github.com/zulandar/greenlight/internal/store"
)

// runGL executes one gl invocation against a shared config.
func runGL(t *testing.T, cfgPath string, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append(args, "--config", cfgPath))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("gl %s: %v\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

// idFromOutput pulls the first token with the given prefix out of
// command output.
func idFromOutput(t *testing.T, out, prefix string) string {
	t.Helper()
	for _, field := range strings.Fields(out) {
		if strings.HasPrefix(field, prefix+"-") {
			return field
		}
	}
	t.Fatalf("no %s- ID in output:\n%s", prefix, out)
	return ""
}

func TestEndToEndWorkflow(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeSQLiteConfig(t, dir)

	runGL(t, cfgPath, "db", "init")

	out := runGL(t, cfgPath, "project", "add", "Acme Portal", "--type", "web_app")
	projectID := idFromOutput(t, out, "prj")

	out = runGL(t, cfgPath, "checklist", "add",
		"--project", projectID,
		"--template", "web-app-launch",
		"--assign", "repo-setup=alice",
		"--assign", "auth-review=team:security")
	instID := idFromOutput(t, out, "chk")
	if !strings.Contains(out, "12 items (8 required)") {
		t.Errorf("checklist add output = %q", out)
	}

	out = runGL(t, cfgPath, "generate", "--project", projectID)
	if !strings.Contains(out, "12 stories") {
		t.Errorf("generate output = %q", out)
	}
	if strings.Contains(out, "warning:") {
		t.Errorf("unexpected warnings: %q", out)
	}

	// Re-running generation is a no-op.
	out = runGL(t, cfgPath, "generate", "--project", projectID)
	if !strings.Contains(out, "Generated 0 epics, 0 stories, 0 tasks") {
		t.Errorf("second generate output = %q", out)
	}

	// Check an item through the CLI and watch the linked task close.
	// Pick one that has a linked task (shown with a "->" marker).
	show := runGL(t, cfgPath, "checklist", "show", instID)
	var itemID string
	for _, line := range strings.Split(show, "\n") {
		if strings.Contains(line, "-> tsk-") {
			itemID = idFromOutput(t, line, "itm")
			break
		}
	}
	if itemID == "" {
		t.Fatalf("no linked item in show output:\n%s", show)
	}
	out = runGL(t, cfgPath, "checklist", "check", itemID, "--by", "alice")
	if !strings.Contains(out, "[x]") {
		t.Errorf("check output = %q", out)
	}
	if !strings.Contains(out, "Linked task") || !strings.Contains(out, "done") {
		t.Errorf("check should report the synced task: %q", out)
	}

	// Un-check: item reverts, task stays done.
	out = runGL(t, cfgPath, "checklist", "uncheck", itemID)
	if !strings.Contains(out, "[ ]") {
		t.Errorf("uncheck output = %q", out)
	}
	if !strings.Contains(out, "done") {
		t.Errorf("linked task should stay done after un-check: %q", out)
	}

	// Drive the other direction: task update syncs the item.
	taskList := runGL(t, cfgPath, "task", "list", "--project", projectID)
	taskID := idFromOutput(t, taskList, "tsk")
	runGL(t, cfgPath, "task", "update", taskID, "--status", "in_progress")

	out = runGL(t, cfgPath, "status", projectID)
	if !strings.Contains(out, "Acme Portal") {
		t.Errorf("status output = %q", out)
	}

	// Sanity-check the persisted state directly.
	cfg, gormDB, err := openDB(cfgPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if cfg.Org != "test" {
		t.Errorf("org = %q", cfg.Org)
	}
	epics, err := store.EpicsForProject(gormDB, projectID)
	if err != nil {
		t.Fatalf("epics: %v", err)
	}
	// web-app-launch covers 6 categories.
	if len(epics) != 6 {
		t.Errorf("epics = %d, want 6", len(epics))
	}

	instances, err := store.InstancesForProject(gormDB, projectID)
	if err != nil {
		t.Fatalf("instances: %v", err)
	}
	if len(instances) != 1 || instances[0].Status != models.InstanceNotStarted {
		t.Errorf("instances = %+v", instances)
	}
}

func TestChecklistAdd_DuplicateRejected(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeSQLiteConfig(t, dir)
	runGL(t, cfgPath, "db", "init")

	out := runGL(t, cfgPath, "project", "add", "Portal")
	projectID := idFromOutput(t, out, "prj")
	runGL(t, cfgPath, "checklist", "add", "--project", projectID, "--template", "client-onboarding")

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"checklist", "add", "--project", projectID,
		"--template", "client-onboarding", "--config", cfgPath})
	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected duplicate instantiation to fail")
	}
	if !strings.Contains(err.Error(), "already instantiated") {
		t.Errorf("error = %v", err)
	}
}

func TestTaskUpdate_InvalidStatus(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeSQLiteConfig(t, dir)

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"task", "update", "tsk-1", "--status", "blocked", "--config", cfgPath})
	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for invalid status")
	}
	if !strings.Contains(err.Error(), "invalid status") {
		t.Errorf("error = %v", err)
	}
}
