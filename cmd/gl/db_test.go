package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zulandar/greenlight/internal/config"
)

func writeTestFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

// writeSQLiteConfig writes a config pointing at a sqlite file in dir and
// returns the config path.
func writeSQLiteConfig(t *testing.T, dir string) string {
	t.Helper()
	cfgPath := filepath.Join(dir, "greenlight.yaml")
	content := "org: test\ndb:\n  driver: sqlite\n  path: " + filepath.Join(dir, "gl.db") + "\n"
	if err := writeTestFile(cfgPath, content); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

func TestDBCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"db", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("db --help failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Database management") {
		t.Errorf("expected help to mention 'Database management', got: %s", out)
	}
	if !strings.Contains(out, "init") || !strings.Contains(out, "reset") {
		t.Errorf("expected help to list init and reset, got: %s", out)
	}
}

func TestDBInitCmd_MissingConfig(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"db", "init", "--config", "/nonexistent/greenlight.yaml"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "load config") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "load config")
	}
}

func TestDBInitCmd_SQLite(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeSQLiteConfig(t, dir)

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"db", "init", "--config", cfgPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("db init failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Migrated 6 tables") {
		t.Errorf("expected migration summary, got: %s", out)
	}
	if !strings.Contains(out, "initialized successfully") {
		t.Errorf("expected success message, got: %s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "gl.db")); err != nil {
		t.Errorf("sqlite file not created: %v", err)
	}
}

func TestDBResetCmd_DeclinedConfirmation(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeSQLiteConfig(t, dir)

	// Initialize first so reset has tables to consider.
	initCmd := newRootCmd()
	initCmd.SetOut(new(bytes.Buffer))
	initCmd.SetArgs([]string{"db", "init", "--config", cfgPath})
	if err := initCmd.Execute(); err != nil {
		t.Fatalf("db init: %v", err)
	}

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader("no\n"))
	cmd.SetArgs([]string{"db", "reset", "--config", cfgPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("db reset: %v", err)
	}
	if !strings.Contains(buf.String(), "Aborted") {
		t.Errorf("expected abort message, got: %s", buf.String())
	}
}

func TestDBResetCmd_SkipConfirmation(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeSQLiteConfig(t, dir)

	initCmd := newRootCmd()
	initCmd.SetOut(new(bytes.Buffer))
	initCmd.SetArgs([]string{"db", "init", "--config", cfgPath})
	if err := initCmd.Execute(); err != nil {
		t.Fatalf("db init: %v", err)
	}

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"db", "reset", "--yes", "--config", cfgPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("db reset --yes: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Dropped 6 tables") || !strings.Contains(out, "Re-created 6 tables") {
		t.Errorf("expected drop and re-create summary, got: %s", out)
	}
}

func TestDBName(t *testing.T) {
	sqliteCfg := &config.Config{}
	sqliteCfg.DB.Driver = "sqlite"
	sqliteCfg.DB.Path = "gl.db"
	if got := dbName(sqliteCfg); got != "gl.db" {
		t.Errorf("dbName sqlite = %q", got)
	}

	mysqlCfg := &config.Config{}
	mysqlCfg.DB.Driver = "mysql"
	mysqlCfg.DB.Database = "greenlight_acme"
	if got := dbName(mysqlCfg); got != "greenlight_acme" {
		t.Errorf("dbName mysql = %q", got)
	}
}
