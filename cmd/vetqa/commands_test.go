package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_ImportStatsExportClear(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "cli.db")
	bank := filepath.Join(dir, "bank.json")
	doc := `{"items": [
	  {"id": "c1", "stem": "S", "options": [{"label": "A", "text": "a"}], "answer_key": "A"},
	  {"id": "c2", "stem": "S", "options": [], "answer_key": "A"}
	]}`
	if err := os.WriteFile(bank, []byte(doc), 0o644); err != nil {
		t.Fatalf("failed to write bank: %v", err)
	}
	flags := []string{"--driver", "sqlite", "--dsn", dsn}

	out, err := run(t, append([]string{"import", bank}, flags...)...)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	var res struct {
		Inserted int `json:"inserted"`
		Skipped  int `json:"skipped"`
	}
	json.Unmarshal([]byte(out), &res)
	if res.Inserted != 1 || res.Skipped != 1 {
		t.Errorf("expected 1 inserted and 1 skipped, got %s", out)
	}

	out, err = run(t, append([]string{"stats"}, flags...)...)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(out, `"total": 0`) {
		t.Errorf("expected zero totals, got %s", out)
	}

	out, err = run(t, append([]string{"export"}, flags...)...)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, `"id": "c1"`) {
		t.Errorf("expected c1 in export, got %s", out)
	}

	if _, err := run(t, append([]string{"clear"}, flags...)...); err == nil {
		t.Error("expected clear without --yes to fail")
	}
	if _, err := run(t, append([]string{"clear", "--yes"}, flags...)...); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	out, _ = run(t, append([]string{"export"}, flags...)...)
	if !strings.Contains(out, `"items": []`) {
		t.Errorf("expected no items after clear, got %s", out)
	}
}
