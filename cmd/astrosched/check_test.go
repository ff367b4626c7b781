package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/benjamonnguyen/astrosched"
	"github.com/benjamonnguyen/astrosched/schedule"
)

func TestRunCheck(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	plan := `tasks:
  - {description: Morning Check, start: "09:00", end: "09:30", priority: MEDIUM}
  - {description: Spacewalk, start: "09:15", end: "10:00", priority: HIGH}
  - {description: Lunch, start: "12:00", end: "12:30", priority: LOW}
`
	if err := afero.WriteFile(fs, "plan.yaml", []byte(plan), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	m := schedule.New()
	rejected, err := runCheck(&buf, fs, "plan.yaml", m, astrosched.TimeLayout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejected != 1 {
		t.Fatalf("expected 1 rejection, got %d", rejected)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 tasks, got %d", m.Len())
	}

	out := buf.String()
	for _, want := range []string{
		"Notification: Task added successfully: Morning Check",
		"Notification: Conflict detected: Task conflicts with an existing task.",
		"Notification: Task added successfully: Lunch",
		"Error: ",
		header,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunCheckClean(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	plan := "tasks:\n  - {description: Lunch, start: \"12:00\", end: \"12:30\", priority: LOW}\n"
	if err := afero.WriteFile(fs, "plan.yaml", []byte(plan), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	rejected, err := runCheck(&buf, fs, "plan.yaml", schedule.New(), "3:04PM")
	if err != nil || rejected != 0 {
		t.Fatalf("rejected=%d err=%v", rejected, err)
	}
	if !strings.Contains(buf.String(), "12:00PM") {
		t.Fatalf("expected configured time format in output:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "no conflicts") {
		t.Fatalf("expected summary in output:\n%s", buf.String())
	}
}

func TestRunCheckMissingPlan(t *testing.T) {
	t.Parallel()
	if _, err := runCheck(&bytes.Buffer{}, afero.NewMemMapFs(), "missing.yaml", schedule.New(), ""); err == nil {
		t.Fatal("expected error for missing plan")
	}
}
