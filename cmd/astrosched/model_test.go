package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/benjamonnguyen/astrosched"
	"github.com/benjamonnguyen/astrosched/notify"
	"github.com/benjamonnguyen/astrosched/schedule"
)

func newTestModel() model {
	m := schedule.New()
	c := &notify.Collector{}
	m.Subscribe(c.Listen)
	return newModel(astrosched.NopLogger{}, m, c, astrosched.TimeLayout)
}

func enter(t *testing.T, md model, input string) (model, tea.Cmd) {
	t.Helper()
	md.userinput.SetValue(input)
	res, cmd := md.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next, ok := res.(model)
	if !ok {
		t.Fatalf("unexpected model type %T", res)
	}
	return next, cmd
}

func alertsContain(md model, s string) bool {
	for _, a := range md.alerts {
		if strings.Contains(a, s) {
			return true
		}
	}
	return false
}

func TestModelSession(t *testing.T) {
	md := newTestModel()
	if !strings.Contains(md.renderSchedule(), "No tasks scheduled for the day.") {
		t.Fatalf("expected empty schedule, got %q", md.renderSchedule())
	}

	md, _ = enter(t, md, "/a 09:00 09:30 MEDIUM Morning Check")
	if !alertsContain(md, "Notification: Task added successfully: Morning Check") {
		t.Fatalf("missing add notification in %q", md.alerts)
	}

	md, _ = enter(t, md, "/a 09:15 10:00 HIGH Spacewalk")
	if !alertsContain(md, "Notification: Conflict detected: Task conflicts with an existing task.") {
		t.Fatalf("missing conflict notification in %q", md.alerts)
	}
	if !alertsContain(md, "Error: ") {
		t.Fatalf("missing conflict error in %q", md.alerts)
	}

	md, _ = enter(t, md, "/a 12:00 12:30 LOW Lunch")
	md, _ = enter(t, md, "/a 07:00 07:30 HIGH Exercise")

	got := md.renderSchedule()
	exercise := strings.Index(got, "Exercise")
	check := strings.Index(got, "Morning Check")
	lunch := strings.Index(got, "Lunch")
	if exercise < 0 || !(exercise < check && check < lunch) {
		t.Fatalf("schedule not sorted by start time:\n%s", got)
	}
	if strings.Contains(got, "Spacewalk") {
		t.Fatalf("conflicting task rendered:\n%s", got)
	}

	md, _ = enter(t, md, "/p high")
	got = md.renderSchedule()
	if !strings.Contains(got, "Exercise") || strings.Contains(got, "Lunch") {
		t.Fatalf("unexpected filtered schedule:\n%s", got)
	}
	md, _ = enter(t, md, "/p")
	if md.filter != nil {
		t.Fatal("expected filter to be cleared")
	}

	md, _ = enter(t, md, "/c Lunch")
	if !alertsContain(md, "Task marked as completed: Lunch") {
		t.Fatalf("missing completion notification in %q", md.alerts)
	}
	if !strings.Contains(md.renderSchedule(), "(Completed)") {
		t.Fatalf("completed task not marked:\n%s", md.renderSchedule())
	}

	md, _ = enter(t, md, "/e Lunch | 12:00 13:00 LOW Long Lunch")
	if !alertsContain(md, astrosched.ErrTaskCompleted.Error()) {
		t.Fatalf("expected completed task edit to be refused, got %q", md.alerts)
	}

	md, _ = enter(t, md, "/e Exercise | 06:00 06:45 HIGH Early Exercise")
	if !alertsContain(md, "Task edited: Exercise -> Early Exercise") {
		t.Fatalf("missing edit notification in %q", md.alerts)
	}

	md, _ = enter(t, md, "/x Morning Check")
	if !alertsContain(md, "Task removed: Morning Check") {
		t.Fatalf("missing remove notification in %q", md.alerts)
	}
	md, _ = enter(t, md, "/x Morning Check")
	if !alertsContain(md, "Error: "+astrosched.ErrTaskNotFound.Error()) {
		t.Fatalf("expected not found error, got %q", md.alerts)
	}

	if got := md.manager.Len(); got != 2 {
		t.Fatalf("expected 2 tasks, got %d", got)
	}
}

func TestModelFilterWithoutMatches(t *testing.T) {
	md := newTestModel()
	md, _ = enter(t, md, "/a 09:00 09:30 LOW Stretch")
	md, _ = enter(t, md, "/p MEDIUM")
	if !strings.Contains(md.renderSchedule(), "No tasks with priority: MEDIUM") {
		t.Fatalf("unexpected schedule:\n%s", md.renderSchedule())
	}
}

func TestModelRejectsBadInput(t *testing.T) {
	tests := []struct {
		input string
		alert string
	}{
		{"hello", "unknown input"},
		{"/z", "unknown command"},
		{"/a 09:00", "usage"},
		{"/a 10:00 09:00 LOW Backwards", astrosched.ErrInvalidInterval.Error()},
		{"/p URGENT", astrosched.ErrUnknownPriority.Error()},
		{"/x", "usage: /x"},
		{"/c", "usage: /c"},
		{"/h", "COMMANDS"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			md, _ := enter(t, newTestModel(), tt.input)
			if !alertsContain(md, tt.alert) {
				t.Fatalf("expected alert containing %q, got %q", tt.alert, md.alerts)
			}
			if md.manager.Len() != 0 {
				t.Fatal("schedule changed on bad input")
			}
		})
	}
}

func TestModelQuit(t *testing.T) {
	md := newTestModel()

	_, cmd := md.handleInput("/q")
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(EndProgramMsg); !ok {
		t.Fatal("expected EndProgramMsg")
	}

	next, cmd := md.updateParent(EndProgramMsg{})
	if !next.quitting {
		t.Fatal("expected model to be quitting")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
	if next.renderFooter() != "" {
		t.Fatal("expected empty footer when quitting")
	}

	next, _ = md.updateParent(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.quitting {
		t.Fatal("expected ctrl+c to quit")
	}
}
