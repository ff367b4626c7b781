package astrosched

import (
	"cmp"
	"fmt"
	"strings"
)

// Task is one scheduled activity of the day. Tasks are values: the schedule
// manager keeps its own copies and hands out copies.
type Task struct {
	Description string
	Start       TimeOfDay
	End         TimeOfDay
	Priority    Priority
	Completed   bool
}

type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

var priorityNames = [...]string{
	PriorityLow:    "LOW",
	PriorityMedium: "MEDIUM",
	PriorityHigh:   "HIGH",
}

// Priorities lists every priority from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

func (p Priority) String() string {
	if p < PriorityLow || p > PriorityHigh {
		return fmt.Sprintf("Priority(%d)", int(p))
	}
	return priorityNames[p]
}

// ParsePriority maps "low", "Medium", "HIGH", ... to a Priority.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for p, name := range priorityNames {
		if name == s {
			return Priority(p), nil
		}
	}
	return 0, fmt.Errorf("%w: %q: use LOW, MEDIUM or HIGH: %w", ErrUnknownPriority, s, ErrInvalidTask)
}

// NewTask creates a pending task. The interval is not validated.
func NewTask(description string, start, end TimeOfDay, priority Priority) Task {
	return Task{
		Description: description,
		Start:       start,
		End:         end,
		Priority:    priority,
	}
}

// Conflicts reports whether the intervals of t and other strictly overlap.
// Tasks that only touch at an endpoint do not conflict.
func (t Task) Conflicts(other Task) bool {
	return t.Start < other.End && other.Start < t.End
}

func (t *Task) MarkCompleted() {
	t.Completed = true
}

func (t Task) WithDescription(description string) Task {
	t.Description = description
	return t
}

func (t Task) WithStart(start TimeOfDay) Task {
	t.Start = start
	return t
}

func (t Task) WithEnd(end TimeOfDay) Task {
	t.End = end
	return t
}

func (t Task) WithPriority(priority Priority) Task {
	t.Priority = priority
	return t
}

// Validate checks what the schedule manager deliberately does not: a
// non-blank description and Start before End.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTask, ErrEmptyDescription)
	}
	if !t.Start.Valid() || !t.End.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidTask, ErrInvalidTime)
	}
	if t.Start >= t.End {
		return fmt.Errorf("%w: %s-%s: %w", ErrInvalidTask, t.Start, t.End, ErrInvalidInterval)
	}
	return nil
}

func (t Task) String() string {
	s := fmt.Sprintf("%s - %s: %s [%s]", t.Start, t.End, t.Description, t.Priority)
	if t.Completed {
		s += " (Completed)"
	}
	return s
}

// CompareStart orders tasks by start time.
func CompareStart(a, b Task) int {
	return cmp.Compare(a.Start, b.Start)
}
