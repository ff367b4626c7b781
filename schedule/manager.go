// Package schedule holds the tasks of a single day and keeps them free of
// overlapping intervals.
package schedule

import (
	"fmt"
	"slices"
	"sync"

	"github.com/benjamonnguyen/astrosched"
	"github.com/benjamonnguyen/astrosched/notify"
)

const conflictMessage = "Conflict detected: Task conflicts with an existing task."

// Manager is the only writer of a day's task list. Tasks are kept sorted by
// start time and no two held tasks ever conflict, unless they were admitted
// with inverted intervals.
//
// Every mutating call holds the lock across its whole scan-then-mutate
// sequence. Notifications are published after the lock is released, so
// listeners may call back into the Manager.
type Manager struct {
	l          astrosched.Logger
	dispatcher *notify.Dispatcher

	mu    sync.Mutex
	tasks []astrosched.Task
}

type Option func(*Manager)

func WithLogger(l astrosched.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.l = l
		}
	}
}

// WithDispatcher shares an existing dispatcher instead of creating one.
func WithDispatcher(d *notify.Dispatcher) Option {
	return func(m *Manager) {
		if d != nil {
			m.dispatcher = d
		}
	}
}

func New(opts ...Option) *Manager {
	m := &Manager{
		l: astrosched.NopLogger{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.dispatcher == nil {
		m.dispatcher = notify.NewDispatcher(m.l)
	}
	return m
}

// Subscribe registers a listener for every notification the Manager emits.
func (m *Manager) Subscribe(l notify.Listener) (unsubscribe func()) {
	return m.dispatcher.Subscribe(l)
}

// Add admits task unless it conflicts with a held task, in which case a
// *astrosched.ConflictError is returned and the schedule is left unchanged.
func (m *Manager) Add(task astrosched.Task) error {
	m.mu.Lock()
	n, err := m.add(task)
	m.mu.Unlock()

	m.publish(n...)
	return err
}

// Remove deletes the first task whose description equals description.
func (m *Manager) Remove(description string) error {
	m.mu.Lock()
	n, err := m.remove(description)
	m.mu.Unlock()

	m.publish(n...)
	return err
}

// Edit replaces the task named oldDescription with task. The old task is
// removed first and is not restored when task conflicts with another one.
func (m *Manager) Edit(oldDescription string, task astrosched.Task) error {
	m.mu.Lock()
	notifications, err := m.remove(oldDescription)
	if err == nil {
		var n []astrosched.Notification
		n, err = m.add(task)
		notifications = append(notifications, n...)
	}
	m.mu.Unlock()

	if err != nil {
		m.publish(notifications...)
		return err
	}

	edited := astrosched.NewNotification(
		astrosched.KindEdited,
		task,
		fmt.Sprintf("Task edited: %s -> %s", oldDescription, task.Description),
	)
	edited.OldDescription = oldDescription
	m.l.Info("task edited", "old", oldDescription, "task", task.String())
	m.publish(append(notifications, edited)...)
	return nil
}

// Complete marks the first task named description as completed.
func (m *Manager) Complete(description string) error {
	m.mu.Lock()
	i := m.indexOf(description)
	if i < 0 {
		m.mu.Unlock()
		m.l.Warn("task not found", "op", "complete", "description", description)
		return astrosched.NotFound(description)
	}
	m.tasks[i].MarkCompleted()
	task := m.tasks[i]
	m.mu.Unlock()

	m.l.Info("task completed", "task", task.String())
	m.publish(astrosched.NewNotification(astrosched.KindCompleted, task, "Task marked as completed: "+description))
	return nil
}

// Get returns a copy of the first task named description.
func (m *Manager) Get(description string) (astrosched.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(description)
	if i < 0 {
		return astrosched.Task{}, astrosched.NotFound(description)
	}
	return m.tasks[i], nil
}

// All returns a copy of the schedule in start time order.
func (m *Manager) All() []astrosched.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.tasks)
}

// ByPriority returns the tasks with priority p in start time order.
func (m *Manager) ByPriority(p astrosched.Priority) []astrosched.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []astrosched.Task
	for _, t := range m.tasks {
		if t.Priority == p {
			res = append(res, t)
		}
	}
	return res
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// add must be called with mu held.
func (m *Manager) add(task astrosched.Task) ([]astrosched.Notification, error) {
	if existing, ok := m.conflicting(task); ok {
		err := &astrosched.ConflictError{Task: task, Existing: existing}
		m.l.Warn("schedule conflict", "task", task.String(), "existing", existing.String())
		return []astrosched.Notification{
			astrosched.NewNotification(astrosched.KindConflict, task, conflictMessage),
		}, err
	}

	m.tasks = append(m.tasks, task)
	slices.SortStableFunc(m.tasks, astrosched.CompareStart)
	m.l.Info("task added", "task", task.String())
	return []astrosched.Notification{
		astrosched.NewNotification(astrosched.KindAdded, task, "Task added successfully: "+task.Description),
	}, nil
}

// remove must be called with mu held.
func (m *Manager) remove(description string) ([]astrosched.Notification, error) {
	i := m.indexOf(description)
	if i < 0 {
		m.l.Warn("task not found", "op", "remove", "description", description)
		return nil, astrosched.NotFound(description)
	}

	removed := m.tasks[i]
	m.tasks = slices.Delete(m.tasks, i, i+1)
	m.l.Info("task removed", "description", description)
	return []astrosched.Notification{
		astrosched.NewNotification(astrosched.KindRemoved, removed, "Task removed: "+description),
	}, nil
}

func (m *Manager) conflicting(task astrosched.Task) (astrosched.Task, bool) {
	for _, existing := range m.tasks {
		if existing.Conflicts(task) {
			return existing, true
		}
	}
	return astrosched.Task{}, false
}

func (m *Manager) indexOf(description string) int {
	return slices.IndexFunc(m.tasks, func(t astrosched.Task) bool {
		return t.Description == description
	})
}

func (m *Manager) publish(notifications ...astrosched.Notification) {
	for _, n := range notifications {
		m.dispatcher.Publish(n)
	}
}
