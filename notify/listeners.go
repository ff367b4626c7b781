package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/benjamonnguyen/astrosched"
	"github.com/charmbracelet/lipgloss"
)

var notificationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))

// Printer writes every notification to w as "Notification: <message>".
func Printer(w io.Writer) Listener {
	return func(n astrosched.Notification) error {
		_, err := fmt.Fprintln(w, notificationStyle.Render("Notification: "+n.Message))
		return err
	}
}

// Collector accumulates notifications until drained.
type Collector struct {
	mu            sync.Mutex
	notifications []astrosched.Notification
}

func (c *Collector) Listen(n astrosched.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append(c.notifications, n)
	return nil
}

// Drain returns everything collected so far and resets the collector.
func (c *Collector) Drain() []astrosched.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := c.notifications
	c.notifications = nil
	return res
}

// Journal appends every notification to repo.
func Journal(repo astrosched.JournalRepo, logger astrosched.Logger, timeout time.Duration) Listener {
	if logger == nil {
		logger = astrosched.NopLogger{}
	}
	return func(n astrosched.Notification) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		rec, err := repo.Append(ctx, astrosched.JournalRecordFromNotification(n))
		if err != nil {
			return fmt.Errorf("journal notification %s: %w", n.ID, err)
		}
		logger.Debug("journaled notification", "id", rec.ID, "kind", n.Kind)
		return nil
	}
}
