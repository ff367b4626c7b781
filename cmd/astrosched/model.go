package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/benjamonnguyen/astrosched"
	"github.com/benjamonnguyen/astrosched/notify"
	"github.com/benjamonnguyen/astrosched/schedule"
)

const header = "=== Astronaut Daily Schedule Organizer ==="

const commandHelp = `COMMANDS:
  /a <HH:MM> <HH:MM> <priority> <description>: add task
  /x <description>: remove task
  /e <old description> | <HH:MM> <HH:MM> <priority> <description>: replace task
  /c <description>: mark task as completed
  /p [priority]: show only tasks of priority LOW, MEDIUM or HIGH; if no priority provided, show all

  /h: show this help
  /q: end program
`

type model struct {
	// children
	vp        viewport.Model
	userinput textinput.Model

	// supplied
	l         astrosched.Logger
	manager   *schedule.Manager
	collector *notify.Collector

	// state
	filter   *astrosched.Priority
	alerts   []string
	quitting bool
	h        int

	// configuration
	timeFormat string
}

func newModel(l astrosched.Logger, m *schedule.Manager, c *notify.Collector, timeFormat string) model {
	userinput := textinput.New()
	userinput.Focus()
	userinput.CharLimit = 280
	userinput.Placeholder = "/h for help"
	userinput.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))

	md := model{
		vp:         viewport.New(0, 0),
		userinput:  userinput,
		l:          l,
		manager:    m,
		collector:  c,
		timeFormat: timeFormat,
	}
	md.drainNotifications()
	md.vp.SetContent(md.renderSchedule())
	return md
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var tiCmd, vpCmd, cmd tea.Cmd

	m, cmd = m.updateParent(msg)

	// update children

	m.userinput, tiCmd = m.userinput.Update(msg)

	switch msg.(type) {
	case tea.KeyMsg:
		// vp udpates on KeyMsg was causing a view flickering bug
	default:
		m.vp, vpCmd = m.vp.Update(msg)
	}

	return m, tea.Batch(tiCmd, vpCmd, cmd)
}

func (m model) updateParent(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.h = msg.Height
		m.userinput.Width = msg.Width
		m.vp.Width = msg.Width
		m.resizeViewport()
		return m, nil
	case EndProgramMsg:
		return m.endProgram()
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			input := strings.TrimSpace(m.userinput.Value())
			m.userinput.Reset()
			if input == "" {
				return m, nil
			}

			var cmd tea.Cmd
			m.alerts = nil
			m, cmd = m.handleInput(input)
			m.drainNotifications()
			m.vp.SetContent(m.renderSchedule())
			m.resizeViewport()
			return m, cmd
		case tea.KeyCtrlC:
			return m.endProgram()
		}
	}
	return m, nil
}

func (m model) endProgram() (model, tea.Cmd) {
	m.quitting = true
	m.l.Info("ending session", "tasks", m.manager.Len())
	return m, tea.Quit
}

func (m model) handleInput(input string) (model, tea.Cmd) {
	if !strings.HasPrefix(input, "/") {
		m.addAlert(`unknown input, enter "/h" for help`, colorYellow)
		return m, nil
	}

	parts := strings.SplitN(input, " ", 2)
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	m.l.Debug("handling command", "cmd", parts[0], "arg", arg)

	switch parts[0] {
	case "/a":
		t, err := parseTaskArgs(arg)
		if err != nil {
			m.addError(err)
			return m, nil
		}
		if err := m.manager.Add(t); err != nil {
			m.addError(err)
		}
	case "/x":
		if arg == "" {
			m.addAlert("usage: /x <description>", colorYellow)
			return m, nil
		}
		if err := m.manager.Remove(arg); err != nil {
			m.addError(err)
		}
	case "/e":
		old, t, err := parseEditArgs(arg)
		if err != nil {
			m.addError(err)
			return m, nil
		}
		existing, err := m.manager.Get(old)
		if err != nil {
			m.addError(err)
			return m, nil
		}
		if existing.Completed {
			m.addError(fmt.Errorf("%s: %w", old, astrosched.ErrTaskCompleted))
			return m, nil
		}
		if err := m.manager.Edit(old, t); err != nil {
			m.addError(err)
		}
	case "/c":
		if arg == "" {
			m.addAlert("usage: /c <description>", colorYellow)
			return m, nil
		}
		if err := m.manager.Complete(arg); err != nil {
			m.addError(err)
		}
	case "/p":
		if arg == "" {
			m.filter = nil
			return m, nil
		}
		p, err := astrosched.ParsePriority(arg)
		if err != nil {
			m.addError(err)
			return m, nil
		}
		m.filter = &p
	case "/h":
		m.addAlert(commandHelp, colorYellow)
	case "/q":
		return m, func() tea.Msg {
			return EndProgramMsg{}
		}
	default:
		m.addAlert(fmt.Sprintf(`unknown command %q, enter "/h" for help`, parts[0]), colorYellow)
	}
	return m, nil
}

func (m *model) addAlert(alert string, c color) {
	m.alerts = append(m.alerts, colorize(c, alert))
}

func (m *model) addError(err error) {
	var conflict *astrosched.ConflictError
	switch {
	case errors.As(err, &conflict):
		m.l.Debug("rejected conflicting task", "task", conflict.Task.String(), "existing", conflict.Existing.String())
	case errors.Is(err, astrosched.ErrTaskNotFound):
		m.l.Warn("task not found", "error", err)
	}
	m.addAlert("Error: "+err.Error(), colorRed)
}

func (m *model) drainNotifications() {
	if m.collector == nil {
		return
	}
	for _, n := range m.collector.Drain() {
		m.addAlert("Notification: "+n.Message, colorPurple)
	}
}

func (m model) renderSchedule() string {
	var sb strings.Builder
	sb.WriteString(colorize(colorCyan, header))
	sb.WriteRune('\n')

	if m.filter == nil {
		tasks := m.manager.All()
		if len(tasks) == 0 {
			sb.WriteString(colorize(colorYellow, "No tasks scheduled for the day."))
			return sb.String()
		}
		sb.WriteString(renderTasks(tasks, m.timeFormat))
		return sb.String()
	}

	tasks := m.manager.ByPriority(*m.filter)
	if len(tasks) == 0 {
		sb.WriteString(colorize(colorYellow, "No tasks with priority: "+m.filter.String()))
		return sb.String()
	}
	sb.WriteString(colorize(colorCyan, "=== Tasks with Priority: "+m.filter.String()+" ==="))
	sb.WriteRune('\n')
	sb.WriteString(renderTasks(tasks, m.timeFormat))
	return sb.String()
}

func (m model) renderFooter() string {
	if m.quitting {
		return ""
	}

	var footer strings.Builder
	footer.WriteRune('\n')
	footer.WriteString(m.userinput.View())
	footer.WriteString("\n\n")

	if len(m.alerts) > 0 {
		footer.WriteString(strings.Join(m.alerts, "\n"))
		footer.WriteString("\n\n")
	} else {
		footer.WriteString(faintStyle.Render("(ctrl+c to quit)"))
		footer.WriteRune('\n')
	}

	return footer.String()
}

func (m model) View() string {
	return lipgloss.JoinVertical(0, m.vp.View(), m.renderFooter())
}

func (m *model) resizeViewport() {
	scheduleHeight := lipgloss.Height(m.renderSchedule())
	footerHeight := lipgloss.Height(m.renderFooter())
	m.vp.Height = max(0, min(scheduleHeight, m.h-footerHeight))
	m.vp.GotoBottom()
}
