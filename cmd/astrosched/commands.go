package main

import (
	"fmt"
	"strings"

	"github.com/benjamonnguyen/astrosched"
)

const taskArgsUsage = "<HH:MM> <HH:MM> <priority> <description>"

// parseTaskArgs parses "<start> <end> <priority> <description>". The result
// is validated so bad input never reaches the schedule.
func parseTaskArgs(arg string) (astrosched.Task, error) {
	fields := strings.Fields(arg)
	if len(fields) < 4 {
		return astrosched.Task{}, fmt.Errorf("usage: %s", taskArgsUsage)
	}

	start, err := astrosched.ParseTimeOfDay(fields[0])
	if err != nil {
		return astrosched.Task{}, err
	}
	end, err := astrosched.ParseTimeOfDay(fields[1])
	if err != nil {
		return astrosched.Task{}, err
	}
	p, err := astrosched.ParsePriority(fields[2])
	if err != nil {
		return astrosched.Task{}, err
	}

	t := astrosched.NewTask(strings.Join(fields[3:], " "), start, end, p)
	if err := t.Validate(); err != nil {
		return astrosched.Task{}, err
	}
	return t, nil
}

// parseEditArgs parses "<old description> | <task args>".
func parseEditArgs(arg string) (string, astrosched.Task, error) {
	old, rest, ok := strings.Cut(arg, "|")
	old = strings.TrimSpace(old)
	if !ok || old == "" {
		return "", astrosched.Task{}, fmt.Errorf("usage: /e <old description> | %s", taskArgsUsage)
	}
	t, err := parseTaskArgs(rest)
	if err != nil {
		return "", astrosched.Task{}, err
	}
	return old, t, nil
}
