// Package plan reads a day plan from a YAML file and applies it to a schedule.
//
//	tasks:
//	  - description: Morning Check
//	    start: "09:00"
//	    end: "09:30"
//	    priority: medium
package plan

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	yaml "go.yaml.in/yaml/v3"

	"github.com/benjamonnguyen/astrosched"
)

type File struct {
	Tasks []Entry `yaml:"tasks"`
}

type Entry struct {
	Description string `yaml:"description"`
	Start       string `yaml:"start"`
	End         string `yaml:"end"`
	Priority    string `yaml:"priority"`
}

// Adder is the part of a schedule a plan is applied to.
type Adder interface {
	Add(astrosched.Task) error
}

type Rejection struct {
	Task astrosched.Task
	Err  error
}

type Report struct {
	Added    []astrosched.Task
	Rejected []Rejection
}

// Load reads and validates every entry of the plan at path. Entry errors are
// joined so one bad entry does not hide the others.
func Load(fs afero.Fs, path string) ([]astrosched.Task, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) ([]astrosched.Task, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	tasks := make([]astrosched.Task, 0, len(f.Tasks))
	var errs []error
	for i, e := range f.Tasks {
		t, err := e.Task()
		if err != nil {
			errs = append(errs, fmt.Errorf("tasks[%d]: %w", i, err))
			continue
		}
		tasks = append(tasks, t)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return tasks, nil
}

func (e Entry) Task() (astrosched.Task, error) {
	start, err := astrosched.ParseTimeOfDay(e.Start)
	if err != nil {
		return astrosched.Task{}, fmt.Errorf("start: %w", err)
	}
	end, err := astrosched.ParseTimeOfDay(e.End)
	if err != nil {
		return astrosched.Task{}, fmt.Errorf("end: %w", err)
	}
	p, err := astrosched.ParsePriority(e.Priority)
	if err != nil {
		return astrosched.Task{}, err
	}

	t := astrosched.NewTask(e.Description, start, end, p)
	if err := t.Validate(); err != nil {
		return astrosched.Task{}, err
	}
	return t, nil
}

// Apply adds every task to m. Rejected tasks do not stop the rest.
func Apply(m Adder, tasks []astrosched.Task) Report {
	var r Report
	for _, t := range tasks {
		if err := m.Add(t); err != nil {
			r.Rejected = append(r.Rejected, Rejection{Task: t, Err: err})
			continue
		}
		r.Added = append(r.Added, t)
	}
	return r
}
