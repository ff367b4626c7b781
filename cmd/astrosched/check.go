package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli"

	"github.com/benjamonnguyen/astrosched/notify"
	"github.com/benjamonnguyen/astrosched/plan"
	"github.com/benjamonnguyen/astrosched/schedule"
)

func check(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" || path == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}

	d, err := setup()
	if err != nil {
		return err
	}
	defer d.cleanup()

	rejected, err := runCheck(os.Stdout, afero.NewOsFs(), path, d.manager, d.conf.TimeFormat)
	if err != nil {
		return err
	}
	if rejected > 0 {
		return fmt.Errorf("%d task(s) rejected", rejected)
	}
	return nil
}

// runCheck applies the plan at path to m, printing every notification and
// the resulting schedule to w.
func runCheck(w io.Writer, fs afero.Fs, path string, m *schedule.Manager, timeFormat string) (int, error) {
	tasks, err := plan.Load(fs, path)
	if err != nil {
		return 0, err
	}

	unsubscribe := m.Subscribe(notify.Printer(w))
	report := plan.Apply(m, tasks)
	unsubscribe()

	for _, r := range report.Rejected {
		fmt.Fprintln(w, colorize(colorRed, "Error: "+r.Err.Error())) //nolint:errcheck
	}
	if len(report.Rejected) == 0 {
		fmt.Fprintln(w, colorize(colorGreen, fmt.Sprintf("%d task(s) added, no conflicts", len(report.Added)))) //nolint:errcheck
	}

	fmt.Fprintln(w, colorize(colorCyan, header)) //nolint:errcheck
	if m.Len() == 0 {
		fmt.Fprintln(w, colorize(colorYellow, "No tasks scheduled for the day.")) //nolint:errcheck
	} else {
		fmt.Fprintln(w, renderTasks(m.All(), timeFormat)) //nolint:errcheck
	}
	return len(report.Rejected), nil
}
