package main

import (
	"fmt"
	"os"
	"path"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/urfave/cli"

	"github.com/benjamonnguyen/astrosched"
	"github.com/benjamonnguyen/astrosched/charmlog"
	"github.com/benjamonnguyen/astrosched/notify"
	"github.com/benjamonnguyen/astrosched/plan"
	"github.com/benjamonnguyen/astrosched/schedule"
	"github.com/benjamonnguyen/astrosched/sqlite"
)

const journalTimeout = 3 * time.Second

var (
	confFile string
	planFile string

	globalFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "config, c",
			Usage:       "path of the conf file (default: user config dir)",
			EnvVar:      "ASTROSCHED_CONF",
			Destination: &confFile,
		},
	}

	sessionFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "plan, p",
			Usage:       "yaml plan to load into the schedule before the session starts",
			Destination: &planFile,
		},
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "astrosched"
	app.Usage = "organize an astronaut's daily schedule"
	app.Version = "0.1.0"
	app.Flags = append(globalFlags, sessionFlags...)
	app.Action = session
	app.Commands = []cli.Command{
		{
			Name:      "check",
			Usage:     "validate a yaml plan and report conflicting tasks",
			ArgsUsage: "<plan.yaml>",
			Action:    check,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(colorize(colorRed, "Error: "+err.Error()))
		os.Exit(1)
	}
}

type deps struct {
	conf    astrosched.Config
	logger  astrosched.Logger
	manager *schedule.Manager
	cleanup func()
}

func setup() (deps, error) {
	conf, err := astrosched.LoadConfig(confFile)
	if err != nil {
		return deps{}, err
	}

	if err := os.MkdirAll(path.Dir(conf.LogPath), 0o744); err != nil {
		return deps{}, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(conf.LogPath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o666)
	if err != nil {
		return deps{}, fmt.Errorf("open log file: %w", err)
	}
	closers := []func() error{f.Close}

	logger := charmlog.NewLogger(charmlog.Options{
		Writer: f,
		Level:  conf.LogLevel,
	})
	logger.Info("loaded config", "config", conf)

	m := schedule.New(schedule.WithLogger(logger))

	if conf.JournalURL != "" {
		db, err := sqlite.Open(conf.JournalURL)
		if err != nil {
			logger.Error("failed journal open", "error", err)
			f.Close() //nolint:errcheck
			return deps{}, err
		}
		if err := db.Migrate(); err != nil {
			logger.Error("failed journal migration", "error", err)
			db.Close() //nolint:errcheck
			f.Close()  //nolint:errcheck
			return deps{}, err
		}
		closers = append([]func() error{db.Close}, closers...)
		m.Subscribe(notify.Journal(sqlite.NewJournal(db, logger), logger, journalTimeout))
	}

	return deps{
		conf:    conf,
		logger:  logger,
		manager: m,
		cleanup: func() {
			for _, c := range closers {
				c() //nolint:errcheck
			}
		},
	}, nil
}

func session(ctx *cli.Context) error {
	if ctx.NArg() > 0 {
		return cli.ShowAppHelp(ctx)
	}

	d, err := setup()
	if err != nil {
		return err
	}
	defer d.cleanup()

	c := &notify.Collector{}
	d.manager.Subscribe(c.Listen)

	if planFile != "" {
		tasks, err := plan.Load(afero.NewOsFs(), planFile)
		if err != nil {
			return err
		}
		report := plan.Apply(d.manager, tasks)
		d.logger.Info("applied plan", "path", planFile, "added", len(report.Added), "rejected", len(report.Rejected))
	}

	p := tea.NewProgram(newModel(d.logger, d.manager, c, d.conf.TimeFormat))
	if _, err := p.Run(); err != nil {
		d.logger.Error(err.Error())
		return err
	}
	return nil
}
