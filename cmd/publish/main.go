package main

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/mikequentel/xengage/internal/cliutil"
	"github.com/mikequentel/xengage/internal/credentials"
	"github.com/mikequentel/xengage/internal/logging"
	"github.com/mikequentel/xengage/internal/publish"
	"github.com/mikequentel/xengage/internal/xapi"
)

type dryRunOutput struct {
	DryRun       bool           `json:"dry_run"`
	Total        int            `json:"total"`
	Dropped      int            `json:"dropped"`
	WouldPublish []publish.Task `json:"would_publish"`
	Skipped      []publish.Task `json:"skipped"`
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	log := logging.New(stderr)
	return cliutil.Run(newApp(stdout, stderr, log, credentials.OpenEnvFile), args, log)
}

func newApp(stdout, stderr io.Writer, log *logrus.Logger, open credentials.OpenFunc) *cli.App {
	defaults := publish.DefaultConfig()

	return &cli.App{
		Name:      "publish",
		Usage:     "like tweets and post reply comments, pacing writes to stay under rate limits",
		Writer:    stderr,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "comments",
				Usage:    "path to comments JSON file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "env",
				Usage:    "path to .env file with OAuth credentials",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "max",
				Usage: "max comments per batch",
				Value: defaults.BatchCap,
			},
			&cli.Float64Flag{
				Name:  "min-delay",
				Usage: "min delay between posts in seconds",
				Value: defaults.MinDelay.Seconds(),
			},
			&cli.Float64Flag{
				Name:  "max-delay",
				Usage: "max delay between posts in seconds",
				Value: defaults.MaxDelay.Seconds(),
			},
			&cli.BoolFlag{
				Name:  "no-like",
				Usage: "reply without liking the tweet first",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Usage:   "validate and print the batch without credentials or network calls",
				EnvVars: []string{"DRY_RUN"},
			},
		},
		Action: func(cctx *cli.Context) error {
			cfg := publish.Config{
				BatchCap:        cctx.Int("max"),
				MinDelay:        seconds(cctx.Float64("min-delay")),
				MaxDelay:        seconds(cctx.Float64("max-delay")),
				LikeBeforeReply: !cctx.Bool("no-like"),
			}
			if err := cfg.Validate(); err != nil {
				return cliutil.Exit(cliutil.ExitConfig, err)
			}

			if cctx.Bool("dry-run") {
				return dryRun(cctx.String("comments"), cfg, stdout, log)
			}

			creds, err := open(cctx.String("env")).Credentials()
			if err != nil {
				return err
			}

			tasks, err := publish.LoadTasks(cctx.String("comments"))
			if err != nil {
				return cliutil.Exit(cliutil.ExitConfig, err)
			}

			client, err := xapi.NewClient(creds)
			if err != nil {
				return cliutil.Exit(cliutil.ExitConfig, err)
			}

			exec := &publish.Executor{
				Client: client,
				UserID: creds.UserID,
				Log:    log,
			}
			report, err := exec.Publish(cctx.Context, tasks, cfg)
			if errors.Is(err, publish.ErrNoTasks) {
				return cliutil.Exit(cliutil.ExitConfig, err)
			}
			if report != nil {
				if werr := cliutil.WriteJSON(stdout, report); werr != nil {
					return werr
				}
			}
			return err
		},
	}
}

func dryRun(path string, cfg publish.Config, stdout io.Writer, log *logrus.Logger) error {
	tasks, err := publish.LoadTasks(path)
	if err != nil {
		return cliutil.Exit(cliutil.ExitConfig, err)
	}
	plan, err := (&publish.Executor{Log: log}).Plan(tasks, cfg)
	if err != nil {
		return cliutil.Exit(cliutil.ExitConfig, err)
	}

	out := dryRunOutput{
		DryRun:       true,
		Total:        len(plan.Tasks),
		Dropped:      plan.Dropped,
		WouldPublish: []publish.Task{},
		Skipped:      []publish.Task{},
	}
	for _, t := range plan.Tasks {
		if t.Valid() {
			out.WouldPublish = append(out.WouldPublish, t.Normalized())
		} else {
			out.Skipped = append(out.Skipped, t)
		}
	}
	log.Info("dry run, no network calls made")
	return cliutil.WriteJSON(stdout, out)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
