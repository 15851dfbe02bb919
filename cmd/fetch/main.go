package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/mikequentel/xengage/internal/cliutil"
	"github.com/mikequentel/xengage/internal/credentials"
	"github.com/mikequentel/xengage/internal/filter"
	"github.com/mikequentel/xengage/internal/logging"
	"github.com/mikequentel/xengage/internal/timeline"
	"github.com/mikequentel/xengage/internal/xapi"
)

type output struct {
	Fetched        int                  `json:"fetched"`
	Passed         int                  `json:"passed"`
	SkippedCount   int                  `json:"skipped_count"`
	SkippedReasons []filter.Skipped     `json:"skipped_reasons"`
	Tweets         []timeline.Formatted `json:"tweets"`
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	log := logging.New(stderr)
	return cliutil.Run(newApp(stdout, stderr, log, credentials.OpenEnvFile), args, log)
}

func newApp(stdout, stderr io.Writer, log *logrus.Logger, open credentials.OpenFunc) *cli.App {
	return &cli.App{
		Name:      "fetch",
		Usage:     "fetch the home timeline, apply pre-filters and print the survivors as JSON",
		Writer:    stderr,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "env",
				Usage:    "path to .env file with OAuth credentials",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "number of raw tweets to fetch (max 100)",
				Value: 50,
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "language filter, empty to disable",
				Value: "en",
			},
			&cli.IntFlag{
				Name:  "min-likes",
				Usage: "minimum likes, 0 to disable",
				Value: 5,
			},
		},
		Action: func(cctx *cli.Context) error {
			creds, err := open(cctx.String("env")).Credentials()
			if err != nil {
				return err
			}

			client, err := xapi.NewClient(creds)
			if err != nil {
				return cliutil.Exit(cliutil.ExitConfig, err)
			}

			fetcher := &timeline.Fetcher{Client: client, Log: log}
			items, err := fetcher.Fetch(cctx.Context, creds.UserID, cctx.Int("count"))
			if err != nil {
				return err
			}

			res := filter.Apply(items, filter.Config{
				Language: cctx.String("lang"),
				MinLikes: cctx.Int("min-likes"),
			})
			log.WithFields(logrus.Fields{
				"fetched": len(items),
				"passed":  len(res.Accepted),
			}).Debug("timeline filtered")

			return cliutil.WriteJSON(stdout, output{
				Fetched:        len(items),
				Passed:         len(res.Accepted),
				SkippedCount:   len(res.Rejected),
				SkippedReasons: res.Skipped(),
				Tweets:         timeline.FormatAll(res.Accepted),
			})
		},
	}
}
