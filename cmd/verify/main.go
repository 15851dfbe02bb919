package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/mikequentel/xengage/internal/cliutil"
	"github.com/mikequentel/xengage/internal/credentials"
	"github.com/mikequentel/xengage/internal/logging"
	"github.com/mikequentel/xengage/internal/xapi"
)

type output struct {
	*xapi.Account
	ConfiguredUserID string `json:"configured_user_id,omitempty"`
	UserIDMatch      *bool  `json:"user_id_match,omitempty"`
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer, opts ...xapi.Option) int {
	log := logging.New(stderr)
	return cliutil.Run(newApp(stdout, stderr, log, opts), args, log)
}

func newApp(stdout, stderr io.Writer, log *logrus.Logger, opts []xapi.Option) *cli.App {
	return &cli.App{
		Name:      "verify",
		Usage:     "check that the credentials are accepted and show the account they belong to",
		Writer:    stderr,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "env",
				Usage:    "path to .env file with OAuth credentials",
				Required: true,
			},
		},
		Action: func(cctx *cli.Context) error {
			creds, err := credentials.EnvFile{Path: cctx.String("env")}.Load()
			if err != nil {
				return err
			}
			// X_USER_ID is optional here, it is only compared.
			if missing := creds.Missing(false); len(missing) > 0 {
				return &credentials.MissingError{Names: missing}
			}

			client, err := xapi.NewClient(creds, opts...)
			if err != nil {
				return cliutil.Exit(cliutil.ExitConfig, err)
			}

			acct, err := client.VerifyCredentials(cctx.Context)
			if err != nil {
				return err
			}
			log.WithField("screen_name", acct.ScreenName).Info("credentials verified")

			out := output{Account: acct}
			if creds.UserID != "" {
				match := creds.UserID == acct.ID
				out.ConfiguredUserID = creds.UserID
				out.UserIDMatch = &match
				if !match {
					log.Warnf("%s is %s but the token belongs to user %s", credentials.EnvUserID, creds.UserID, acct.ID)
				}
			}
			return cliutil.WriteJSON(stdout, out)
		},
	}
}
