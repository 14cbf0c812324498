package service

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"inkpost/app/config"

	"github.com/urfave/cli/v2"
)

// NewApp builds the command line interface.
func NewApp(version string) *cli.App {
	return &cli.App{
		Name:    "inkpost",
		Usage:   "blog posts and comments behind a JSON API",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "store",
				Usage: "storage backend: badger, sqlite or postgres (overrides BLOG_STORE)",
			},
			&cli.StringFlag{
				Name:  "db-path",
				Usage: "badger database directory (overrides BLOG_DB_PATH)",
			},
			&cli.StringFlag{
				Name:  "database-url",
				Usage: "sqlite DSN or postgres URL (overrides BLOG_DATABASE_URL)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the blog API server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "listen address (overrides BLOG_ADDR)",
					},
				},
				Action: func(c *cli.Context) error {
					cfg := loadConfig(c)
					if c.IsSet("addr") {
						cfg.Addr = c.String("addr")
					}
					ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
					defer stop()
					return RunAppServer(ctx, cfg)
				},
			},
			{
				Name:  "init",
				Usage: "initialize a new empty database",
				Action: func(c *cli.Context) error {
					return exitOnError(initDB(c.Context, loadConfig(c), c.App.Writer))
				},
			},
			{
				Name:  "clean",
				Usage: "remove the database",
				Flags: []cli.Flag{yesFlag()},
				Action: func(c *cli.Context) error {
					return exitOnError(clean(loadConfig(c), c.Bool("yes"), c.App.Reader, c.App.Writer))
				},
			},
			{
				Name:  "backup",
				Usage: "write a backup of the database into BLOG_BACKUP_DIR",
				Action: func(c *cli.Context) error {
					_, err := backup(loadConfig(c), c.App.Writer)
					return exitOnError(err)
				},
			},
			{
				Name:      "restore",
				Usage:     "restore the database from a backup file",
				ArgsUsage: "<file>",
				Flags:     []cli.Flag{yesFlag()},
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return cli.Exit("Error: backup file path required for restore", 1)
					}
					return exitOnError(restore(loadConfig(c), c.Args().First(), c.Bool("yes"), c.App.Reader, c.App.Writer))
				},
			},
			{
				Name:  "version",
				Usage: "show version information",
				Action: func(c *cli.Context) error {
					fmt.Fprintf(c.App.Writer, "inkpost version %s\n", version)
					return nil
				},
			},
		},
	}
}

func yesFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "do not ask for confirmation",
	}
}

// loadConfig reads the environment and applies the global flags.
func loadConfig(c *cli.Context) config.Config {
	cfg := config.Load()
	if c.IsSet("store") {
		cfg.Store = c.String("store")
	}
	if c.IsSet("db-path") {
		cfg.DBPath = c.String("db-path")
	}
	if c.IsSet("database-url") {
		cfg.DatabaseURL = c.String("database-url")
	}
	return cfg
}

func exitOnError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errCancelled):
		return cli.Exit("Operation cancelled", 1)
	default:
		return cli.Exit(err.Error(), 1)
	}
}
