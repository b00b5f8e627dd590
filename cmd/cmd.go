package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/remold-dev/remold/engine"
	"github.com/remold-dev/remold/rules"
)

// Execute runs the remold CLI with the given version string.
// Import rule packages via blank imports before calling this
// function so they register via init().
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "remold",
		Usage:                  "A rule-based refactoring engine for Python sources",
		Version:                version,
		UseShortOptionHandling: true,
		Flags:                  runFlags(),
		// Allow `remold script.py` as shorthand for `remold run script.py`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 && strings.HasSuffix(cmd.Args().First(), ".py") {
				return runFiles(cmd, cmd.Args().Slice())
			}
			return cli.DefaultShowRootCommandHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Refactor the given files or directories",
				ArgsUsage: "<path> [path...]",
				Flags:     runFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg() < 1 {
						return fmt.Errorf("usage: remold run [-a] [-w workers] <path> [path...]")
					}
					return runFiles(cmd, cmd.Args().Slice())
				},
			},
			{
				Name:   "list",
				Usage:  "List the available rules",
				Action: listAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "apply",
			Aliases: []string{"a"},
			Usage:   "Write changes back instead of printing diffs",
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Usage:   "Parallel files",
			Value:   4,
		},
		&cli.StringSliceFlag{
			Name:    "rule",
			Aliases: []string{"r"},
			Usage:   "Enable only the named rule (repeatable)",
		},
		&cli.StringFlag{
			Name:  "unparser",
			Usage: "Unparser backend: precise or fast",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Keep unparsable generated sources in a temp file",
		},
		&cli.BoolFlag{
			Name:    "no-color",
			Aliases: []string{"C"},
			Usage:   "Disable ANSI color output",
		},
	}
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	for _, name := range rules.Names() {
		fmt.Printf("%-24s %s\n", name, rules.Describe(name))
	}
	return nil
}

// newSession builds the session for one invocation, merging flags
// over the settings from an optional .remold.yml.
func newSession(cmd *cli.Command) (*engine.Session, *fileConfig, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, nil, err
	}
	cfg.merge(cmd)

	active, err := rules.Build(cfg.Rules)
	if err != nil {
		return nil, nil, err
	}
	session := &engine.Session{
		Rules: active,
		Config: engine.Configuration{
			Unparser: cfg.Unparser,
			Debug:    cfg.Debug,
		},
	}
	return session, cfg, nil
}
