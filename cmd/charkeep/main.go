// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/poiesic/charkeep"
	"github.com/poiesic/charkeep/config"
	"github.com/poiesic/charkeep/core"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "charkeep",
		Usage: "Look up tabletop content and keep a local roster of characters",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Write logs to a rotating file instead of stderr",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config.yaml (defaults to the data directory)",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Storage mode (desktop, web)",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "Directory holding character data",
			},
			&cli.StringFlag{
				Name:  "content-dir",
				Usage: "Directory holding index.json and custom content",
			},
			&cli.StringFlag{
				Name:  "remote-url",
				Usage: "Base URL of the remote content API",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Local key-value backend (badger, sqlite)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "List custom content found in the content directory",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only scan one category (backgrounds, classes, races, spells)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the index as JSON",
					},
				},
			},
			{
				Name:      "lookup",
				Usage:     "Resolve a name to a content record, remote first",
				ArgsUsage: "<category> <name>",
				Action:    lookupCommand,
			},
			charactersCommand(),
			{
				Name:   "info",
				Usage:  "Show where characters are stored",
				Action: infoCommand,
			},
		},
	}
}

func openKeeper(c *cli.Context) (*charkeep.Keeper, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := map[string]config.ConfigOption{
		"mode":        config.WithMode(c.String("mode")),
		"data-dir":    config.WithDataDir(c.String("data-dir")),
		"content-dir": config.WithContentDir(c.String("content-dir")),
		"remote-url":  config.WithRemoteURL(c.String("remote-url")),
		"backend":     config.WithLocalBackend(c.String("backend")),
	}
	for flag, opt := range overrides {
		if c.IsSet(flag) {
			opt(cfg)
		}
	}

	k, err := charkeep.Open(cfg, charkeep.WithLogger(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return k, nil
}

func indexCommand(c *cli.Context) error {
	k, err := openKeeper(c)
	if err != nil {
		return err
	}
	defer k.Close()

	var idx core.Index
	if name := c.String("category"); name != "" {
		category, err := core.ParseCategory(name)
		if err != nil {
			return err
		}
		idx = core.Index{category: k.Loader().BuildIndex(c.Context, category)}
	} else {
		idx = k.BuildIndex(c.Context)
	}

	if c.Bool("json") {
		return writeJSON(c.App.Writer, idx)
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tNAME\tFILENAME\tSOURCE")
	for _, category := range core.Categories {
		for _, entry := range idx[category] {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", category, entry.Name, entry.Filename, entry.Source)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.App.ErrWriter, "%d entries\n", idx.Total())
	return nil
}

func lookupCommand(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: charkeep lookup <category> <name>")
	}
	category, err := core.ParseCategory(c.Args().First())
	if err != nil {
		return err
	}
	name := strings.Join(c.Args().Tail(), " ")

	k, err := openKeeper(c)
	if err != nil {
		return err
	}
	defer k.Close()

	result, ok := k.Lookup(c.Context, name, category)
	if !ok {
		return fmt.Errorf("no %s named %q", category.Singular(), name)
	}
	fmt.Fprintf(c.App.ErrWriter, "source: %s\n", result.Source)
	return writeJSON(c.App.Writer, result.Data)
}

func infoCommand(c *cli.Context) error {
	k, err := openKeeper(c)
	if err != nil {
		return err
	}
	defer k.Close()

	return writeJSON(c.App.Writer, struct {
		Storage any            `json:"storage"`
		Config  *config.Config `json:"config"`
	}{
		Storage: k.Ledger().Info(c.Context),
		Config:  k.Config(),
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseLevel maps a --log-level value to a slog.Level.
func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", s)
	}
}

func setupLogger(c *cli.Context) error {
	level, err := parseLevel(c.String("log-level"))
	if err != nil {
		return err
	}

	var out io.Writer = os.Stderr
	if path := c.String("log-file"); path != "" {
		out = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // Megabytes
			MaxBackups: 5,
			MaxAge:     30, // Days
			Compress:   true,
		}
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
