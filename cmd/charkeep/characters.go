package main

import (
	"fmt"
	"io"
	"os"

	"github.com/poiesic/charkeep/core"
	"github.com/poiesic/charkeep/ledger"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

func charactersCommand() *cli.Command {
	return &cli.Command{
		Name:    "characters",
		Aliases: []string{"chars"},
		Usage:   "Manage saved characters",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List saved characters",
				Action: listCharacters,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the full records as JSON",
					},
				},
			},
			{
				Name:      "save",
				Usage:     "Save a character record, updating the one it matches by name",
				ArgsUsage: "<file.json | ->",
				Action:    saveCharacter,
			},
			{
				Name:      "import",
				Usage:     "Import characters from an exported file or a JSON array",
				ArgsUsage: "<file.json>",
				Action:    importCharacters,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "merge",
						Usage: "Save each imported character instead of replacing the roster",
					},
				},
			},
			{
				Name:   "export",
				Usage:  "Write a portable backup of all characters",
				Action: exportCharacters,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Directory to write the backup into",
						Value:   ".",
					},
					&cli.StringFlag{
						Name:  "filename",
						Usage: "Backup filename (defaults to dnd-characters-backup-<date>.json)",
					},
				},
			},
		},
	}
}

func listCharacters(c *cli.Context) error {
	k, err := openKeeper(c)
	if err != nil {
		return err
	}
	defer k.Close()

	records := k.Ledger().LoadAll(c.Context)
	if c.Bool("json") {
		return writeJSON(c.App.Writer, records)
	}
	for i, rec := range records {
		name := rec.Name()
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(c.App.Writer, "%3d  %s\n", i+1, name)
	}
	return nil
}

func saveCharacter(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: charkeep characters save <file.json | ->")
	}
	record, err := readRecord(c.Args().First(), c.App.Reader)
	if err != nil {
		return err
	}

	k, err := openKeeper(c)
	if err != nil {
		return err
	}
	defer k.Close()

	if err := k.Ledger().Upsert(c.Context, record); err != nil {
		return fmt.Errorf("failed to save %q: %w", record.Name(), err)
	}
	fmt.Fprintf(c.App.ErrWriter, "saved %s\n", record.Name())
	return nil
}

func importCharacters(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: charkeep characters import <file.json>")
	}
	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	k, err := openKeeper(c)
	if err != nil {
		return err
	}
	defer k.Close()

	l := k.Ledger()
	records, err := l.ImportFrom(c.Context, f)
	if err != nil {
		return err
	}

	if !c.Bool("merge") {
		if err := l.SaveAll(c.Context, records); err != nil {
			return err
		}
		fmt.Fprintf(c.App.ErrWriter, "imported %d characters\n", len(records))
		return nil
	}

	for _, rec := range records {
		if err := l.Upsert(c.Context, rec); err != nil {
			return fmt.Errorf("failed to merge %q: %w", rec.Name(), err)
		}
	}
	fmt.Fprintf(c.App.ErrWriter, "merged %d characters\n", len(records))
	return nil
}

func exportCharacters(c *cli.Context) error {
	k, err := openKeeper(c)
	if err != nil {
		return err
	}
	defer k.Close()

	fsys := afero.NewOsFs()
	d := ledger.NewFileDownloader(fsys, c.String("out"))
	l := k.Ledger()
	records := l.LoadAll(c.Context)

	name, err := l.ExportTo(c.Context, d, records, c.String("filename"))
	if err != nil {
		return err
	}
	if ok, _ := afero.Exists(fsys, d.Path(name)); !ok {
		return fmt.Errorf("export was not written to %s", d.Path(name))
	}
	fmt.Fprintf(c.App.ErrWriter, "exported %d characters to %s\n", len(records), d.Path(name))
	return nil
}

// readRecord reads one character record from path, or from stdin when path is "-".
func readRecord(path string, stdin io.Reader) (core.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	record, err := core.CompactDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrParse, err)
	}
	if err := core.ValidateCharacter(record); err != nil {
		return nil, err
	}
	return record, nil
}
