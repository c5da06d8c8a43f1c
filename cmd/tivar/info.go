package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/calcfile/tivar/vars"
)

func infoCmd() *cli.Command {
	var (
		path     string
		showJSON bool
	)

	return &cli.Command{
		Name:  "info",
		Usage: "Summarize the header and entries of a variable file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to the variable file",
				Destination: &path,
				Required:    true,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print graph databases as JSON",
				Destination: &showJSON,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx

			data, err := os.ReadFile(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: read %q: %v", path, err), 1)
			}
			f, err := vars.ParseFile(data, vars.WithLenient())
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: parse %q: %v", path, err), 1)
			}

			h := f.Header()
			fmt.Printf("File      %s\n", path)
			fmt.Printf("Magic     %s\n", h.Magic())
			if m, ok := h.Model(); ok {
				fmt.Printf("Model     %s\n", m)
			}
			fmt.Printf("Comment   %s\n", h.Comment())
			fmt.Printf("Entries   %d (%d bytes, checksum 0x%04X)\n", f.Len(), f.EntryLength(), f.Checksum())

			for i, e := range f.Entries() {
				line := fmt.Sprintf("  %2d  %-16s  %-8s  %5d bytes", i, e.TypeName(), e.Name(), e.Data().Len())
				if archived, err := e.Archived(); err == nil && archived {
					line += "  archived"
				}
				fmt.Println(line)

				if showJSON && e.TypeID() == vars.TypeGDB {
					g, err := vars.AsGDB(e)
					if err != nil {
						fmt.Printf("      (unreadable graph database: %v)\n", err)
						continue
					}
					doc, err := g.MarshalJSON()
					if err != nil {
						return cli.Exit(fmt.Sprintf("error: render %s: %v", e.Name(), err), 1)
					}
					fmt.Printf("      %s\n", doc)
				}
			}

			for _, note := range f.Repairs() {
				fmt.Printf("warning: %s\n", note)
			}
			return nil
		},
	}
}
