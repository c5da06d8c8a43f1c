package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/calcfile/tivar/vars"
)

func checkCmd() *cli.Command {
	var path string

	return &cli.Command{
		Name:  "check",
		Usage: "Validate a variable file strictly, failing on any defect",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to the variable file",
				Destination: &path,
				Required:    true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx

			data, err := os.ReadFile(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: read %q: %v", path, err), 1)
			}
			f, err := vars.ParseFile(data)
			if err != nil {
				return cli.Exit(fmt.Sprintf("%s: %v", path, err), 1)
			}

			// the typed views run the per-type shape checks
			for i, e := range f.Entries() {
				if _, err := vars.Specialize(e); err != nil {
					return cli.Exit(fmt.Sprintf("%s: entry %d: %v", path, i, err), 1)
				}
			}

			fmt.Printf("%s: ok (%d entries, checksum 0x%04X)\n", path, f.Len(), f.Checksum())
			return nil
		},
	}
}

func repairCmd() *cli.Command {
	var (
		path string
		out  string
	)

	return &cli.Command{
		Name:  "repair",
		Usage: "Parse a damaged variable file leniently and rewrite it clean",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to the variable file",
				Destination: &path,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output path (defaults to rewriting in place)",
				Destination: &out,
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
				return cli.Exit(fmt.Sprintf("error: %q is beyond repair: %v", path, err), 1)
			}

			for _, note := range f.Repairs() {
				fmt.Printf("repaired: %s\n", note)
			}

			fixed, err := f.Bytes()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: rewrite %q: %v", path, err), 1)
			}
			if out == "" {
				out = path
			}
			if err := os.WriteFile(out, fixed, 0o644); err != nil {
				return cli.Exit(fmt.Sprintf("error: write %q: %v", out, err), 1)
			}
			fmt.Printf("%s: wrote %d bytes, checksum 0x%04X\n", out, len(fixed), f.Checksum())
			return nil
		},
	}
}
