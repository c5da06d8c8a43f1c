package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/calcfile/tivar/bundle"
	"github.com/calcfile/tivar/model"
)

func bundleCmd() *cli.Command {
	var (
		out     string
		device  string
		comment string
	)

	return &cli.Command{
		Name:      "bundle",
		Usage:     "Pack variable files into a calculator bundle",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output bundle path",
				Destination: &out,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "device",
				Usage:       "target device, 83CE or 84CE",
				Value:       "84CE",
				Destination: &device,
			},
			&cli.StringFlag{
				Name:        "comment",
				Usage:       "bundle comment",
				Destination: &comment,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx

			paths := c.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("error: no input files", 1)
			}

			target := model.TI84PCE
			if device == "83CE" {
				target = model.TI83PCE
			}
			md := bundle.DefaultMetadata(target)
			if comment != "" {
				md.Comments = comment
			}

			members := make([]bundle.Member, 0, len(paths))
			for _, p := range paths {
				data, err := os.ReadFile(p)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: read %q: %v", p, err), 1)
				}
				members = append(members, bundle.Member{Name: filepath.Base(p), Data: data})
			}

			raw, err := bundle.Build(members, md)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: build bundle: %v", err), 1)
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return cli.Exit(fmt.Sprintf("error: write %q: %v", out, err), 1)
			}
			fmt.Printf("%s: %d members, %d bytes\n", out, len(members), len(raw))
			return nil
		},
	}
}

func unbundleCmd() *cli.Command {
	var (
		path string
		dir  string
	)

	return &cli.Command{
		Name:  "unbundle",
		Usage: "List or extract the members of a calculator bundle",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "bundle to read",
				Destination: &path,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "extract members into this directory instead of listing",
				Destination: &dir,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx

			data, err := os.ReadFile(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: read %q: %v", path, err), 1)
			}
			b, err := bundle.Parse(data)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: parse %q: %v", path, err), 1)
			}

			fmt.Printf("target: %s %s\n", b.Metadata.TargetDevice, b.Metadata.TargetType)
			if b.Metadata.Comments != "" {
				fmt.Printf("comments: %s\n", b.Metadata.Comments)
			}
			for _, m := range b.Members {
				fmt.Printf("  %-24s %6d bytes\n", m.Name, len(m.Data))
			}

			if dir == "" {
				return nil
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return cli.Exit(fmt.Sprintf("error: create %q: %v", dir, err), 1)
			}
			for _, m := range b.Members {
				dst := filepath.Join(dir, filepath.Base(m.Name))
				if err := os.WriteFile(dst, m.Data, 0o644); err != nil {
					return cli.Exit(fmt.Sprintf("error: write %q: %v", dst, err), 1)
				}
			}
			fmt.Printf("extracted %d members to %s\n", len(b.Members), dir)
			return nil
		},
	}
}
