// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/tabresgo/internal/config"
	"github.com/staranto/tabresgo/internal/output"
)

// HeadCommandAction renders the first rows of a resource.
func HeadCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("head needs exactly one resource spec")
	}

	delim, encoding := csvOptions(cmd)
	res, err := ParseSpec(ctx, cmd.Args().Get(0), delim, encoding)
	if err != nil {
		return err
	}

	f, err := res.Load()
	if err != nil {
		return err
	}
	f = f.Head(int(cmd.Int("n")))

	if q := cmd.String("query"); q != "" {
		doc, err := output.JSON(f)
		if err != nil {
			return err
		}
		out, err := output.Query(doc, q)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	switch cmd.String("output") {
	case "json":
		doc, err := output.JSON(f)
		if err != nil {
			return err
		}
		fmt.Println(string(doc))
	case "yaml":
		doc, err := output.YAML(f)
		if err != nil {
			return err
		}
		fmt.Print(string(doc))
	default:
		return output.Text(os.Stdout, f)
	}
	return nil
}

// HeadCommandBuilder constructs the cli.Command for "head".
func HeadCommandBuilder(cmd *cli.Command, cfg config.Type) *cli.Command {
	return &cli.Command{
		Name:      "head",
		Usage:     "show the first rows of a resource",
		UsageText: `tabres head [options] SPEC`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "n",
				Usage: "number of rows to show",
				Value: 10, //nolint:mnd
				Sources: cli.NewValueSourceChain(
					yaml.YAML("head.n", altsrc.StringSourcer(cfg.Source)),
				),
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "gjson path applied to the json rendering (implies --output json)",
			},
			NewDelimiterFlag("head", cfg.Source),
			NewEncodingFlag("head", cfg.Source),
			NewOutputFlag("head", cfg.Source),
		},
		Action: HeadCommandAction,
	}
}
