// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/tabresgo/internal/config"
)

// CpCommandAction loads the frame behind SRC and saves it through DST,
// converting between formats along the way.
func CpCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 { //nolint:mnd
		return fmt.Errorf("cp needs exactly a SRC and a DST spec")
	}

	delim, encoding := csvOptions(cmd)

	src, err := ParseSpec(ctx, cmd.Args().Get(0), delim, encoding)
	if err != nil {
		return err
	}
	dst, err := ParseSpec(ctx, cmd.Args().Get(1), delim, encoding)
	if err != nil {
		return err
	}

	f, err := src.Load()
	if err != nil {
		return err
	}
	log.Debugf("loaded %d row(s), %d column(s) from %s", f.Rows(), f.Width(), src.Path())

	if err := dst.Save(f); err != nil {
		return err
	}
	log.Debugf("saved to %s", dst.Path())
	return nil
}

// CpCommandBuilder constructs the cli.Command for "cp".
func CpCommandBuilder(cmd *cli.Command, cfg config.Type) *cli.Command {
	return &cli.Command{
		Name:      "cp",
		Usage:     "copy a frame between resources, converting formats",
		UsageText: `tabres cp [options] SRC DST`,
		Flags: []cli.Flag{
			NewDelimiterFlag("cp", cfg.Source),
			NewEncodingFlag("cp", cfg.Source),
		},
		Action: CpCommandAction,
	}
}
