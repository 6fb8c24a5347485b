// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/tabresgo/internal/config"
)

// InfoCommandAction prints the shape, schema, and on-disk size of a
// resource.
func InfoCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("info needs exactly one resource spec")
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

	fmt.Printf("path:  %s\n", res.Path())
	fmt.Printf("size:  %s\n", humanize.Bytes(diskSize(res.Path())))
	fmt.Printf("rows:  %d\n", f.Rows())
	fmt.Printf("cols:  %d\n", f.Width())
	for _, s := range f.Cols() {
		fmt.Printf("  %-20s %s\n", s.Name(), s.Kind())
	}
	if idx := f.Index(); idx != nil {
		fmt.Printf("index: %s (%s)\n", idx.Name(), idx.Kind())
	}
	return nil
}

// diskSize sums file sizes so directory-shaped resources report the whole
// archive.
func diskSize(path string) uint64 {
	var total uint64
	_ = filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			total += uint64(info.Size())
		}
		return nil
	})
	return total
}

// InfoCommandBuilder constructs the cli.Command for "info".
func InfoCommandBuilder(cmd *cli.Command, cfg config.Type) *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "describe a resource",
		UsageText: `tabres info [options] SPEC`,
		Flags: []cli.Flag{
			NewDelimiterFlag("info", cfg.Source),
			NewEncodingFlag("info", cfg.Source),
		},
		Action: InfoCommandAction,
	}
}
