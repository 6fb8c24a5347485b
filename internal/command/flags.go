// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewDelimiterFlag applies to CSV endpoints of a command.
func NewDelimiterFlag(ns string, cfgSource string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "delimiter",
		Aliases: []string{"d"},
		Usage:   "field delimiter for csv resources",
		Sources: cli.NewValueSourceChain(
			yaml.YAML(ns+"."+"delimiter", altsrc.StringSourcer(cfgSource)),
			yaml.YAML("delimiter", altsrc.StringSourcer(cfgSource)),
		),
		Value: ",",
		Validator: func(value string) error {
			if len([]rune(value)) != 1 {
				return fmt.Errorf("delimiter must be a single character, got %q", value)
			}
			return nil
		},
	}
}

// NewEncodingFlag applies to CSV endpoints of a command.
func NewEncodingFlag(ns string, cfgSource string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "encoding",
		Aliases: []string{"e"},
		Usage:   "character encoding for csv resources (IANA name)",
		Sources: cli.NewValueSourceChain(
			yaml.YAML(ns+"."+"encoding", altsrc.StringSourcer(cfgSource)),
			yaml.YAML("encoding", altsrc.StringSourcer(cfgSource)),
		),
	}
}

// NewOutputFlag selects the rendering used by inspection commands.
func NewOutputFlag(ns string, cfgSource string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Sources: cli.NewValueSourceChain(
			yaml.YAML(ns+"."+"output", altsrc.StringSourcer(cfgSource)),
			yaml.YAML("output", altsrc.StringSourcer(cfgSource)),
		),
		Value: "text",
		Validator: func(value string) error {
			switch value {
			case "text", "json", "yaml":
				return nil
			}
			return fmt.Errorf("output must be text, json, or yaml, got %q", value)
		},
	}
}

// csvOptions translates the flag values into CSV resource options for
// ParseSpec.
func csvOptions(cmd *cli.Command) (delim rune, encoding string) {
	delim = ','
	if d := cmd.String("delimiter"); d != "" {
		delim = []rune(d)[0]
	}
	return delim, cmd.String("encoding")
}
