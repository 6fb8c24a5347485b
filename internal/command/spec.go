// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/staranto/tabresgo/internal/aws"
	"github.com/staranto/tabresgo/remote"
	"github.com/staranto/tabresgo/resource"
)

// ParseSpec turns a resource spec argument into a Resource. Specs look like
//
//	csv:data/a.csv         explicit format prefix (bin|csv|geojson|col)
//	data/a.csv             format inferred from the extension, directories
//	                       (or no extension) mean a columnar archive
//	csv:s3://bucket/k.csv  mirrored through S3 via a local temp copy
func ParseSpec(ctx context.Context, spec string, delim rune, encoding string) (resource.Resource, error) {
	format, rest := splitFormat(spec)

	if strings.HasPrefix(rest, "s3://") {
		return parseS3(ctx, format, rest, delim, encoding)
	}

	if format == "" {
		format = inferFormat(rest)
	}
	return build(format, rest, delim, encoding)
}

func splitFormat(spec string) (format, rest string) {
	for _, f := range []string{"bin", "csv", "geojson", "col"} {
		if strings.HasPrefix(spec, f+":") {
			return f, spec[len(f)+1:]
		}
	}
	return "", spec
}

func inferFormat(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".csv":
		return "csv"
	case ".bin", ".msgpack":
		return "bin"
	case ".geojson", ".json":
		return "geojson"
	}
	return "col"
}

func build(format, p string, delim rune, encoding string) (resource.Resource, error) {
	switch format {
	case "bin":
		return resource.NewBinary(p), nil
	case "csv":
		opts := []resource.CSVOption{resource.WithDelimiter(delim)}
		if encoding != "" {
			opts = append(opts, resource.WithEncoding(encoding))
		}
		return resource.NewCSV(p, opts...), nil
	case "geojson":
		return resource.NewGeoJSON(p), nil
	case "col":
		return resource.NewColumnar(p), nil
	}
	return nil, fmt.Errorf("unknown resource format %q", format)
}

// parseS3 builds the local resource under the user temp dir and wraps it
// with the S3 mirror.
func parseS3(ctx context.Context, format, rest string, delim rune, encoding string) (resource.Resource, error) {
	parts := strings.SplitN(strings.TrimPrefix(rest, "s3://"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("s3 spec must look like s3://bucket/key, got %q", rest)
	}
	bucket, key := parts[0], parts[1]

	if format == "" {
		format = inferFormat(key)
	}
	if format == "col" {
		return nil, fmt.Errorf("columnar resources cannot be mirrored through s3")
	}

	local := filepath.Join(os.TempDir(), "tabres", bucket, filepath.FromSlash(path.Clean(key)))
	inner, err := build(format, local, delim, encoding)
	if err != nil {
		return nil, err
	}

	cfg, err := aws.LoadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return remote.NewS3(ctx, aws.NewS3(cfg), bucket, key, inner)
}
