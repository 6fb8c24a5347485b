// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package remote mirrors a file-shaped resource through an S3 object: Load
// pulls the object down to the resource's local path first, Save pushes the
// freshly written file back up. Combined with the cache package this gives
// a shared, remote memo store with no change to the calling code.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/staranto/tabresgo/frame"
	"github.com/staranto/tabresgo/resource"
)

// Client is the slice of the S3 API the mirror needs. *s3.Client satisfies
// it; tests use an in-memory stub.
type Client interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 wraps a local resource with an S3 object at bucket/key. The object key
// is fixed; when the inner resource carries a path template, derive one
// mirror per resolved key yourself rather than relying on WithPath, which
// only rewrites the local path.
type S3 struct {
	ctx    context.Context
	client Client
	bucket string
	key    string
	inner  resource.Resource
}

// NewS3 builds the mirror. Directory-shaped resources (the columnar
// variant) cannot be mirrored through a single object and are rejected.
func NewS3(ctx context.Context, client Client, bucket, key string, inner resource.Resource) (*S3, error) {
	if _, ok := inner.(*resource.Columnar); ok {
		return nil, fmt.Errorf("s3 mirror for %s: columnar resources are directories and cannot be mirrored", inner.Path())
	}
	return &S3{ctx: ctx, client: client, bucket: bucket, key: key, inner: inner}, nil
}

func (r *S3) Path() string { return r.inner.Path() }

func (r *S3) WithPath(path string) resource.Resource {
	return &S3{ctx: r.ctx, client: r.client, bucket: r.bucket, key: r.key, inner: r.inner.WithPath(path)}
}

// Load fetches the object to the local path, then delegates. A failed fetch
// reports the resource as unavailable so the cache treats it as a miss.
func (r *S3) Load() (*frame.Frame, error) {
	out, err := r.client.GetObject(r.ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", r.bucket, r.key, asUnavailable(err))
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", r.bucket, r.key, asUnavailable(err))
	}
	if err := os.MkdirAll(filepath.Dir(r.inner.Path()), 0o755); err != nil { //nolint:mnd
		return nil, fmt.Errorf("mirror %s: %w", r.inner.Path(), err)
	}
	if err := os.WriteFile(r.inner.Path(), data, 0o644); err != nil { //nolint:mnd
		return nil, fmt.Errorf("mirror %s: %w", r.inner.Path(), err)
	}

	return r.inner.Load()
}

// Save delegates, then uploads the written file.
func (r *S3) Save(f *frame.Frame) error {
	if err := r.inner.Save(f); err != nil {
		return err
	}
	data, err := os.ReadFile(r.inner.Path())
	if err != nil {
		return fmt.Errorf("mirror %s: %w", r.inner.Path(), err)
	}
	if _, err := r.client.PutObject(r.ctx, &s3.PutObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
		Body:   bytes.NewReader(data),
	}); err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", r.bucket, r.key, err)
	}
	return nil
}

// asUnavailable keeps the original error chain while marking the failure as
// a cache miss.
func asUnavailable(err error) error {
	return errors.Join(resource.ErrUnavailable, err)
}
