// Package storage wraps the MinIO Go client for the report bucket.
//
// The Client interface exposes only the operations the report exporter needs,
// so tests can substitute the testify mock in core/storage/mocks. NewClient
// works against AWS S3 and self-hosted MinIO alike; the endpoint may be given
// with or without scheme.
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
