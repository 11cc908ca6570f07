// Package storage provides access to the remote font library bucket.
//
// It wraps the MinIO Go client behind a small Client interface covering the
// operations the library feature needs: checking the bucket, listing fonts,
// downloading them, and uploading new ones. Both AWS S3 and self-hosted MinIO
// are supported.
//
// The interface makes storage interactions easy to mock in unit tests (see
// core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
