// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the storefront needs: checking whether an item picture exists,
// uploading and fetching pictures, and purging the picture prefix during a
// full store reset. The abstraction supports both AWS S3 and self-hosted
// MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easy to mock storage interactions for unit testing (see
// core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	info, err := client.StatObject(ctx, cfg.Storage.Bucket, "pictures/B2.png", minio.StatObjectOptions{})
package storage
