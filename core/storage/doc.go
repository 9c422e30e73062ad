// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the enum manifest lifecycle needs: fetching the manifest that
// drives synchronization and publishing an updated one. This abstraction
// supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (see
// core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the manifest bucket.
//   - MakeBucket: Creates the bucket when publishing to a fresh deployment.
//   - GetObject: Retrieves the manifest as a stream.
//   - PutObject: Uploads a manifest (with size and options).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "enums")
package storage
