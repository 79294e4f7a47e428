// Package storage uploads user supplied files to an object store and
// hands back the public URL that gets persisted on the owning record.
package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// Client is what controllers depend on. Tests substitute an in-memory fake.
type Client interface {
	Upload(ctx context.Context, objectName string, data io.Reader) (string, error)
}

// CloudStorageClient uploads objects to a Google Cloud Storage bucket.
type CloudStorageClient struct {
	BucketName string
	Client     *storage.Client
}

// NewCloudStorageClient creates a storage client bound to the given bucket.
func NewCloudStorageClient(ctx context.Context, bucketName string) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %v", err)
	}
	return &CloudStorageClient{
		BucketName: bucketName,
		Client:     client,
	}, nil
}

// Upload streams data into the bucket and returns the public object URL.
func (c *CloudStorageClient) Upload(ctx context.Context, objectName string, data io.Reader) (string, error) {
	bucket := c.Client.Bucket(c.BucketName)
	obj := bucket.Object(objectName)
	wc := obj.NewWriter(ctx)
	if _, err := io.Copy(wc, data); err != nil {
		return "", fmt.Errorf("failed to write data to object: %v", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close object writer: %v", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.BucketName, objectName), nil
}
