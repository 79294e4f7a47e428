package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// FakeClient keeps uploaded objects in memory. Used by package tests.
type FakeClient struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

// NewFakeClient creates an empty in-memory client.
func NewFakeClient() *FakeClient {
	return &FakeClient{Objects: map[string][]byte{}}
}

// Upload records the object bytes and returns a fake public URL.
func (f *FakeClient) Upload(_ context.Context, objectName string, data io.Reader) (string, error) {
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Objects[objectName] = b
	return fmt.Sprintf("https://storage.example.com/%s", objectName), nil
}
