package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage contains single-key blob store abstractions.
// The serialized audio list lives under one key; implementations only need
// whole-object put and get.

// ErrNotExist is returned by Get when nothing is stored under the key.
var ErrNotExist = errors.New("object does not exist")

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage is a whole-object blob store addressed by key.
type Storage interface {
	// Put stores the reader's content under key, replacing anything already there.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get returns the object's content; ErrNotExist when the key is absent.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
}
