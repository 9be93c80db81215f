// Package objectstore defines the object store capability used for meal
// photos and avatars, together with the durable reference that records keep
// to the objects they own.
package objectstore

import "context"

// Ref points at a stored object. URL is what clients render, Path is the
// object's key inside its bucket and is what removal uses.
type Ref struct {
	URL  string `json:"url"`
	Path string `json:"path,omitempty"`
}

// Store is a bucketed blob store.
type Store interface {
	// Upload writes data at bucket/path, replacing any existing object.
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
	// PublicURL returns the publicly reachable URL of bucket/path. It does
	// not check that the object exists.
	PublicURL(bucket, path string) string
	// Remove deletes the given paths. Missing objects are not an error.
	Remove(ctx context.Context, bucket string, paths ...string) error
}
