// Package memstore is an in-memory objectstore.Store for tests. Failures can
// be injected per operation and every call is recorded in order.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/foodlog/internal/objectstore"
)

// Call records one store invocation.
type Call struct {
	Op     string // "upload" or "remove"
	Bucket string
	Paths  []string
}

// Store is an in-memory objectstore.Store. UploadErr and RemoveErr, when
// set, fail the matching operation.
type Store struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	calls   []Call

	BaseURL   string
	UploadErr error
	RemoveErr error
}

var _ objectstore.Store = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
		BaseURL: "http://mem.local",
	}
}

func key(bucket, path string) string { return bucket + "/" + path }

func (s *Store) Upload(_ context.Context, bucket, path string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{Op: "upload", Bucket: bucket, Paths: []string{path}})
	if s.UploadErr != nil {
		return s.UploadErr
	}
	s.objects[key(bucket, path)] = append([]byte(nil), data...)
	s.types[key(bucket, path)] = contentType
	return nil
}

func (s *Store) PublicURL(bucket, path string) string {
	return objectstore.JoinURL(s.BaseURL, bucket, path)
}

func (s *Store) Remove(_ context.Context, bucket string, paths ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{Op: "remove", Bucket: bucket, Paths: append([]string(nil), paths...)})
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	for _, p := range paths {
		delete(s.objects, key(bucket, p))
		delete(s.types, key(bucket, p))
	}
	return nil
}

// Put seeds an object without recording a call.
func (s *Store) Put(bucket, path string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key(bucket, path)] = data
}

func (s *Store) Has(bucket, path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key(bucket, path)]
	return ok
}

func (s *Store) ContentType(bucket, path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.types[key(bucket, path)]
}

// Keys lists "bucket/path" of every stored object, sorted.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.objects))
	for k := range s.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s *Store) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Ops returns just the operation names of Calls, in order.
func (s *Store) Ops() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.calls))
	for _, c := range s.calls {
		out = append(out, c.Op)
	}
	return out
}
