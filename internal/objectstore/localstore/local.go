// Package localstore keeps objects as files under a root directory, laid out
// as {root}/{bucket}/{path}. The HTTP server exposes the tree read-only.
package localstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/foodlog/internal/filex"
	"github.com/dmitrijs2005/foodlog/internal/objectstore"
)

// Store is an objectstore.Store on the local filesystem.
type Store struct {
	root          string
	publicBaseURL string
}

var _ objectstore.Store = (*Store)(nil)

// New creates root if needed.
func New(root, publicBaseURL string) (*Store, error) {
	dir, err := filex.EnsureDir(root)
	if err != nil {
		return nil, err
	}
	return &Store{root: dir, publicBaseURL: publicBaseURL}, nil
}

// Root is the absolute directory objects are written under.
func (s *Store) Root() string { return s.root }

func (s *Store) Upload(ctx context.Context, bucket, path string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(bucket, path)
	if err != nil {
		return err
	}
	if err := filex.WriteFileAtomic(full, data); err != nil {
		return fmt.Errorf("write %s/%s: %w", bucket, path, err)
	}
	return nil
}

func (s *Store) PublicURL(bucket, path string) string {
	return objectstore.JoinURL(s.publicBaseURL, bucket, path)
}

func (s *Store) Remove(ctx context.Context, bucket string, paths ...string) error {
	var errs []error
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		full, err := s.resolve(bucket, p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s/%s: %w", bucket, p, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Store) resolve(bucket, path string) (string, error) {
	dir, err := filex.SafeJoin(s.root, bucket)
	if err != nil {
		return "", err
	}
	return filex.SafeJoin(dir, path)
}
