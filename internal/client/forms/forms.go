// Package forms holds the local working state of one edit in the terminal
// client: the fields, the selected image, its preview and the last error.
// A form runs at most one submission at a time.
package forms

import (
	"errors"
	"sync"

	"github.com/dmitrijs2005/foodlog/internal/attach"
	"github.com/dmitrijs2005/foodlog/internal/client/client"
)

// ErrBusy is returned when a submission is already in flight.
var ErrBusy = errors.New("another save is still in progress")

// imageState is shared by the meal and profile forms.
type imageState struct {
	mu      sync.Mutex
	busy    bool
	image   *client.Image
	preview string
	lastErr error
	warning string
}

// SelectImage stages img for the next submission after checking it locally.
// A rejected image leaves the previous selection in place.
func (s *imageState) SelectImage(img *client.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := attach.Validate(img.File()); err != nil {
		s.lastErr = err
		return err
	}
	s.image = img
	if img != nil {
		s.preview = "file://" + img.Name
	}
	s.lastErr = nil
	return nil
}

// Preview is the URL of the stored image, or the staged file name.
func (s *imageState) Preview() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

func (s *imageState) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *imageState) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Warning is the server's note about an image that was not saved.
func (s *imageState) Warning() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warning
}

// begin marks the form busy and returns the staged image.
func (s *imageState) begin() (*client.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return nil, ErrBusy
	}
	s.busy = true
	return s.image, nil
}

// end clears the busy flag. On failure only lastErr changes.
func (s *imageState) end(err error, imageURL, warning string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	s.lastErr = err
	if err != nil {
		return
	}
	s.image = nil
	s.preview = imageURL
	s.warning = warning
}
