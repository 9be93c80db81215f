package client

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/foodlog/internal/attach"
)

// Image is a local file selected for upload.
type Image struct {
	Name      string
	MediaType string
	Data      []byte
}

// LoadImage reads path and guesses its media type from the extension, or
// from the content when the extension is unknown.
func LoadImage(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if mt == "" {
		mt = http.DetectContentType(data)
	}
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		mt = parsed
	}
	return &Image{Name: name, MediaType: mt, Data: data}, nil
}

// File converts img for local validation with attach.Validate.
func (img *Image) File() *attach.File {
	if img == nil {
		return nil
	}
	return &attach.File{Name: img.Name, MediaType: img.MediaType, Size: int64(len(img.Data)), Data: img.Data}
}
