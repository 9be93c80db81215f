package attach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		file *File
		want error
	}{
		{"nil file", nil, nil},
		{"jpeg at limit", &File{MediaType: "image/jpeg", Size: MaxFileSize}, nil},
		{"jpg alias", &File{MediaType: "image/jpg", Size: 10}, nil},
		{"png with params", &File{MediaType: "image/PNG; charset=binary", Size: 10}, nil},
		{"gif", &File{MediaType: "image/gif", Size: 10}, nil},
		{"webp", &File{MediaType: "image/webp", Size: 10}, nil},
		{"one byte over", &File{MediaType: "image/jpeg", Size: MaxFileSize + 1}, ErrPayloadTooLarge},
		{"data larger than declared size", &File{MediaType: "image/png", Size: 1, Data: make([]byte, MaxFileSize+1)}, ErrPayloadTooLarge},
		{"size checked before type", &File{MediaType: "application/pdf", Size: MaxFileSize + 1}, ErrPayloadTooLarge},
		{"pdf", &File{MediaType: "application/pdf", Size: 10}, ErrUnsupportedMediaType},
		{"svg", &File{MediaType: "image/svg+xml", Size: 10}, ErrUnsupportedMediaType},
		{"empty type", &File{Size: 10}, ErrUnsupportedMediaType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(tt.file), tt.want)
			if tt.want == nil {
				assert.NoError(t, Validate(tt.file))
			}
		})
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		name, mediaType, want string
	}{
		{"salad.JPG", "image/jpeg", "jpg"},
		{"photo.jpeg", "image/jpeg", "jpeg"},
		{"archive.tar.png", "image/png", "png"},
		{"noext", "image/webp", "webp"},
		{"noext", "image/jpg", "jpg"},
		{"weird.p%g", "image/gif", "gif"},
		{"", "application/octet-stream", "bin"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Extension(tt.name, tt.mediaType), tt.name)
	}
}
