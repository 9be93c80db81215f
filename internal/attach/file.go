package attach

import (
	"mime"
	"path"
	"strings"
)

// MaxFileSize is the largest accepted upload.
const MaxFileSize = 5 << 20

// allowed media types and the extension used when the file name has none.
var mediaTypeExt = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// File is a user-selected upload candidate.
type File struct {
	Name      string
	MediaType string
	Size      int64
	Data      []byte
}

func (f *File) size() int64 {
	if n := int64(len(f.Data)); n > f.Size {
		return n
	}
	return f.Size
}

// Validate checks f without side effects. A nil file is valid.
func Validate(f *File) error {
	if f == nil {
		return nil
	}
	if f.size() > MaxFileSize {
		return ErrPayloadTooLarge
	}
	if _, ok := mediaTypeExt[normalizeMediaType(f.MediaType)]; !ok {
		return ErrUnsupportedMediaType
	}
	return nil
}

func normalizeMediaType(mt string) string {
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		return parsed
	}
	return strings.ToLower(strings.TrimSpace(mt))
}

// Extension picks the stored file extension: the original name's extension
// when it is a plain alphanumeric token, else one derived from the media type.
func Extension(name, mediaType string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if ext != "" && len(ext) <= 8 && isAlnum(ext) {
		return ext
	}
	if e, ok := mediaTypeExt[normalizeMediaType(mediaType)]; ok {
		return e
	}
	return "bin"
}

func isAlnum(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
