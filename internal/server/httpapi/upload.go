package httpapi

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dmitrijs2005/foodlog/internal/attach"
	"github.com/gin-gonic/gin"
)

// ImageField is the multipart field carrying the optional image.
const ImageField = "image"

// maxRequestBody leaves room for the form fields next to a maximal image.
const maxRequestBody = attach.MaxFileSize + 1<<20

// readImage returns the uploaded image, or nil when none was sent. Files over
// the size limit are returned without their content so validation rejects
// them before anything is read.
func readImage(c *gin.Context) (*attach.File, error) {
	fh, err := c.FormFile(ImageField)
	if err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return nil, nil
		case errors.As(err, &tooBig):
			return nil, attach.ErrPayloadTooLarge
		default:
			return nil, fmt.Errorf("%w: %w", errBadForm, err)
		}
	}

	f := &attach.File{
		Name:      fh.Filename,
		MediaType: fh.Header.Get("Content-Type"),
		Size:      fh.Size,
	}
	if fh.Size > attach.MaxFileSize {
		return f, nil
	}

	f.Data, err = readAll(fh)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}
