package attach

import "errors"

var (
	ErrPayloadTooLarge      = errors.New("file is larger than 5 MiB")
	ErrUnsupportedMediaType = errors.New("unsupported media type, expected jpeg, png, gif or webp")
	ErrUploadFailed         = errors.New("image upload failed")
	ErrRecordPersistFailed  = errors.New("saving record failed")
)
