package service

import (
	"errors"
	"fmt"
	"strings"

	"vidshare/constant"
)

// ValidateUpload decides acceptance from the multipart header alone, before
// the raw file is written, so client rejections leave the upload directory
// untouched.
func ValidateUpload(mimeType string, size int64, title string) error {
	if _, ok := constant.AllowedVideoMIME[mimeType]; !ok {
		return errors.Join(ErrClientInput,
			fmt.Errorf("unsupported file type %q: only video uploads (mp4, webm, ogg, mov, avi, mkv) are allowed", mimeType))
	}
	if size > constant.MaxUploadBytes {
		return errors.Join(ErrClientInput,
			fmt.Errorf("file is too large: the maximum allowed size is %d MB", constant.MaxUploadBytes>>20))
	}
	if strings.TrimSpace(title) == "" {
		return errors.Join(ErrClientInput, errors.New("video title is required"))
	}
	return nil
}
