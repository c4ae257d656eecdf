package entity

import (
	"fmt"
	"strings"
)

// maxFilenameLength caps stored filenames. Uploads carry the client's own
// file name, so the limit guards the database column, not the filesystem.
const maxFilenameLength = 255

// ValidateFilename validates an uploaded document's file name.
// The name is metadata only and is never used as a filesystem path, but
// path separators are still rejected to keep stored names unambiguous.
func ValidateFilename(name string) error {
	if name == "" {
		return &ValidationError{Field: "filename", Message: "filename is required"}
	}

	if len(name) > maxFilenameLength {
		return &ValidationError{
			Field:   "filename",
			Message: fmt.Sprintf("filename must not exceed %d characters", maxFilenameLength),
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return &ValidationError{Field: "filename", Message: "filename cannot contain path separators"}
	}

	if strings.ContainsRune(name, '\x00') {
		return &ValidationError{Field: "filename", Message: "filename cannot contain null bytes"}
	}

	return nil
}
