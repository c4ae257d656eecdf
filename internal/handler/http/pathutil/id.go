package pathutil

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractUUID extracts and validates a UUID from a URL path.
// It removes the specified prefix and parses the remaining string as a UUID.
//
// Example:
//
//	id, err := ExtractUUID("/documents/3b9e6a54-97b2-4f0e-9e1b-2f4f9a6f8d21", "/documents/")
func ExtractUUID(path, prefix string) (uuid.UUID, error) {
	idStr := strings.TrimPrefix(path, prefix)
	if idStr == "" || strings.ContainsRune(idStr, '/') {
		return uuid.Nil, ErrInvalidID
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
