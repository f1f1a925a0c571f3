package services

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// jsonOrNil keeps raw bytes as-is, mapping an absent or literal null payload
// to a SQL NULL.
func jsonOrNil(raw json.RawMessage) datatypes.JSON {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	return datatypes.JSON(trimmed)
}

// parseStrictUUID accepts only canonical RFC 4122 ids of versions 1-5.
func parseStrictUUID(s string) (uuid.UUID, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 36 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	if v := id.Version(); v < 1 || v > 5 {
		return uuid.Nil, false
	}
	if id.Variant() != uuid.RFC4122 {
		return uuid.Nil, false
	}
	return id, true
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
