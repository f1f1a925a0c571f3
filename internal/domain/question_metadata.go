package domain

import (
	"bytes"
	"encoding/json"

	"gorm.io/datatypes"
)

// Metadata is the type-specific payload of a question. The stored bytes are
// never rewritten; these variants are a read-side view.
type Metadata interface {
	Kind() string
}

type NoMetadata struct{}

func (NoMetadata) Kind() string { return "none" }

type SelectMetadata struct {
	Options []string `json:"options"`
}

func (SelectMetadata) Kind() string { return string(QuestionTypeSelect) }

// UntypedMetadata carries payloads for types without a known shape, and
// select payloads that do not decode.
type UntypedMetadata struct {
	Raw json.RawMessage
}

func (UntypedMetadata) Kind() string { return "untyped" }

func ParseMetadata(t QuestionType, raw []byte) Metadata {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return NoMetadata{}
	}
	if t == QuestionTypeSelect {
		var sm SelectMetadata
		if err := json.Unmarshal(trimmed, &sm); err == nil && sm.Options != nil {
			return sm
		}
	}
	return UntypedMetadata{Raw: json.RawMessage(append([]byte(nil), trimmed...))}
}

// EncodeMetadata produces the stored form of m. NoMetadata encodes to nil.
func EncodeMetadata(m Metadata) (datatypes.JSON, error) {
	switch v := m.(type) {
	case nil, NoMetadata:
		return nil, nil
	case UntypedMetadata:
		return datatypes.JSON(v.Raw), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return datatypes.JSON(b), nil
	}
}
