package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Codec errors for tagged variants
var (
	ErrMalformedVariant = errors.New("malformed tagged variant")
	ErrUnknownVariant   = errors.New("unknown variant")
)

// NoFields is the payload of a variant that carries no data. It encodes as an empty record.
type NoFields struct{}

// Payload decodes the named fields of a variant into v. Every name in required must be
// present and non-null in the record.
type Payload func(v any, required ...string) error

// MarshalVariantJSON encodes a variant as a single-key record: {"<tag>": <fields>}
func MarshalVariantJSON(tag string, fields any) ([]byte, error) {
	if tag == "" {
		return nil, fmt.Errorf("%w: empty tag", ErrMalformedVariant)
	}
	return json.Marshal(map[string]any{tag: fields})
}

// UnmarshalVariantJSON splits a single-key record into its tag and payload.
// A bare JSON string is accepted as the tag of a variant without fields; its payload
// fails for callers that need fields.
func UnmarshalVariantJSON(data []byte) (string, Payload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var tag string
		if err := json.Unmarshal(trimmed, &tag); err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrMalformedVariant, err)
		}
		return tag, func(any, ...string) error {
			return fmt.Errorf("%w: %s: fields missing", ErrMalformedVariant, tag)
		}, nil
	}

	var record map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedVariant, err)
	}
	if len(record) != 1 {
		return "", nil, fmt.Errorf("%w: expected exactly one key, got %d", ErrMalformedVariant, len(record))
	}

	for tag, fields := range record {
		return tag, jsonPayload(tag, fields), nil
	}
	return "", nil, ErrMalformedVariant
}

func jsonPayload(tag string, fields json.RawMessage) Payload {
	return func(v any, required ...string) error {
		var present map[string]json.RawMessage
		if err := json.Unmarshal(fields, &present); err != nil || present == nil {
			return fmt.Errorf("%w: %s: fields must be a record", ErrMalformedVariant, tag)
		}
		for _, name := range required {
			value, ok := present[name]
			if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
				return fmt.Errorf("%w: %s: missing field %q", ErrMalformedVariant, tag, name)
			}
		}

		if err := json.Unmarshal(fields, v); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedVariant, tag, err)
		}
		return nil
	}
}

// MarshalVariantBSON encodes a variant as a single-element document
func MarshalVariantBSON(tag string, fields any) ([]byte, error) {
	if tag == "" {
		return nil, fmt.Errorf("%w: empty tag", ErrMalformedVariant)
	}
	return bson.Marshal(bson.D{{Key: tag, Value: fields}})
}

// UnmarshalVariantBSON splits a single-element document into its tag and payload
func UnmarshalVariantBSON(data []byte) (string, Payload, error) {
	doc := bson.Raw(data)
	if err := doc.Validate(); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedVariant, err)
	}

	elems, err := doc.Elements()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedVariant, err)
	}
	if len(elems) != 1 {
		return "", nil, fmt.Errorf("%w: expected exactly one key, got %d", ErrMalformedVariant, len(elems))
	}

	tag, value := elems[0].Key(), elems[0].Value()
	return tag, func(v any, required ...string) error {
		fields, ok := value.DocumentOK()
		if !ok {
			return fmt.Errorf("%w: %s: fields must be a document, got %s", ErrMalformedVariant, tag, value.Type)
		}
		for _, name := range required {
			field, err := fields.LookupErr(name)
			if err != nil || field.Type == bson.TypeNull {
				return fmt.Errorf("%w: %s: missing field %q", ErrMalformedVariant, tag, name)
			}
		}
		if err := value.Unmarshal(v); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedVariant, tag, err)
		}
		return nil
	}, nil
}
