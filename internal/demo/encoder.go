package demo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/banana-coin-ledger/internal/config"
	"go.mongodb.org/mongo-driver/bson"
)

var ErrUnknownOutputFormat = errors.New("unknown output format")

// Encoder writes one record to w
type Encoder interface {
	Encode(w io.Writer, v any) error
}

// JSONEncoder writes indented JSON
type JSONEncoder struct{}

func (JSONEncoder) Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ExtJSONEncoder writes the BSON form of a record as indented relaxed extended JSON
type ExtJSONEncoder struct{}

func (ExtJSONEncoder) Encode(w io.Writer, v any) error {
	data, err := bson.MarshalExtJSONIndent(v, false, false, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode extended JSON: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write extended JSON: %w", err)
	}
	return nil
}

// NewEncoder returns the encoder for a configured output format
func NewEncoder(format string) (Encoder, error) {
	switch format {
	case config.OutputFormatJSON:
		return JSONEncoder{}, nil
	case config.OutputFormatExtJSON:
		return ExtJSONEncoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOutputFormat, format)
	}
}
