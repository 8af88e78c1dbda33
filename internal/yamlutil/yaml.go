// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Config files and the file-backed settings store both go through it.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 4MB).
// It applies to Unmarshal and UnmarshalStrict; UnmarshalUnbounded skips it.
var MaxInputSize = 4 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// decodeOptions returns goccy decode options for the requested strictness.
func decodeOptions(strict bool) []yaml.DecodeOption {
	if strict {
		return []yaml.DecodeOption{yaml.Strict()}
	}
	return nil
}

// decode checks data against limit; a limit <= 0 accepts any size.
func decode(data []byte, v any, strict bool, limit int) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case limit > 0 && len(data) > limit:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), limit)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, decodeOptions(strict)...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Unmarshal decodes data into v, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	return decode(data, v, false, MaxInputSize)
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, true, MaxInputSize)
}

// UnmarshalUnbounded is Unmarshal without the input size limit. For data the
// program wrote itself, where refusing to read it back would lose it.
func UnmarshalUnbounded(data []byte, v any) error {
	return decode(data, v, false, 0)
}

// Marshal encodes v. Multi-line strings are written as literal blocks so the
// stored document text stays readable when the state file is opened by hand.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.UseLiteralStyleIfMultiline(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}

// MarshalQuoted encodes v in flow style with every string double-quoted and
// escaped. Used when a value cannot survive a literal block unchanged
// (carriage returns, significant leading spaces).
func MarshalQuoted(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.JSON())
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
