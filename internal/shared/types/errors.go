package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSchema              = errors.New("input does not match the expected transaction schema")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUnsupportedInput    = errors.New("unsupported input format")
	ErrUnsupportedArtifact = errors.New("artifact not supported by this renderer")
	ErrNoData              = errors.New("no data to render")
)

// SchemaError lista as colunas obrigatórias ausentes na entrada.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Unwrap permite errors.Is(err, ErrSchema).
func (e *SchemaError) Unwrap() error {
	return ErrSchema
}
