package table

import (
	"errors"
	"fmt"
)

// ErrNoConfiguration reports a source with no header line at all.
var ErrNoConfiguration = errors.New("no configuration line was found")

// ConfigError reports a malformed or out-of-range header line.
type ConfigError struct {
	Line   int
	Kind   ConfigErrorKind
	Reason string
}

type ConfigErrorKind int

const (
	BadHeader ConfigErrorKind = iota
	ImageCountRange
	AddressBitsRange
)

func (e *ConfigError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// RowError reports a data row that cannot be decoded.
type RowError struct {
	Line   int
	Kind   RowErrorKind
	Reason string
}

type RowErrorKind int

const (
	BadCharacter RowErrorKind = iota
	WrongLength
	DontCareInData
)

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}
