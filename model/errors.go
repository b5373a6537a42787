package model

import "fmt"

// ParseError reports malformed MTXT text. Line is 1-based; Token is
// the offending piece of the line when one can be singled out.
type ParseError struct {
	Line  int
	Token string
	Msg   string
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Token != "":
		return fmt.Sprintf("line %d: %s %q", e.Line, e.Msg, e.Token)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	default:
		return e.Msg
	}
}

// ConversionError reports malformed MIDI bytes on decode, or a MIDI
// encode that could not produce output (only the file-write path).
type ConversionError struct {
	Msg string
	Err error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
