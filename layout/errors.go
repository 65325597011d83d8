package layout

import (
	"errors"
	"fmt"
)

// Sentinel errors for the layout package.
var (
	// ErrUnsupportedRunKind is returned when a text source yields a run that
	// is neither characters, an end of line nor an embedded object.
	ErrUnsupportedRunKind = errors.New("layout: unsupported text run kind")

	// ErrSourceExhausted is returned when a run is requested past the end of
	// the text source.
	ErrSourceExhausted = errors.New("layout: text source exhausted")

	// ErrNoMeasurer is returned when text has to be measured but RunOptions
	// carries no Measurer.
	ErrNoMeasurer = errors.New("layout: no text measurer configured")
)

// UnsupportedRunKindError reports the offending run and the source index it
// was found at.
type UnsupportedRunKindError struct {
	Index int
	Run   TextRun
}

func (e *UnsupportedRunKindError) Error() string {
	return fmt.Sprintf("layout: unsupported text run kind %T at index %d", e.Run, e.Index)
}

// Is makes errors.Is(err, ErrUnsupportedRunKind) match.
func (e *UnsupportedRunKindError) Is(target error) bool {
	return target == ErrUnsupportedRunKind
}
