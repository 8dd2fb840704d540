package generator

import (
	"fmt"
	"time"
)

// InvalidRangeError start instant is not before the end instant
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("generator: invalid range: start %s is not before end %s",
		e.Start.UTC().Format(time.RFC3339Nano), e.End.UTC().Format(time.RFC3339Nano))
}
