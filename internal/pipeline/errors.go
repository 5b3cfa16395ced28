package pipeline

import "fmt"

// DataUnavailableError indicates an input stage produced no usable data:
// the provider returned nothing for the symbol, or the headline corpus was
// missing or empty. The run aborts; there is no retry.
type DataUnavailableError struct {
	Stage  string // "prices" or "headlines"
	Symbol string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no %s data available for %s: %v", e.Stage, e.Symbol, e.Err)
	}
	return fmt.Sprintf("no %s data available for %s", e.Stage, e.Symbol)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}
