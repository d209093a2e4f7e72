package report

import (
	"errors"
	"fmt"
)

// ErrReportHasError is returned by [Mapper.Map] for reports that carry an API
// error code. Nothing is written for such reports.
var ErrReportHasError = errors.New("report carries an API error")

// Sink receives mapped state values.
type Sink interface {
	Write(name string, value any, ack bool)
}

// Mapper writes every catalog field of a report to a [Sink].
type Mapper struct {
	fields []Field
}

// NewMapper creates a [Mapper] over the full field catalog.
func NewMapper() *Mapper {
	return &Mapper{fields: catalog}
}

// Map writes each field of r with ack=true, in catalog order. Compass labels
// are produced in language.
//
// Mapping stops at the first failing field; values written before the
// failure stay written. The number of writes is returned in every case.
func (m *Mapper) Map(r *Report, language string, sink Sink) (int, error) {
	if r == nil {
		return 0, ErrEmptyDocument
	}
	if code, ok := r.APIError(); ok {
		return 0, fmt.Errorf("%w: %s", ErrReportHasError, code)
	}

	writes := 0
	for _, f := range m.fields {
		v, err := f.read(r, language)
		if err != nil {
			return writes, fmt.Errorf("failed to map %s: %w", f.Name, err)
		}
		sink.Write(f.Name, v, true)
		writes++
	}
	return writes, nil
}
