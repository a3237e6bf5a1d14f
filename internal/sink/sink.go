package sink

import (
	"fmt"

	"github.com/padraicb/go-timesheet-sync/internal/config"
)

// Sink is the external tabular store receiving normalized rows. Rows are
// positional string cells; row 0 is the header once written. A sync run
// reads first, computes, then performs exactly one bulk append.
type Sink interface {
	// LastRowIndex returns the number of rows currently present, header
	// included. Zero means the sink is empty.
	LastRowIndex() (int, error)
	// ReadColumn returns the cells of one column, top to bottom, header
	// included. Rows shorter than col contribute empty strings.
	ReadColumn(col int) ([]string, error)
	// AppendRows appends all rows immediately after the current last row
	// in a single bulk operation.
	AppendRows(rows [][]string) error
	// AppendIfEmpty writes header as the first row only when the sink has
	// zero rows, and reports whether it wrote.
	AppendIfEmpty(header []string) (bool, error)
	Close() error
}

// SinkNotFoundError means the configured target tab cannot be opened. It is
// fatal for the run and raised before any write.
type SinkNotFoundError struct {
	Kind   string
	Target string
	Err    error
}

func (e *SinkNotFoundError) Error() string {
	return fmt.Sprintf("%s sink target %s not found: %v", e.Kind, e.Target, e.Err)
}

func (e *SinkNotFoundError) Unwrap() error { return e.Err }

// SinkWriteError means a bulk append failed. Rows are not retried or
// partially recovered.
type SinkWriteError struct {
	Err error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("sink append failed: %v", e.Err)
}

func (e *SinkWriteError) Unwrap() error { return e.Err }

// Open builds the configured sink implementation.
func Open(cfg *config.Config) (Sink, error) {
	switch cfg.SinkKind {
	case "sqlite":
		return OpenSQLite(cfg.SinkID, cfg.SinkTab)
	default:
		return OpenCSV(cfg.SinkID, cfg.SinkTab)
	}
}

// Memory is an in-memory Sink used by tests and dry runs.
type Memory struct {
	Rows [][]string
}

func (m *Memory) LastRowIndex() (int, error) { return len(m.Rows), nil }

func (m *Memory) ReadColumn(col int) ([]string, error) {
	cells := make([]string, 0, len(m.Rows))
	for _, row := range m.Rows {
		if col < len(row) {
			cells = append(cells, row[col])
		} else {
			cells = append(cells, "")
		}
	}
	return cells, nil
}

func (m *Memory) AppendRows(rows [][]string) error {
	m.Rows = append(m.Rows, rows...)
	return nil
}

func (m *Memory) AppendIfEmpty(header []string) (bool, error) {
	if len(m.Rows) > 0 {
		return false, nil
	}
	m.Rows = append(m.Rows, header)
	return true, nil
}

func (m *Memory) Close() error { return nil }
