package sink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CSVSink stores rows in a CSV file named after the tab inside the sink
// directory.
type CSVSink struct {
	path string
}

// OpenCSV opens (or prepares) the tab file under dir. The directory must
// already exist; a missing directory is a SinkNotFoundError.
func OpenCSV(dir, tab string) (*CSVSink, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &SinkNotFoundError{Kind: "csv", Target: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &SinkNotFoundError{Kind: "csv", Target: dir, Err: fmt.Errorf("not a directory")}
	}
	return &CSVSink{path: filepath.Join(dir, tab+".csv")}, nil
}

// Path returns the backing file path.
func (s *CSVSink) Path() string { return s.path }

func (s *CSVSink) readAll() ([][]string, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *CSVSink) LastRowIndex() (int, error) {
	rows, err := s.readAll()
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (s *CSVSink) ReadColumn(col int) ([]string, error) {
	rows, err := s.readAll()
	if err != nil {
		return nil, err
	}
	cells := make([]string, 0, len(rows))
	for _, row := range rows {
		if col < len(row) {
			cells = append(cells, row[col])
		} else {
			cells = append(cells, "")
		}
	}
	return cells, nil
}

func (s *CSVSink) AppendRows(rows [][]string) error {
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return &SinkWriteError{Err: err}
	}
	defer file.Close()

	w := csv.NewWriter(file)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return &SinkWriteError{Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &SinkWriteError{Err: err}
	}
	return nil
}

func (s *CSVSink) AppendIfEmpty(header []string) (bool, error) {
	count, err := s.LastRowIndex()
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := s.AppendRows([][]string{header}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CSVSink) Close() error { return nil }
