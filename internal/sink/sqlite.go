package sink

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"
)

// sqliteColumns is the widest row the table can hold. Rows keep their
// positional order via an autoincrement rowid so the tabular contract
// (header first, append after last row) carries over unchanged.
const sqliteColumns = 14

var tabNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSink stores rows in one table of a SQLite database file.
type SQLiteSink struct {
	db    *sql.DB
	table string
}

// OpenSQLite opens the database at path and ensures the tab's table exists.
// A missing parent directory or an invalid tab name is a SinkNotFoundError.
func OpenSQLite(path, tab string) (*SQLiteSink, error) {
	if !tabNamePattern.MatchString(tab) {
		return nil, &SinkNotFoundError{Kind: "sqlite", Target: tab, Err: fmt.Errorf("invalid table name")}
	}
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, &SinkNotFoundError{Kind: "sqlite", Target: path, Err: err}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &SinkNotFoundError{Kind: "sqlite", Target: path, Err: err}
	}

	s := &SQLiteSink{db: db, table: tab}
	if err := s.ensureTable(); err != nil {
		db.Close()
		return nil, &SinkNotFoundError{Kind: "sqlite", Target: tab, Err: err}
	}
	return s, nil
}

func (s *SQLiteSink) ensureTable() error {
	cols := make([]string, sqliteColumns)
	for i := range cols {
		cols[i] = fmt.Sprintf("c%d TEXT NOT NULL DEFAULT ''", i)
	}
	stmt := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (pos INTEGER PRIMARY KEY AUTOINCREMENT, %s)",
		s.table, strings.Join(cols, ", "))
	_, err := s.db.Exec(stmt)
	return err
}

func (s *SQLiteSink) LastRowIndex() (int, error) {
	var count int
	err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table)).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *SQLiteSink) ReadColumn(col int) ([]string, error) {
	if col < 0 || col >= sqliteColumns {
		return nil, fmt.Errorf("column %d out of range", col)
	}
	rows, err := s.db.Query(fmt.Sprintf("SELECT c%d FROM %s ORDER BY pos", col, s.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cells []string
	for rows.Next() {
		var cell string
		if err := rows.Scan(&cell); err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
	return cells, rows.Err()
}

func (s *SQLiteSink) AppendRows(rows [][]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &SinkWriteError{Err: err}
	}

	cols := make([]string, sqliteColumns)
	marks := make([]string, sqliteColumns)
	for i := range cols {
		cols[i] = fmt.Sprintf("c%d", i)
		marks[i] = "?"
	}
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		s.table, strings.Join(cols, ", "), strings.Join(marks, ", ")))
	if err != nil {
		tx.Rollback()
		return &SinkWriteError{Err: err}
	}
	defer stmt.Close()

	for _, row := range rows {
		args := make([]interface{}, sqliteColumns)
		for i := range args {
			if i < len(row) {
				args[i] = row[i]
			} else {
				args[i] = ""
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return &SinkWriteError{Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &SinkWriteError{Err: err}
	}
	return nil
}

func (s *SQLiteSink) AppendIfEmpty(header []string) (bool, error) {
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

func (s *SQLiteSink) Close() error { return s.db.Close() }
