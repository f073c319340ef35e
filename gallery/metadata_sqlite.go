package gallery

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteIndex keeps the index in a SQLite table instead of meta.json.
// The database should live outside the image directory so a delete-all wipe
// does not remove it.
type SQLiteIndex struct {
	db *sql.DB
}

// NewSQLiteIndex opens (or creates) the database at path, ensures its parent
// directory exists, and creates the meta table.
func NewSQLiteIndex(path string) (*SQLiteIndex, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &StorageError{Op: "create database dir", Filename: path, Err: err}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Op: "open database", Filename: path, Err: err}
	}
	// WAL lets the list endpoint read while a save is writing; busy_timeout
	// makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, &StorageError{Op: "configure database", Filename: path, Err: err}
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &SQLiteIndex{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, &StorageError{Op: "migrate database", Filename: path, Err: err}
	}
	return s, nil
}

func (s *SQLiteIndex) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS meta (
    filename TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    price TEXT NOT NULL
);
`)
	return err
}

func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

func (s *SQLiteIndex) LoadAll() (Index, error) {
	rows, err := s.db.Query(`SELECT filename, name, price FROM meta`)
	if err != nil {
		return nil, &StorageError{Op: "read metadata", Err: err}
	}
	defer rows.Close()

	idx := Index{}
	for rows.Next() {
		var filename string
		var rec Record
		if err := rows.Scan(&filename, &rec.Name, &rec.Price); err != nil {
			return nil, &StorageError{Op: "read metadata", Err: err}
		}
		idx[filename] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "read metadata", Err: err}
	}
	return idx, nil
}

// SaveAll replaces every row in one transaction.
func (s *SQLiteIndex) SaveAll(idx Index) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &StorageError{Op: "write metadata", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM meta`); err != nil {
		return &StorageError{Op: "write metadata", Err: err}
	}
	stmt, err := tx.Prepare(`INSERT INTO meta (filename, name, price) VALUES (?, ?, ?)`)
	if err != nil {
		return &StorageError{Op: "write metadata", Err: err}
	}
	defer stmt.Close()
	for filename, rec := range idx {
		if _, err := stmt.Exec(filename, rec.Name, rec.Price); err != nil {
			return &StorageError{Op: "write metadata", Filename: filename, Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "write metadata", Err: err}
	}
	return nil
}

func (s *SQLiteIndex) Get(filename string) (Record, bool, error) {
	var rec Record
	err := s.db.QueryRow(`SELECT name, price FROM meta WHERE filename = ?`, filename).
		Scan(&rec.Name, &rec.Price)
	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, &StorageError{Op: "read metadata", Filename: filename, Err: err}
	}
	return rec, true, nil
}

func (s *SQLiteIndex) Upsert(filename, name, price string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO meta (filename, name, price) VALUES (?, ?, ?)`,
		filename, name, price)
	if err != nil {
		return &StorageError{Op: "write metadata", Filename: filename, Err: err}
	}
	return nil
}

func (s *SQLiteIndex) Remove(filename string) error {
	if _, err := s.db.Exec(`DELETE FROM meta WHERE filename = ?`, filename); err != nil {
		return &StorageError{Op: "remove metadata", Filename: filename, Err: err}
	}
	return nil
}

func (s *SQLiteIndex) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM meta`); err != nil {
		return &StorageError{Op: "clear metadata", Err: err}
	}
	return nil
}
