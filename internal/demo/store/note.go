package store

import (
	"database/sql"
	"fmt"

	"github.com/silinternational/ecs-canary-deploy/internal/demo/model"
)

type NoteStore struct {
	db *sql.DB
}

func NewNoteStore(db *sql.DB) *NoteStore {
	return &NoteStore{db: db}
}

func scanNote(scanner interface{ Scan(...any) error }) (*model.Note, error) {
	var n model.Note
	var done int

	err := scanner.Scan(&n.ID, &n.Text, &done, &n.DateAdded)
	if err != nil {
		return nil, err
	}

	n.Done = done != 0
	return &n, nil
}

const noteCols = `id, text, done, date_added`

func (s *NoteStore) Create(text string, done bool) (*model.Note, error) {
	var d int
	if done {
		d = 1
	}

	result, err := s.db.Exec(`INSERT INTO notes (text, done) VALUES (?, ?)`, text, d)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *NoteStore) GetByID(id int64) (*model.Note, error) {
	row := s.db.QueryRow(`SELECT `+noteCols+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

// List returns all notes, newest first. The id tiebreak keeps ordering
// stable when several notes share a CURRENT_TIMESTAMP second.
func (s *NoteStore) List() ([]model.Note, error) {
	rows, err := s.db.Query(`SELECT ` + noteCols + ` FROM notes ORDER BY date_added DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func (s *NoteStore) Update(id int64, text string, done bool) (*model.Note, error) {
	var d int
	if done {
		d = 1
	}

	_, err := s.db.Exec(`UPDATE notes SET text = ?, done = ? WHERE id = ?`, text, d, id)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return s.GetByID(id)
}

func (s *NoteStore) ToggleDone(id int64) (*model.Note, error) {
	note, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	newDone := 0
	if !note.Done {
		newDone = 1
	}

	_, err = s.db.Exec(`UPDATE notes SET done = ? WHERE id = ?`, newDone, id)
	if err != nil {
		return nil, fmt.Errorf("toggle done: %w", err)
	}
	return s.GetByID(id)
}

func (s *NoteStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
