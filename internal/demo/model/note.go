package model

import "time"

type Note struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	DateAdded time.Time `json:"date_added"`
}
