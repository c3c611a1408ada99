package models

import "time"

// Message is a single chat log entry. IDs are assigned by the store in
// append order; the JSON field names match what clients already consume.
type Message struct {
	ID        int64     `json:"id"`
	Author    string    `json:"user"`
	Body      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
