package entities

import "github.com/google/uuid"

// Location is a named venue an event may reference.
type Location struct {
	ID      uuid.UUID
	Name    string
	Address string
	MapURL  string
}
