package uid

import "github.com/google/uuid"

// New generates an opaque unique identifier for new catalog records.
// Seed records keep their fixed short ids; everything created at runtime
// gets a UUID.
func New() string {
	return uuid.New().String()
}
