package repository

import "fmt"

// PersistenceError means a snapshot could not be written for a client.
type PersistenceError struct {
	ClientID string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting snapshot for client %s: %v", e.ClientID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
