package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// Sentinel errors for store operations. Check with errors.Is.
var (
	// ErrAlreadyExists indicates a record with the same ID already exists,
	// typically from concurrent writes racing on the same note or edge.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrTransactionConflict indicates a SurrealDB transaction conflict.
	// Callers should typically retry or skip the operation.
	ErrTransactionConflict = errors.New("transaction conflict")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
)

// wrapQueryError maps known SurrealDB query failures onto the sentinel
// errors above. Unrecognized errors pass through unchanged.
func wrapQueryError(err error) error {
	if err == nil {
		return nil
	}

	var queryErr *surrealdb.QueryError
	if errors.As(err, &queryErr) {
		msg := queryErr.Message
		if strings.Contains(msg, "already exists") {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, msg)
		}
		if strings.Contains(msg, "Transaction conflict") {
			return fmt.Errorf("%w: %s", ErrTransactionConflict, msg)
		}
	}

	return err
}
