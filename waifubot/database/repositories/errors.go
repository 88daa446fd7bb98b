package repositories

import (
	"errors"
	"fmt"
)

// NotFoundError represents an entity not found error. Unknown-user
// reads in the ledger and profile stores never produce it; those return
// defaulted results instead. Only the card catalog and ownership
// lookups raise it.
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %v not found", nfe.Entity, nfe.ID)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
