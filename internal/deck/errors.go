package deck

import (
	"errors"
	"fmt"
)

// CommanderNotFoundError indicates that a named commander could not be
// resolved against the card metadata provider. It aborts the whole build.
type CommanderNotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *CommanderNotFoundError) Error() string {
	return fmt.Sprintf("commander not found: %s", e.Name)
}

// IsCommanderNotFound returns true if the error chain contains a
// *CommanderNotFoundError.
func IsCommanderNotFound(err error) bool {
	var cnf *CommanderNotFoundError
	return errors.As(err, &cnf)
}
