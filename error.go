package geocorpus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/n2code/geocorpus/internal/index"
)

// ItemError describes why a single catalog entry could not be stored.
type ItemError struct {
	Source  string
	message string
	cause   error
}

func (e *ItemError) Error() string {
	var msg strings.Builder
	fmt.Fprint(&msg, e.message)
	if e.cause != nil {
		fmt.Fprint(&msg, ": ", e.cause)
	}
	return msg.String()
}

func (e *ItemError) Unwrap() error {
	return e.cause
}

func newItemError(source string, message string, cause error) *ItemError {
	return &ItemError{Source: source, message: message, cause: cause}
}

var ErrInterrupted = errors.New("interrupted before all entries were attempted")

var ErrRootMissing = index.ErrRootMissing
