package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrIssueNotFound    = errors.New("issue not found")
	ErrAlreadyReturned  = errors.New("book already returned")
	ErrBorrowerNotFound = errors.New("borrower not found")
	ErrBorrowerInactive = errors.New("borrower account is inactive")
)

func NewIssueNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id %s", ErrIssueNotFound, id)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrIssueNotFound)
}
