package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrMemberNotFound         = errors.New("member not found")
	ErrMemberExists           = errors.New("user already has a membership")
	ErrMembershipNumberExists = errors.New("membership number already in use")
	ErrInvalidMemberStatus    = errors.New("invalid member status")
	ErrUserAccountNotFound    = errors.New("user account not found")
)

func NewMemberNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id %s", ErrMemberNotFound, id)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrMemberNotFound)
}
