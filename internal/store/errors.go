package store

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates a record or triple failed its shape contract;
	// the guarded write was never attempted.
	ErrValidation = errors.New("store validation")
	// ErrStorage indicates a connection, constraint or query failure. Writes
	// are not retried and earlier writes are not rolled back.
	ErrStorage = errors.New("store write")
	// ErrBootstrap indicates schema provisioning failed; the store is
	// unusable and construction aborts.
	ErrBootstrap = errors.New("store bootstrap")
)

func validationError(err error) error {
	return errors.Join(ErrValidation, err)
}

func storageError(op string, err error) error {
	return errors.Join(ErrStorage, fmt.Errorf("%s: %w", op, err))
}

func bootstrapError(op string, err error) error {
	return errors.Join(ErrBootstrap, fmt.Errorf("%s: %w", op, err))
}
