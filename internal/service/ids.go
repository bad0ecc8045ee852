package service

import (
	"fmt"

	"github.com/google/uuid"
)

// validateID rejects identifiers that can never match a row
func validateID(kind, id string) error {
	if err := uuid.Validate(id); err != nil {
		return fmt.Errorf("%w: invalid %s id", ErrValidation, kind)
	}
	return nil
}
