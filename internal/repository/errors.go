package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateProvider is returned when a wallet is already registered as a provider
	ErrDuplicateProvider = errors.New("provider with this wallet already exists")

	// ErrDuplicateReview is returned when a developer reviews the same API twice
	ErrDuplicateReview = errors.New("review for this api already exists")

	// ErrDuplicateFavorite is returned when a developer favorites the same API twice
	ErrDuplicateFavorite = errors.New("favorite already exists")

	// ErrTokenAlreadyUsed is returned when a concurrent consumer spent the token first
	ErrTokenAlreadyUsed = errors.New("token already used")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
