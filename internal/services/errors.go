// Package services defines the business logic for advertisements, taxonomy,
// and responses. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer. In particular, every ownership failure maps
// to ErrForbidden, keeping one authorization-failure contract across
// advertisement mutation and response moderation.
package services

import "errors"

var (
	// ErrAdNotFound indicates that the requested advertisement does not exist.
	ErrAdNotFound = errors.New("advertisement not found")

	// ErrResponseNotFound indicates that the requested response does not exist
	// or is not visible to the current user.
	ErrResponseNotFound = errors.New("response not found")

	// ErrCityNotFound indicates an unknown city reference.
	ErrCityNotFound = errors.New("city not found")

	// ErrCategoryNotFound indicates an unknown category reference.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrTagNotFound indicates an unknown tag reference.
	ErrTagNotFound = errors.New("tag not found")

	// ErrForbidden is returned when the acting identity does not own the
	// resource it is trying to mutate (advertisement author, response
	// recipient).
	ErrForbidden = errors.New("not allowed to modify this resource")

	// ErrAlreadyModerated is returned when a response in a terminal state
	// (accepted/rejected) receives another accept/reject attempt.
	ErrAlreadyModerated = errors.New("response already moderated")

	// ErrCityChoice is returned when the advertisement form fills both the
	// existing-city selector and the new-city name, or neither.
	ErrCityChoice = errors.New("select an existing city or enter a new one, not both")

	// ErrEmptyTitle is returned when an advertisement title is blank or
	// yields an empty slug.
	ErrEmptyTitle = errors.New("title is empty")

	// ErrEmptyDescription is returned when an advertisement description is blank.
	ErrEmptyDescription = errors.New("description is empty")

	// ErrNegativePrice is returned when the price is below zero.
	ErrNegativePrice = errors.New("price must be non-negative")

	// ErrEmptyText is returned when a response text is blank.
	ErrEmptyText = errors.New("response text is empty")

	// ErrEmptyName is returned when a taxonomy display name is blank or
	// yields an empty slug.
	ErrEmptyName = errors.New("name is empty")

	// ErrInvalidColor is returned when a tag color is not a #rrggbb hex value.
	ErrInvalidColor = errors.New("color must be a #rrggbb hex value")

	// ErrDuplicateTag is returned when a tag with the same name already exists.
	ErrDuplicateTag = errors.New("tag already exists")

	// ErrTaxonomyInUse is returned when deleting a city or category that
	// still has advertisements referencing it.
	ErrTaxonomyInUse = errors.New("entity is referenced by advertisements")

	// ErrNoCover is returned when a cover upload carries no file.
	ErrNoCover = errors.New("cover file is missing")
)
