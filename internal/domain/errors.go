package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrFetchFailed covers every failed search: network, non-2xx, bad payload
	ErrFetchFailed = errors.New("fetch failed")

	// ErrServerOffline indicates the photo API is unreachable
	ErrServerOffline = errors.New("photo API is unreachable")

	// ErrAuthFailed indicates the access key was rejected
	ErrAuthFailed = errors.New("access key is invalid")

	// ErrInvalidPage indicates a page outside [1, total pages]
	ErrInvalidPage = errors.New("page out of range")

	// ErrNotConfigured indicates no access key has been set up
	ErrNotConfigured = errors.New("access key is not configured")
)

// FetchErrorMessage is the only error text shown to the user
const FetchErrorMessage = "Error fetching images. Try again later"
