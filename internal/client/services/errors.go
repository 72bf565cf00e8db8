package services

import (
	"errors"
	"fmt"
)

// Action-level failures. Remote causes stay wrapped beneath them so they
// can be logged and inspected with errors.As.
var (
	ErrLoginFailed    = errors.New("login failed")
	ErrRegisterFailed = errors.New("registration failed")
	ErrLoadFailed     = errors.New("could not load artworks")
	ErrPurchaseFailed = errors.New("purchase failed")
	ErrTopupFailed    = errors.New("top-up failed")
	ErrEditFailed     = errors.New("profile update failed")
	ErrProfileFailed  = errors.New("could not load profile")

	ErrArtworkUnavailable = errors.New("artwork is no longer available")
	ErrArtworkNotFound    = errors.New("artwork not found")
	ErrNoChanges          = errors.New("nothing to update")
)

func failed(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}
