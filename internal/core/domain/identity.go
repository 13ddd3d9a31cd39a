package domain

import "errors"

// Identity flow errors. Callers only ever see verified vs rejected; how the
// code was checked is a gateway implementation detail.
var ErrInvalidCode = errors.New("invalid verification code")
var ErrCodeExpired = errors.New("verification code expired")
var ErrTooManyAttempts = errors.New("too many verification attempts")
var ErrInvalidIdentifier = errors.New("invalid identifier format")
var ErrTooManyRequests = errors.New("too many code requests")

// Persistence errors from the session vault.
var ErrKeyNotFound = errors.New("key not found")
