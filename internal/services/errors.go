package services

import "errors"

// Sentinel errors mapped to HTTP statuses at the handler boundary.
// Ownership failures deliberately surface as ErrNotFound so callers cannot
// distinguish "exists but foreign" from "does not exist".
var (
  ErrNotFound     = errors.New("not found")
  ErrInvalid      = errors.New("invalid input")
  ErrUnauthorized = errors.New("unauthorized")
  ErrForbidden    = errors.New("forbidden")
  ErrKeyLimit     = errors.New("maximum of 5 API keys allowed per user")
)
