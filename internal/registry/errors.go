package registry

import "fmt"

// ErrNotFound means the registry responded 404 for the given package name.
type ErrNotFound struct{ Name string }

func (e ErrNotFound) Error() string { return fmt.Sprintf("package %q not found in registry", e.Name) }

// ErrNetwork wraps a transport-level failure (DNS, connection refused,
// timeout) reaching the registry.
type ErrNetwork struct{ Err error }

func (e ErrNetwork) Error() string { return fmt.Sprintf("registry network error: %v", e.Err) }
func (e ErrNetwork) Unwrap() error { return e.Err }

// ErrInvalidResponse means the registry answered but its payload could not
// be parsed, or it returned a non-2xx, non-404 status.
type ErrInvalidResponse struct{ Msg string }

func (e ErrInvalidResponse) Error() string { return fmt.Sprintf("invalid registry response: %s", e.Msg) }

// ErrPersistence wraps a cache-layer failure (opening the database,
// running a query, committing a transaction). Callers distinguish it from
// ErrNotFound/ErrNetwork/ErrInvalidResponse via errors.As.
type ErrPersistence struct{ Err error }

func (e ErrPersistence) Error() string { return fmt.Sprintf("cache persistence error: %v", e.Err) }
func (e ErrPersistence) Unwrap() error { return e.Err }
