package repository

import "errors"

// ErrNotFound is returned by lookups for keys that have no row. Store
// implementations translate their own no-rows signal into this.
var ErrNotFound = errors.New("not found")
