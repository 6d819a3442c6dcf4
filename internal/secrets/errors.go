package secrets

import "errors"

// ErrEntryOutOfRange is returned when an entry index does not exist.
var ErrEntryOutOfRange = errors.New("entry index out of range")
