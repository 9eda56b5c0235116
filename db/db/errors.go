package db

import "errors"

// ErrNotFound is the sentinel wrapped by every store lookup that misses,
// including lookups that hit a retired POI. Callers branch on it with
// errors.Is rather than matching message text.
var ErrNotFound = errors.New("not found")
