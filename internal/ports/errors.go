package ports

import "errors"

// ErrNoRoute indicates the routing service answered but found no drivable
// connection between the pair. It is a definitive result, not a transient
// failure, and is never retried.
var ErrNoRoute = errors.New("no drivable route")
