// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
//
// Storage and infrastructure failures collapse into it before reaching a handler,
// the original error is logged where it happens.
var ErrInternal = errors.New("internal")
