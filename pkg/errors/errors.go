package errors

import "errors"

// ErrOptimisticLock means the record was changed by another request since
// the caller read it.
var ErrOptimisticLock = errors.New("record was modified by another request, reload and retry")

// ErrDuplicateKey means an insert hit a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")
