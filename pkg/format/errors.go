package format

import "errors"

// ErrOperationFailed marks a recoverable formatting failure. The Driver logs
// these and carries on with the rest of the pipeline.
var ErrOperationFailed = errors.New("formatting operation failed")
