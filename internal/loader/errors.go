package loader

import (
	"errors"
	"fmt"
)

// ErrInvalidPhase is returned for phase numbers outside 1-4.
var ErrInvalidPhase = errors.New("invalid phase")

// TableError reports which table an operation failed on. Data committed
// before the failure is left in place.
type TableError struct {
	Op    string // "load" or "clear"
	Phase int
	Table string
	Err   error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("phase %d: %s %s: %v", e.Phase, e.Op, e.Table, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

// BatchError reports a batch that was rolled back. Offset is the number of
// rows of the same table committed by earlier batches.
type BatchError struct {
	Table  string
	Batch  int
	Offset int64
	Size   int
	Err    error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch %d of %s (rows %d-%d) rolled back: %v",
		e.Batch, e.Table, e.Offset+1, e.Offset+int64(e.Size), e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
