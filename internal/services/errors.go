package services

import (
	"fmt"
)

// PartialWriteError reports an ingestion batch that stopped after Committed
// questions were already durably written. Those writes are not rolled back.
type PartialWriteError struct {
	Committed int
	Err       error
}

func (e *PartialWriteError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("ingestion stopped after %d committed questions: %v", e.Committed, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
