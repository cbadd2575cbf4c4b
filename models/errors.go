package models

import "fmt"

// ConfigurationError is fatal to a run and surfaces before any row is
// processed: bad credential, bad time windows, missing metrics or patterns.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
	}
	return "configuration error: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ReferenceDataError is a failure to fetch one of the remote catalogs.
type ReferenceDataError struct {
	Resource string
	Err      error
}

func (e *ReferenceDataError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Resource, e.Err)
}

func (e *ReferenceDataError) Unwrap() error { return e.Err }

// RowValidationError is a problem with the spreadsheet. Row is 0 when the
// whole file is affected.
type RowValidationError struct {
	Row    int
	Reason string
	Err    error
}

func (e *RowValidationError) Error() string {
	msg := e.Reason
	if e.Row > 0 {
		msg = fmt.Sprintf("row %d: %s", e.Row, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *RowValidationError) Unwrap() error { return e.Err }

// SubmissionError is a rejected or failed upload of one dataset.
type SubmissionError struct {
	Dataset string
	Err     error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("failed to submit dataset %q: %v", e.Dataset, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
