package models

// RowState is the position of a row in its processing state machine:
// Pending -> LocationResolved -> RecordBuilt -> Submitted -> Success|Failed,
// or Pending -> Skipped.
type RowState string

const (
	StatePending          RowState = "pending"
	StateLocationResolved RowState = "location_resolved"
	StateRecordBuilt      RowState = "record_built"
	StateSubmitted        RowState = "submitted"
	StateSuccess          RowState = "success"
	StateFailed           RowState = "failed"
	StateSkipped          RowState = "skipped"
)

// Terminal reports whether no further transition is possible.
func (s RowState) Terminal() bool {
	return s == StateSuccess || s == StateFailed || s == StateSkipped
}

// SkipReason explains why a row or a cell was not used. NotSkipped means the
// value was accepted.
type SkipReason string

const (
	NotSkipped SkipReason = ""

	// Row level.
	SkipMissingProduct      SkipReason = "missing_product"
	SkipUnparseableProduct  SkipReason = "unparseable_product"
	SkipMissingLocation     SkipReason = "missing_location"
	SkipUnparseableLocation SkipReason = "unparseable_location"
	SkipUnmatchedLocation   SkipReason = "unmatched_location"

	// Cell level.
	SkipEmptyCell      SkipReason = "empty_cell"
	SkipNonNumericCell SkipReason = "non_numeric_cell"

	// ReasonSubmissionFailed is attached to rows in StateFailed.
	ReasonSubmissionFailed SkipReason = "submission_failed"
)

// BatchOutcome is the result of one spreadsheet row.
type BatchOutcome struct {
	Row      int        `json:"row"`
	Product  string     `json:"product,omitempty"`
	Location string     `json:"location,omitempty"`
	State    RowState   `json:"state"`
	Success  bool       `json:"success"`
	Reason   SkipReason `json:"reason,omitempty"`
	Message  string     `json:"message"`
}

// BatchReport aggregates the outcomes of one run.
type BatchReport struct {
	Total              int            `json:"total"`
	Dispatched         int            `json:"dispatched"`
	Succeeded          int            `json:"succeeded"`
	Failed             int            `json:"failed"`
	Skipped            int            `json:"skipped"`
	AvailableLocations []string       `json:"available_locations"`
	MatchedSkills      []string       `json:"matched_skills"`
	Warnings           []string       `json:"warnings,omitempty"`
	Outcomes           []BatchOutcome `json:"outcomes"`
}

// Record appends an outcome and updates the counters.
func (r *BatchReport) Record(o BatchOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	r.Dispatched++
	switch o.State {
	case StateSuccess:
		r.Succeeded++
	case StateFailed:
		r.Failed++
	case StateSkipped:
		r.Skipped++
	}
}

// Progress is the fraction of rows dispatched so far.
func (r *BatchReport) Progress() float64 {
	if r.Total == 0 {
		return 1
	}
	return float64(r.Dispatched) / float64(r.Total)
}

// SkipReasonCounts counts outcomes per reason, in first-seen order.
func (r *BatchReport) SkipReasonCounts() ([]SkipReason, map[SkipReason]int) {
	var order []SkipReason
	counts := map[SkipReason]int{}
	for _, o := range r.Outcomes {
		if o.Reason == NotSkipped {
			continue
		}
		if _, seen := counts[o.Reason]; !seen {
			order = append(order, o.Reason)
		}
		counts[o.Reason]++
	}
	return order, counts
}
