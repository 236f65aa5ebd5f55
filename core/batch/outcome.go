package batch

import "github.com/gofiber/fiber/v2"

// Status is the terminal state of a single batch operation.
type Status int

const (
	// StatusSuccess means the batch committed.
	StatusSuccess Status = 0
	// StatusFailure means the batch was aborted and rolled back.
	StatusFailure Status = 1
	// StatusNotPerformed means the batch was never started.
	StatusNotPerformed Status = 2
)

// Counts carries the per-record tallies of a batch operation.
// Zero-valued fields passed to Finish overwrite the outcome the same way
// populated ones do, so callers always pass the full set they track.
type Counts struct {
	Deleted   int
	Updated   int
	Added     int
	Erroneous int
	NotFound  int
}

// Outcome is the structured report of one batch call. It default-constructs
// into NotPerformed and receives exactly one terminal Finish call from the
// operation that owns it. Outcomes are request-scoped and not shared between
// goroutines.
type Outcome struct {
	ResultCode     Status `json:"result_code"`
	ResultMessage  string `json:"result_message"`
	HTTPResponse   int    `json:"http_response"`
	DeletedCount   int    `json:"deleted_count"`
	UpdatedCount   int    `json:"updated_count"`
	AddedCount     int    `json:"added_count"`
	ErroneousCount int    `json:"erroneous_count"`
	NotFoundCount  int    `json:"not_found_count"`
}

// NewOutcome returns an outcome in the NotPerformed state with zero counters.
func NewOutcome() *Outcome {
	return &Outcome{
		ResultCode:    StatusNotPerformed,
		ResultMessage: "Operation not performed",
		HTTPResponse:  fiber.StatusInternalServerError,
	}
}

// Finish records the terminal state of the operation. An empty message keeps
// the previous one. Counters are taken wholesale from counts.
func (o *Outcome) Finish(status Status, message string, httpResponse int, counts Counts) {
	o.ResultCode = status
	if message != "" {
		o.ResultMessage = message
	}
	o.HTTPResponse = httpResponse
	o.DeletedCount = counts.Deleted
	o.UpdatedCount = counts.Updated
	o.AddedCount = counts.Added
	o.ErroneousCount = counts.Erroneous
	o.NotFoundCount = counts.NotFound
}

// Success reports whether the batch committed.
func (o *Outcome) Success() bool {
	return o.ResultCode == StatusSuccess
}

// Failure reports whether the batch was aborted.
func (o *Outcome) Failure() bool {
	return o.ResultCode == StatusFailure
}

// NotPerformed reports whether the batch never ran.
func (o *Outcome) NotPerformed() bool {
	return o.ResultCode == StatusNotPerformed
}

// ToMap serializes the outcome into a flat field-to-value mapping for
// transport. The shape mirrors the JSON struct tags.
func (o *Outcome) ToMap() map[string]any {
	return map[string]any{
		"result_code":     int(o.ResultCode),
		"result_message":  o.ResultMessage,
		"http_response":   o.HTTPResponse,
		"deleted_count":   o.DeletedCount,
		"updated_count":   o.UpdatedCount,
		"added_count":     o.AddedCount,
		"erroneous_count": o.ErroneousCount,
		"not_found_count": o.NotFoundCount,
	}
}
