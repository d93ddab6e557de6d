package analyses

import "errors"

// ErrBusy is returned when an analysis is requested while another is in flight.
var ErrBusy = errors.New("an analysis is already in progress")

// DecodeStage prefixes errors from decoding the model's JSON text.
const DecodeStage = "failed to decode analysis result"

// Request validation messages shown to the user.
const (
	msgMissingJobDescription = "Please provide a job description"
	msgMissingResume         = "Please upload a resume in PDF Format"
)
