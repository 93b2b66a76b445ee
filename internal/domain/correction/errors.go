package correction

import "errors"

// Correction domain errors
var (
	ErrCorrectionNotFound = errors.New("correction request not found")
	ErrMonthlyLimitUsed   = errors.New("monthly correction limit reached")
	ErrDateInFuture       = errors.New("correction date cannot be in the future")
	ErrDateTooOld         = errors.New("correction date is outside the allowed window")
	ErrAlreadyReviewed    = errors.New("correction request has already been reviewed")
	ErrNotRequestOwner    = errors.New("correction request does not belong to this user")
	ErrRejectionReason    = errors.New("a rejection requires comments")
	ErrMissingTimes       = errors.New("requested times are required for this correction type")
)
