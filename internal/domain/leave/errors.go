package leave

import "errors"

// Leave request domain errors
var (
	ErrLeaveRequestNotFound  = errors.New("leave request not found")
	ErrInvalidDateRange      = errors.New("start date must be before or equal to end date")
	ErrNotRequestOwner       = errors.New("you can only modify your own leave requests")
	ErrAlreadyReviewed       = errors.New("this leave request has already been reviewed")
	ErrNotPending            = errors.New("only pending leave requests can be modified")
	ErrNotDepartmentMember   = errors.New("user does not belong to the specified department")
)
