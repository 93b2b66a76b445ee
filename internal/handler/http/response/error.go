package response

import (
	"errors"
	"net/http"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/attendance"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/auth"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/correction"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/department"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/file"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/leave"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/report"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrWrongPassword):
		BadRequest(w, "Current password is incorrect", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrNIPExists):
		Conflict(w, "NIP already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrKajurAccessRequired):
		Forbidden(w, "Department head access required")

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrNameExists):
		Conflict(w, "Department name already exists")
	case errors.Is(err, department.ErrCodeExists):
		Conflict(w, "Department code already exists")
	case errors.Is(err, department.ErrNotAMember):
		BadRequest(w, "User is not a member of the department", nil)
	case errors.Is(err, department.ErrAlreadyAMember):
		Conflict(w, "User is already a member of the department")
	case errors.Is(err, department.ErrNoDepartment):
		BadRequest(w, "User is not associated with any department", nil)
	case errors.Is(err, department.ErrNotDepartmentHead):
		Forbidden(w, "Only the department head may do this")
	case errors.Is(err, department.ErrHeadRemoval):
		Conflict(w, "Department head cannot be removed while assigned as head")
	case errors.Is(err, department.ErrHeadRoleRequired):
		BadRequest(w, "Department head must have the kajur or admin role", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Start date must be before or equal to end date", nil)
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "You can only modify your own leave requests")
	case errors.Is(err, leave.ErrAlreadyReviewed), errors.Is(err, leave.ErrNotPending):
		Conflict(w, "Leave request has already been reviewed")
	case errors.Is(err, leave.ErrNotDepartmentMember):
		BadRequest(w, "User does not belong to the specified department", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrOnLeaveToday):
		Conflict(w, "You are on leave today and cannot check in")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "You have already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "You have not checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "You have already checked out today")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNotRecordOwner):
		Forbidden(w, "Attendance record does not belong to this user")

	// Correction domain errors
	case errors.Is(err, correction.ErrCorrectionNotFound):
		NotFound(w, "Correction request not found")
	case errors.Is(err, correction.ErrMonthlyLimitUsed):
		Conflict(w, "Monthly correction limit reached")
	case errors.Is(err, correction.ErrDateInFuture):
		BadRequest(w, "Correction date cannot be in the future", nil)
	case errors.Is(err, correction.ErrDateTooOld):
		BadRequest(w, "Correction date is outside the allowed window", nil)
	case errors.Is(err, correction.ErrAlreadyReviewed):
		Conflict(w, "Correction request has already been reviewed")
	case errors.Is(err, correction.ErrNotRequestOwner):
		Forbidden(w, "Correction request does not belong to this user")
	case errors.Is(err, correction.ErrRejectionReason):
		BadRequest(w, "A rejection requires comments", nil)
	case errors.Is(err, correction.ErrMissingTimes):
		BadRequest(w, "Requested times are required for this correction type", nil)

	// File domain errors
	case errors.Is(err, file.ErrFileNotFound):
		NotFound(w, "File not found")
	case errors.Is(err, file.ErrNotFileOwner):
		Forbidden(w, "File does not belong to this user")
	case errors.Is(err, file.ErrInvalidCategory):
		BadRequest(w, "Invalid file category", nil)
	case errors.Is(err, file.ErrFileTooLarge):
		BadRequest(w, "File exceeds the maximum allowed size", nil)
	case errors.Is(err, file.ErrUnsupportedType):
		BadRequest(w, "Unsupported file type", nil)
	case errors.Is(err, file.ErrAlreadyLinked):
		Conflict(w, "File is already linked to a record")

	// Report domain errors
	case errors.Is(err, report.ErrReportNotFound):
		NotFound(w, "Report not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
