package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/department"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/file"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/leave"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	department.DepartmentRepository
	file.FileRepository

	synchronizer *Synchronizer

	now func() time.Time
}

func NewLeaveService(
	leaveRequestRepository leave.LeaveRequestRepository,
	departmentRepository department.DepartmentRepository,
	fileRepository file.FileRepository,
	synchronizer *Synchronizer,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		DepartmentRepository:   departmentRepository,
		FileRepository:         fileRepository,
		synchronizer:           synchronizer,
		now:                    time.Now,
	}
}

// Create submits a new leave request for the calling user.
func (s *LeaveServiceImpl) Create(ctx context.Context, userID string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	dept, err := s.DepartmentRepository.GetByID(ctx, req.DepartmentID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !dept.HasMember(userID) {
		return leave.LeaveRequestResponse{}, leave.ErrNotDepartmentMember
	}

	loc := s.now().Location()
	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, loc)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := time.ParseInLocation("2006-01-02", req.EndDate, loc)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("invalid end date: %w", err)
	}

	request := leave.LeaveRequest{
		ID:           uuid.NewString(),
		UserID:       userID,
		DepartmentID: req.DepartmentID,
		Type:         leave.Type(req.Type),
		StartDate:    startDate,
		EndDate:      endDate,
		Reason:       req.Reason,
		AttachmentID: req.AttachmentID,
		Status:       leave.StatusPending,
	}

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if req.AttachmentID != nil {
		if err := s.FileRepository.Link(ctx, *req.AttachmentID, file.RelatedLeave, created.ID); err != nil {
			slog.Warn("Failed to link attachment", "leave_request_id", created.ID, "file_id", *req.AttachmentID, "error", err)
		}
	}

	slog.Info("Leave request submitted", "leave_request_id", created.ID, "user_id", userID, "type", created.Type)
	return leave.ToResponse(created), nil
}

// Get returns one request. Owners always may; others need review authority
// over the request's department.
func (s *LeaveServiceImpl) Get(ctx context.Context, callerID string, role user.Role, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if request.UserID != callerID && role != user.RoleAdmin {
		allowed, err := s.headsDepartment(ctx, callerID, role, request.DepartmentID)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		if !allowed {
			return leave.LeaveRequestResponse{}, leave.ErrNotRequestOwner
		}
	}

	return leave.ToResponse(request), nil
}

// List returns requests matching the filter. Non-admin callers are pinned
// to their own requests unless they head the filtered department.
func (s *LeaveServiceImpl) List(ctx context.Context, callerID string, role user.Role, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	if role != user.RoleAdmin {
		scoped := false
		if role == user.RoleKajur && filter.DepartmentID != nil {
			allowed, err := s.headsDepartment(ctx, callerID, role, *filter.DepartmentID)
			if err != nil {
				return nil, err
			}
			scoped = allowed
		}
		if !scoped {
			filter.UserID = &callerID
		}
	}

	requests, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.ToResponse(request))
	}

	return responses, nil
}

// ListPendingByDepartment returns the review queue for a department.
func (s *LeaveServiceImpl) ListPendingByDepartment(ctx context.Context, callerID string, role user.Role, departmentID string) ([]leave.LeaveRequestResponse, error) {
	if role != user.RoleAdmin {
		allowed, err := s.headsDepartment(ctx, callerID, role, departmentID)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, department.ErrNotDepartmentHead
		}
	}

	requests, err := s.LeaveRequestRepository.ListPendingByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.ToResponse(request))
	}

	return responses, nil
}

// Update edits a pending request. Only the owner may, and only while the
// request has not been reviewed.
func (s *LeaveServiceImpl) Update(ctx context.Context, callerID string, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.UserID != callerID {
		return leave.LeaveRequestResponse{}, leave.ErrNotRequestOwner
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrAlreadyReviewed
	}

	if req.Type != nil {
		request.Type = leave.Type(*req.Type)
	}
	loc := s.now().Location()
	if req.StartDate != nil {
		startDate, err := time.ParseInLocation("2006-01-02", *req.StartDate, loc)
		if err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("invalid start date: %w", err)
		}
		request.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.ParseInLocation("2006-01-02", *req.EndDate, loc)
		if err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("invalid end date: %w", err)
		}
		request.EndDate = endDate
	}
	if req.Reason != nil {
		request.Reason = *req.Reason
	}

	// The partial edit must leave a coherent window behind. Stored dates
	// carry UTC while the edited ones were parsed in loc, so compare the
	// re-anchored calendar days.
	if dayIn(request.StartDate, loc).After(dayIn(request.EndDate, loc)) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	if err := s.LeaveRequestRepository.Update(ctx, request); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.ToResponse(request), nil
}

// Delete removes a pending request. Owner-only.
func (s *LeaveServiceImpl) Delete(ctx context.Context, callerID string, id string) error {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if request.UserID != callerID {
		return leave.ErrNotRequestOwner
	}
	if request.Status != leave.StatusPending {
		return leave.ErrAlreadyReviewed
	}

	return s.LeaveRequestRepository.Delete(ctx, id)
}

// Review approves or rejects a pending request. Admins may review any
// request, a kajur only those of departments they head. Approval triggers
// the attendance synchronizer for the request's window.
func (s *LeaveServiceImpl) Review(ctx context.Context, reviewerID string, role user.Role, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrNotPending
	}

	if role != user.RoleAdmin {
		allowed, err := s.headsDepartment(ctx, reviewerID, role, request.DepartmentID)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		if !allowed {
			return leave.LeaveRequestResponse{}, department.ErrNotDepartmentHead
		}
	}

	now := s.now()
	request.Status = leave.Status(req.Status)
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &now
	request.Comments = req.Comments

	if err := s.LeaveRequestRepository.Update(ctx, request); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if request.Status == leave.StatusApproved && s.synchronizer != nil {
		if err := s.synchronizer.SyncRequest(ctx, request); err != nil {
			slog.Warn("Failed to synchronize attendance for approved leave", "leave_request_id", request.ID, "error", err)
		}
	}

	slog.Info("Leave request reviewed", "leave_request_id", request.ID, "status", request.Status, "reviewer_id", reviewerID)
	return leave.ToResponse(request), nil
}

// CheckUserLeaveStatus is the authoritative "on approved leave today" check
// consumed by the attendance ledger and exposed over HTTP.
func (s *LeaveServiceImpl) CheckUserLeaveStatus(ctx context.Context, userID string, date time.Time) (leave.LeaveStatus, error) {
	covering, err := s.LeaveRequestRepository.FindApprovedCovering(ctx, userID, date)
	if err != nil {
		return leave.LeaveStatus{}, fmt.Errorf("failed to check leave status: %w", err)
	}
	if covering == nil {
		return leave.LeaveStatus{}, nil
	}

	return leave.LeaveStatus{IsOnLeave: true, LeaveType: covering.Type}, nil
}

func (s *LeaveServiceImpl) headsDepartment(ctx context.Context, callerID string, role user.Role, departmentID string) (bool, error) {
	if role != user.RoleKajur {
		return false, nil
	}
	dept, err := s.DepartmentRepository.GetByID(ctx, departmentID)
	if err != nil {
		return false, err
	}
	return dept.IsHeadedBy(callerID), nil
}
