package department

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/department"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
)

type DepartmentServiceImpl struct {
	department.DepartmentRepository
	userRepository user.UserRepository
}

func NewDepartmentService(departmentRepository department.DepartmentRepository, userRepository user.UserRepository) *DepartmentServiceImpl {
	return &DepartmentServiceImpl{
		DepartmentRepository: departmentRepository,
		userRepository:       userRepository,
	}
}

// Create registers a new department. Admin only, enforced by the caller.
func (s *DepartmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	if req.HeadID != nil {
		if _, err := s.userRepository.GetByID(ctx, *req.HeadID); err != nil {
			return department.DepartmentResponse{}, err
		}
	}

	d := department.Department{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Code:     req.Code,
		HeadID:   req.HeadID,
		IsActive: true,
	}

	created, err := s.DepartmentRepository.Create(ctx, d)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	// The head must also be a member so their own attendance resolves to
	// this department.
	if created.HeadID != nil {
		if err := s.DepartmentRepository.AddMember(ctx, created.ID, *created.HeadID, true); err != nil {
			slog.Warn("Failed to enroll department head as member", "department_id", created.ID, "error", err)
		} else {
			created.MemberIDs = append(created.MemberIDs, *created.HeadID)
		}
	}

	slog.Info("Department created", "department_id", created.ID, "code", created.Code)
	return department.ToResponse(created), nil
}

func (s *DepartmentServiceImpl) Get(ctx context.Context, id string) (department.DepartmentResponse, error) {
	d, err := s.DepartmentRepository.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.ToResponse(d), nil
}

func (s *DepartmentServiceImpl) List(ctx context.Context, includeInactive bool) ([]department.DepartmentResponse, error) {
	departments, err := s.DepartmentRepository.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, department.ToResponse(d))
	}

	return responses, nil
}

// Update edits department attributes. Admin only, enforced by the caller.
func (s *DepartmentServiceImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	d, err := s.DepartmentRepository.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Code != nil {
		d.Code = *req.Code
	}
	if req.HeadID != nil {
		if err := s.SetHead(ctx, d.ID, *req.HeadID); err != nil {
			return department.DepartmentResponse{}, err
		}
		d.HeadID = req.HeadID
	}

	if err := s.DepartmentRepository.Update(ctx, d); err != nil {
		return department.DepartmentResponse{}, err
	}

	return department.ToResponse(d), nil
}

// Delete marks the department inactive. Admin only, enforced by the caller.
func (s *DepartmentServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.DepartmentRepository.SoftDelete(ctx, id); err != nil {
		return err
	}
	slog.Info("Department deactivated", "department_id", id)
	return nil
}

// AddMember enrolls a user into the department.
func (s *DepartmentServiceImpl) AddMember(ctx context.Context, departmentID string, req department.MemberRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	d, err := s.DepartmentRepository.GetByID(ctx, departmentID)
	if err != nil {
		return err
	}
	if d.HasMember(req.UserID) {
		return department.ErrAlreadyAMember
	}

	if _, err := s.userRepository.GetByID(ctx, req.UserID); err != nil {
		return err
	}

	return s.DepartmentRepository.AddMember(ctx, departmentID, req.UserID, req.Primary)
}

// RemoveMember removes a user from the department. The head cannot be
// removed while still assigned as head.
func (s *DepartmentServiceImpl) RemoveMember(ctx context.Context, departmentID, userID string) error {
	d, err := s.DepartmentRepository.GetByID(ctx, departmentID)
	if err != nil {
		return err
	}
	if !d.HasMember(userID) {
		return department.ErrNotAMember
	}
	if d.IsHeadedBy(userID) {
		return department.ErrHeadRemoval
	}

	return s.DepartmentRepository.RemoveMember(ctx, departmentID, userID)
}

// SetHead assigns the department head. The head is enrolled as a member
// if not one already.
func (s *DepartmentServiceImpl) SetHead(ctx context.Context, departmentID, userID string) error {
	d, err := s.DepartmentRepository.GetByID(ctx, departmentID)
	if err != nil {
		return err
	}

	u, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.Role != user.RoleKajur && u.Role != user.RoleAdmin {
		return department.ErrHeadRoleRequired
	}

	if !d.HasMember(userID) {
		if err := s.DepartmentRepository.AddMember(ctx, departmentID, userID, false); err != nil {
			return err
		}
	}

	if err := s.DepartmentRepository.SetHead(ctx, departmentID, userID); err != nil {
		return err
	}

	slog.Info("Department head assigned", "department_id", departmentID, "user_id", userID)
	return nil
}

// ListByMember returns the departments the user belongs to.
func (s *DepartmentServiceImpl) ListByMember(ctx context.Context, userID string) ([]department.DepartmentResponse, error) {
	departments, err := s.DepartmentRepository.GetByMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, department.ToResponse(d))
	}

	return responses, nil
}

// GetPrimary resolves the user's primary department.
func (s *DepartmentServiceImpl) GetPrimary(ctx context.Context, userID string) (department.DepartmentResponse, error) {
	d, err := s.DepartmentRepository.GetPrimaryByMember(ctx, userID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	if d == nil {
		return department.DepartmentResponse{}, department.ErrNoDepartment
	}
	return department.ToResponse(*d), nil
}
