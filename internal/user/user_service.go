package user

import (
	"context"

	usererrors "go-complaintdesk/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetWorkers(ctx context.Context) ([]WorkerResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, MapStorageError(err)
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = MapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetWorkers(ctx context.Context) ([]WorkerResponse, error) {
	workers, err := s.repo.FindWorkers(ctx)
	if err != nil {
		return nil, MapStorageError(err)
	}

	resp := make([]WorkerResponse, len(workers))
	for i, w := range workers {
		resp[i] = WorkerResponse{
			EmployeeNumber: w.EmployeeNumber,
			Name:           w.Name,
		}
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error) {
	id, err := uuid.Parse(req.UserID)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, MapStorageError(err)
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Designation != nil {
		u.Designation = *req.Designation
	}
	if req.Department != nil {
		u.Department = *req.Department
	}
	if req.Location != nil {
		u.Location = *req.Location
	}
	if req.IsWorker != nil {
		u.IsWorker = *req.IsWorker
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed",
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)
		return UserResponse{}, MapStorageError(err)
	}

	s.logger.Info("update user success", zap.String("user_id", req.UserID))
	return MapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return MapStorageError(err)
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		s.logger.Error("delete user failed", zap.String("user_id", id), zap.Error(err))
		return MapStorageError(err)
	}

	s.logger.Info("delete user success", zap.String("user_id", id))
	return nil
}

// MapToResponse sanitizes a user row for the wire. Exported for the auth
// package, which returns the same shape after login and registration.
func MapToResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID.String(),
		EmployeeNumber: u.EmployeeNumber,
		Name:           u.Name,
		Designation:    u.Designation,
		Department:     u.Department,
		Location:       u.Location,
		Email:          u.Email,
		Role:           u.Role.String(),
		IsWorker:       u.IsWorker,
		CreatedAt:      u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
