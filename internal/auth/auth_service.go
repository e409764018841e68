package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	autherrors "go-complaintdesk/internal/auth/errors"
	"go-complaintdesk/internal/domain"
	"go-complaintdesk/internal/middleware"
	"go-complaintdesk/internal/user"
	usererrors "go-complaintdesk/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Config is read once at process start and injected; the signing key is
// rotated via configuration, never code.
type Config struct {
	JWTSecret             []byte
	AdminRegistrationCode string
	TokenTTL              time.Duration
	AllowLegacyPasswords  bool
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, employeeNumber int64, password string) (LoginResponse, error)
	RegisterEmployee(ctx context.Context, req RegisterRequest) (user.UserResponse, error)
	RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (user.UserResponse, error)
	GetMe(ctx context.Context, userID string) (user.UserResponse, error)
	FindIdentity(ctx context.Context, userID string) (middleware.Identity, error)
}

type service struct {
	users  user.Repository
	cfg    Config
	logger *zap.Logger
}

func NewService(users user.Repository, cfg Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 72 * time.Hour
	}
	return &service{users: users, cfg: cfg, logger: l}
}

func (s *service) Login(ctx context.Context, employeeNumber int64, password string) (LoginResponse, error) {
	u, err := s.users.FindByEmployeeNumber(ctx, employeeNumber)
	if err != nil {
		// Missing user and bad password are indistinguishable on the wire.
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		if !s.migrateLegacyPassword(ctx, u, password) {
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
	}

	token, err := s.generateToken(u.ID.String(), u.Role)
	if err != nil {
		s.logger.Error("sign token failed", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.Int64("employee_number", employeeNumber),
		zap.String("user_id", u.ID.String()),
	)

	return LoginResponse{
		User:  user.MapToResponse(*u),
		Token: token,
	}, nil
}

// migrateLegacyPassword accepts a stored plaintext password exactly once,
// replacing it with a bcrypt hash. A migration affordance for rows imported
// from the previous system, gated by configuration.
func (s *service) migrateLegacyPassword(ctx context.Context, u *user.User, password string) bool {
	if !s.cfg.AllowLegacyPasswords {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) != 1 {
		return false
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false
	}
	if err := s.users.UpdatePassword(ctx, u.ID, string(hashed)); err != nil {
		s.logger.Error("persist migrated password failed",
			zap.String("user_id", u.ID.String()),
			zap.Error(err),
		)
		return false
	}
	u.Password = string(hashed)

	s.logger.Info("legacy password migrated", zap.String("user_id", u.ID.String()))
	return true
}

func (s *service) RegisterEmployee(ctx context.Context, req RegisterRequest) (user.UserResponse, error) {
	return s.register(ctx, req, domain.RoleEmployee)
}

func (s *service) RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (user.UserResponse, error) {
	if subtle.ConstantTimeCompare([]byte(req.RegistrationCode), []byte(s.cfg.AdminRegistrationCode)) != 1 {
		return user.UserResponse{}, autherrors.ErrInvalidRegistrationCode
	}
	return s.register(ctx, req.RegisterRequest, domain.RoleAdmin)
}

func (s *service) register(ctx context.Context, req RegisterRequest, role domain.Role) (user.UserResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, err
	}

	u := &user.User{
		ID:             uuid.New(),
		EmployeeNumber: req.EmployeeNumber,
		Name:           req.Name,
		Designation:    req.Designation,
		Department:     req.Department,
		Location:       req.Location,
		Email:          req.Email,
		Password:       string(hashed),
		Role:           role,
		IsWorker:       req.IsWorker,
	}

	if err := s.users.Create(ctx, u); err != nil {
		s.logger.Warn("register persist failed",
			zap.Int64("employee_number", req.EmployeeNumber),
			zap.Error(err),
		)
		return user.UserResponse{}, user.MapStorageError(err)
	}

	s.logger.Info("register success",
		zap.Int64("employee_number", req.EmployeeNumber),
		zap.String("role", role.String()),
	)

	return user.MapToResponse(*u), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (user.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return user.UserResponse{}, autherrors.ErrInvalidUserID
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, user.MapStorageError(err)
	}

	return user.MapToResponse(*u), nil
}

// FindIdentity backs the auth middleware: a valid token whose user row is
// gone resolves to NotFound.
func (s *service) FindIdentity(ctx context.Context, userID string) (middleware.Identity, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return middleware.Identity{}, autherrors.ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.Identity{}, usererrors.ErrUserNotFound
		}
		return middleware.Identity{}, err
	}

	return middleware.Identity{
		UserID:         u.ID.String(),
		EmployeeNumber: u.EmployeeNumber,
		Name:           u.Name,
		Role:           u.Role,
		IsWorker:       u.IsWorker,
	}, nil
}

func (s *service) generateToken(userID string, role domain.Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role.String(),
		"exp":     time.Now().Add(s.cfg.TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.JWTSecret)
}
