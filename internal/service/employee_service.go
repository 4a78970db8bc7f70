package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Bentshims/Fastmoney/internal/domain"
	"github.com/Bentshims/Fastmoney/internal/repository"
)

type EmployeeService struct {
	employeeRepo EmployeeStore
	userRepo     UserStore
	logger       *zap.Logger
}

func NewEmployeeService(employeeRepo EmployeeStore, userRepo UserStore, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// CreateEmployee rejects emails already claimed by either an owner or another
// employee, since both collections feed the same login lookup.
func (s *EmployeeService) CreateEmployee(ctx context.Context, businessID string, req domain.CreateEmployeeRequest) (*domain.Employee, error) {
	if _, err := s.employeeRepo.GetEmployeeByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, repository.ErrEmployeeNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	employee := &domain.Employee{
		EmployeeID:   uuid.New().String(),
		BusinessID:   businessID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		CreatedAt:    time.Now(),
	}

	if err := s.employeeRepo.CreateEmployee(ctx, employee); err != nil {
		s.logger.Error("Failed to save employee",
			zap.String("employee_id", employee.EmployeeID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Employee created",
		zap.String("employee_id", employee.EmployeeID),
		zap.String("business_id", businessID),
		zap.String("role", employee.Role))

	return employee, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context, businessID string) ([]domain.Employee, error) {
	return s.employeeRepo.ListEmployees(ctx, businessID)
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, businessID, employeeID string) error {
	if err := s.employeeRepo.DeleteEmployee(ctx, businessID, employeeID); err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}

	s.logger.Info("Employee deleted",
		zap.String("employee_id", employeeID),
		zap.String("business_id", businessID))

	return nil
}
