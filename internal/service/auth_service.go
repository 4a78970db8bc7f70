package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Bentshims/Fastmoney/internal/domain"
	"github.com/Bentshims/Fastmoney/internal/repository"
	"github.com/Bentshims/Fastmoney/pkg/middleware"
)

var (
	ErrEmailInUse          = errors.New("email already in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRegistration = errors.New("invalid registration")
)

type AuthService struct {
	userRepo     UserStore
	employeeRepo EmployeeStore
	businessRepo BusinessStore
	jwtSecret    []byte
	tokenTTL     time.Duration
	logger       *zap.Logger
}

func NewAuthService(
	userRepo UserStore,
	employeeRepo EmployeeStore,
	businessRepo BusinessStore,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		businessRepo: businessRepo,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
		logger:       logger,
	}
}

// Register creates an owner account together with its business and returns a
// signed token for the new owner.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	if !req.BusinessType.Valid() {
		return nil, ErrInvalidRegistration
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

	now := time.Now()
	business := &domain.Business{
		BusinessID: uuid.New().String(),
		Name:       req.BusinessName,
		Type:       req.BusinessType,
		CreatedAt:  now,
	}
	user := &domain.User{
		UserID:       uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleOwner,
		BusinessID:   business.BusinessID,
		CreatedAt:    now,
	}
	business.OwnerID = user.UserID

	if err := s.businessRepo.CreateBusiness(ctx, business); err != nil {
		return nil, err
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	principal := domain.Principal{
		Subject:    user.UserID,
		Email:      user.Email,
		Role:       user.Role,
		BusinessID: user.BusinessID,
	}

	token, err := s.signToken(principal)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Business registered",
		zap.String("business_id", business.BusinessID),
		zap.String("business_type", string(business.Type)))

	return &domain.AuthResponse{
		AccessToken: token,
		Principal:   principal,
		Business:    business,
	}, nil
}

// Login resolves the credential holder behind an email, trying owners first
// and employees second, and verifies the password against either.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	principal, passwordHash, err := s.lookupPrincipal(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	business, err := s.businessRepo.GetBusiness(ctx, principal.BusinessID)
	if err != nil && !errors.Is(err, repository.ErrBusinessNotFound) {
		return nil, err
	}

	token, err := s.signToken(principal)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		AccessToken: token,
		Principal:   principal,
		Business:    business,
	}, nil
}

func (s *AuthService) lookupPrincipal(ctx context.Context, email string) (domain.Principal, string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		return domain.Principal{
			Subject:    user.UserID,
			Email:      user.Email,
			Role:       user.Role,
			BusinessID: user.BusinessID,
		}, user.PasswordHash, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.Principal{}, "", err
	}

	employee, err := s.employeeRepo.GetEmployeeByEmail(ctx, email)
	if err == nil {
		return domain.Principal{
			Subject:    employee.EmployeeID,
			Email:      employee.Email,
			Role:       employee.Role,
			BusinessID: employee.BusinessID,
		}, employee.PasswordHash, nil
	}
	if !errors.Is(err, repository.ErrEmployeeNotFound) {
		return domain.Principal{}, "", err
	}

	return domain.Principal{}, "", ErrInvalidCredentials
}

func (s *AuthService) signToken(principal domain.Principal) (string, error) {
	now := time.Now()
	claims := middleware.Claims{
		Email:      principal.Email,
		Role:       principal.Role,
		BusinessID: principal.BusinessID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}
