package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"student-portal/config"
	"student-portal/internal/dto"
	"student-portal/internal/model"
	"student-portal/internal/repository"
	pkgerrors "student-portal/pkg/errors"
	"student-portal/pkg/jwt"
)

var (
	ErrInvalidEmailFormat  = errors.New("invalid email format")
	ErrWeakPassword        = errors.New("password is too short")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrEmailTaken          = errors.New("email already in use")
	ErrAccountNotFound     = errors.New("account not found")
	ErrWrongPassword       = errors.New("wrong password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// TokenBlacklist stores revoked token ids until they expire.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService account signup and token issuance
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	// Logout revokes the token with the given id until expiresAt.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	cfg       *config.Config
	rules     *rules
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates an AuthService. Without a blacklist, logout and
// refresh rotation are no-ops.
func NewAuthService(
	cfg *config.Config,
	r *rules,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		rules:     r,
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// sapIDFromEmail returns the local part, which is the student's SAP id.
func sapIDFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.TokenResponse, error) {
	email := normalizeEmail(req.Email)
	if !s.rules.emailPattern.MatchString(email) {
		return nil, ErrInvalidEmailFormat
	}
	if len(req.Password) < s.cfg.Auth.MinPasswordLength {
		return nil, ErrWeakPassword
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	exists, err := s.repo.Student.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("check email failed", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	student := &model.Student{
		SapID:        sapIDFromEmail(email),
		Email:        email,
		PasswordHash: string(hash),
	}
	student.Version = 1
	if err := s.repo.Student.Create(ctx, student); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("create student failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("student signed up",
		zap.String("student_id", student.StudentID),
		zap.String("sap_id", student.SapID),
	)
	return s.issueTokens(student, false)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := normalizeEmail(req.Email)
	if !s.rules.emailPattern.MatchString(email) {
		return nil, ErrInvalidEmailFormat
	}

	student, err := s.repo.Student.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		s.logger.Error("query student failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrWrongPassword
	}

	return s.issueTokens(student, req.RememberMe)
}

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidRefreshToken
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("check blacklist failed", zap.Error(err))
			return nil, err
		}
		if revoked {
			return nil, ErrInvalidRefreshToken
		}
	}

	student, err := s.repo.Student.GetByID(ctx, claims.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		s.logger.Error("query student failed", zap.Error(err))
		return nil, err
	}

	// rotate: the presented refresh token is single use
	if claims.ExpiresAt != nil {
		if err := s.Logout(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
			return nil, err
		}
	}

	return s.issueTokens(student, claims.RememberMe)
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil || jti == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, ttl); err != nil {
		s.logger.Error("blacklist token failed", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) issueTokens(student *model.Student, rememberMe bool) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(student.StudentID, student.SapID)
	if err != nil {
		s.logger.Error("sign access token failed", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(student.StudentID, student.SapID, rememberMe)
	if err != nil {
		s.logger.Error("sign refresh token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		Student:      toStudentResponse(student),
	}, nil
}

func toStudentResponse(student *model.Student) dto.StudentResponse {
	return dto.StudentResponse{
		ID:    student.StudentID,
		SapID: student.SapID,
		Email: student.Email,
	}
}
