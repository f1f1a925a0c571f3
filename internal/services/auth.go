package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/transparency-backend/internal/data/db"
	"github.com/yungbote/transparency-backend/internal/data/repos"
	"github.com/yungbote/transparency-backend/internal/domain"
	"github.com/yungbote/transparency-backend/internal/platform/apierr"
	"github.com/yungbote/transparency-backend/internal/platform/ctxutil"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
	"github.com/yungbote/transparency-backend/internal/platform/normalize"
)

type SignupInput struct {
	Email       string
	Password    string
	CompanyName string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ParseToken(tokenString string) (*ctxutil.Identity, error)
	TokenTTL() time.Duration
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

type JWTClaims struct {
	UserID    string  `json:"user_id"`
	CompanyID *string `json:"company_id"`
	jwt.RegisteredClaims
}

type authService struct {
	db          *gorm.DB
	log         *logger.Logger
	userRepo    repos.UserRepo
	companyRepo repos.CompanyRepo
	secret      []byte
	ttl         time.Duration
	cost        int
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	companyRepo repos.CompanyRepo,
	cfg AuthConfig,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &authService{
		db:          db,
		log:         serviceLog,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		secret:      []byte(cfg.JWTSecret),
		ttl:         ttl,
		cost:        cost,
	}
}

func (as *authService) TokenTTL() time.Duration { return as.ttl }

func (as *authService) Signup(ctx context.Context, in SignupInput) (string, error) {
	email := normalize.Email(in.Email)
	if email == "" || in.Password == "" {
		return "", apierr.Validation("email_password_required", errors.New("email and password required"))
	}

	existing, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", fmt.Errorf("lookup user by email: %w", err)
	}
	if existing != nil {
		return "", apierr.Conflict("email_exists", errors.New("email already registered"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), as.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Email: email, PasswordHash: string(hash)}
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if name := strings.TrimSpace(in.CompanyName); name != "" {
			companies, cErr := as.companyRepo.Create(ctx, tx, []*domain.Company{{Name: name}})
			if cErr != nil {
				return fmt.Errorf("create company: %w", cErr)
			}
			user.CompanyID = &companies[0].ID
		}
		if _, uErr := as.userRepo.Create(ctx, tx, []*domain.User{user}); uErr != nil {
			return uErr
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return "", apierr.Conflict("email_exists", errors.New("email already registered"))
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	as.log.Info("User registered", "user_id", user.ID.String(), "company_id", uuidString(user.CompanyID))
	return as.signToken(user)
}

func (as *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalize.Email(email)
	if email == "" || password == "" {
		return "", apierr.Validation("email_password_required", errors.New("email and password required"))
	}
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", fmt.Errorf("lookup user by email: %w", err)
	}
	invalid := apierr.Unauthorized("invalid_credentials", errors.New("invalid credentials"))
	if user == nil || user.PasswordHash == "" {
		return "", invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", invalid
	}
	return as.signToken(user)
}

func (as *authService) signToken(user *domain.User) (string, error) {
	now := time.Now()
	var companyID *string
	if user.CompanyID != nil {
		s := user.CompanyID.String()
		companyID = &s
	}
	claims := JWTClaims{
		UserID:    user.ID.String(),
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (as *authService) ParseToken(tokenString string) (*ctxutil.Identity, error) {
	unauthorized := func(err error) error { return apierr.Unauthorized("unauthorized", err) }
	if strings.TrimSpace(tokenString) == "" {
		return nil, unauthorized(errors.New("missing token"))
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return as.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, unauthorized(fmt.Errorf("parse token: %w", err))
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return nil, unauthorized(errors.New("invalid or expired token"))
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, unauthorized(fmt.Errorf("invalid user id in token: %w", err))
	}
	id := &ctxutil.Identity{UserID: userID}
	if claims.CompanyID != nil && *claims.CompanyID != "" {
		if cid, err := uuid.Parse(*claims.CompanyID); err == nil {
			id.CompanyID = &cid
		}
	}
	return id, nil
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
