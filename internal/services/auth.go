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

	"github.com/yungbote/storefront-backend/internal/data/repos"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
	"github.com/yungbote/storefront-backend/internal/requestdata"
)

type AuthService interface {
	Register(ctx context.Context, input CreateUserInput) (*types.User, string, string, error)
	Login(ctx context.Context, email, password string) (*types.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	userService   UserService
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	userService UserService,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		userService:   userService,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) Register(ctx context.Context, input CreateUserInput) (*types.User, string, string, error) {
	newUser, err := as.userService.Create(ctx, input, types.RoleUser)
	if err != nil {
		return nil, "", "", err
	}
	accessToken, refreshToken, err := as.issueTokens(ctx, newUser)
	if err != nil {
		return nil, "", "", err
	}
	return newUser, accessToken, refreshToken, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*types.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", "", ErrInvalidCredentials
	}

	found, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, "", "", fmt.Errorf("error retrieving user by email: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, "", "", ErrInvalidCredentials
	}
	theUser := found[0]

	if err := bcrypt.CompareHashAndPassword([]byte(theUser.Password), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := as.issueTokens(ctx, theUser)
	if err != nil {
		return nil, "", "", err
	}
	return theUser, accessToken, refreshToken, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrInvalidToken
	}

	var newAccess, newRefresh string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := as.userTokenRepo.GetByRefreshToken(ctx, tx, refreshToken)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidToken
			}
			return fmt.Errorf("error looking up refresh token: %w", err)
		}
		if stored.ExpiresAt.Before(time.Now()) {
			return ErrInvalidToken
		}

		found, err := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{stored.UserID})
		if err != nil || len(found) == 0 || found[0] == nil {
			return ErrInvalidToken
		}
		theUser := found[0]

		// Rotate: the presented refresh token is single use.
		if err := as.userTokenRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{theUser.ID}); err != nil {
			return fmt.Errorf("failed to delete old refresh token: %w", err)
		}

		// Piggyback cleanup of expired tokens on the rotation write.
		if _, err := as.userTokenRepo.DeleteExpired(ctx, tx, time.Now()); err != nil {
			return fmt.Errorf("failed to purge expired tokens: %w", err)
		}

		access, refresh, err := as.issueTokensTx(ctx, tx, theUser)
		if err != nil {
			return err
		}
		newAccess, newRefresh = access, refresh
		return nil
	}); err != nil {
		return "", "", err
	}
	return newAccess, newRefresh, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return ErrInvalidToken
	}
	return as.userTokenRepo.DeleteByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
}

// SetContextFromToken validates the bearer token and attaches the caller's
// identity to the context for downstream handlers and services.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return ctx, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if !types.ValidRole(role) {
		return ctx, ErrInvalidToken
	}

	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Email:       email,
		Role:        role,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) issueTokens(ctx context.Context, theUser *types.User) (string, string, error) {
	var access, refresh string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, r, err := as.issueTokensTx(ctx, tx, theUser)
		if err != nil {
			return err
		}
		access, refresh = a, r
		return nil
	}); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (as *authService) issueTokensTx(ctx context.Context, tx *gorm.DB, theUser *types.User) (string, string, error) {
	accessToken, err := as.generateAccessToken(theUser)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken := uuid.New().String()
	userToken := &types.UserToken{
		ID:           uuid.New(),
		UserID:       theUser.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); err != nil {
		return "", "", fmt.Errorf("failed to persist refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

func (as *authService) generateAccessToken(theUser *types.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   theUser.ID.String(),
		"email": theUser.Email,
		"role":  theUser.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
