package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/repos"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
	"github.com/yungbote/storefront-backend/internal/requestdata"
)

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Avatar   string
	Phone    string
	Address  string
}

// UpdateUserInput carries partial updates; nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string
	Password *string
	Avatar   *string
	Phone    *string
	Address  *string
}

type UserService interface {
	List(ctx context.Context, page, limit int) ([]*types.User, int64, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	GetProfile(ctx context.Context) (*types.User, error)
	Create(ctx context.Context, input CreateUserInput, role string) (*types.User, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*types.User, error)
	ChangeRole(ctx context.Context, userID uuid.UUID, role string) (*types.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) List(ctx context.Context, page, limit int) ([]*types.User, int64, error) {
	offset := (page - 1) * limit
	return us.userRepo.List(ctx, nil, offset, limit)
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	found, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, ErrNotFound
	}
	return found[0], nil
}

func (us *userService) GetProfile(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, ErrForbidden
	}
	return us.GetByID(ctx, rd.UserID)
}

func (us *userService) Create(ctx context.Context, input CreateUserInput, role string) (*types.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	if !types.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &types.User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: string(hashed),
		Avatar:   input.Avatar,
		Phone:    input.Phone,
		Address:  input.Address,
		Role:     role,
	}

	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := us.userRepo.EmailExists(ctx, tx, email)
		if err != nil {
			return fmt.Errorf("failed to check user email: %w", err)
		}
		if exists {
			return ErrEmailTaken
		}
		if _, err := us.userRepo.Create(ctx, tx, []*types.User{newUser}); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return newUser, nil
}

func (us *userService) Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)

	var updated *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := us.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
		if err != nil {
			return fmt.Errorf("error fetching user: %w", err)
		}
		if len(found) == 0 || found[0] == nil {
			return ErrNotFound
		}
		target := found[0]

		// Only a super admin may touch another admin's record.
		if target.Role == types.RoleAdmin && (rd == nil || rd.Role != types.RoleSuperAdmin) {
			return ErrForbidden
		}

		fields := map[string]any{}
		if input.Name != nil {
			fields["name"] = strings.TrimSpace(*input.Name)
		}
		if input.Password != nil {
			hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			fields["password"] = string(hashed)
		}
		if input.Avatar != nil {
			fields["avatar"] = *input.Avatar
		}
		if input.Phone != nil {
			fields["phone"] = *input.Phone
		}
		if input.Address != nil {
			fields["address"] = *input.Address
		}
		if err := us.userRepo.UpdateFields(ctx, tx, userID, fields); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		refreshed, err := us.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
		if err != nil || len(refreshed) == 0 {
			return fmt.Errorf("error reloading user: %w", err)
		}
		updated = refreshed[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return updated, nil
}

func (us *userService) ChangeRole(ctx context.Context, userID uuid.UUID, role string) (*types.User, error) {
	if !types.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if _, err := us.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := us.userRepo.UpdateRole(ctx, nil, userID, role); err != nil {
		return nil, fmt.Errorf("failed to change role: %w", err)
	}
	return us.GetByID(ctx, userID)
}

func (us *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	deleted, err := us.userRepo.Delete(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}
