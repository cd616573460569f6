package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/repos"
	"github.com/yungbote/storefront-backend/internal/data/repos/testutil"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/requestdata"
)

func newAuthServiceForTest(t *testing.T) (AuthService, *gorm.DB) {
	t.Helper()
	tx := testutil.Tx(t)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	userTokenRepo := repos.NewUserTokenRepo(tx, log)
	userService := NewUserService(tx, log, userRepo)
	svc := NewAuthService(tx, log, userRepo, userTokenRepo, userService,
		"test-secret", 15*time.Minute, 24*time.Hour)
	return svc, tx
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	ctx := context.Background()

	registered, access, refresh, err := svc.Register(ctx, CreateUserInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected both tokens, got access=%q refresh=%q", access, refresh)
	}
	if registered.Role != "user" {
		t.Fatalf("expected default user role, got %q", registered.Role)
	}

	loggedIn, access2, _, err := svc.Login(ctx, "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != registered.ID || access2 == "" {
		t.Fatalf("unexpected login result: %+v", loggedIn)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, CreateUserInput{
		Name: "Alice", Email: "alice@example.com", Password: "right-pass",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, _, err := svc.Login(ctx, "alice@example.com", "wrong-pass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	ctx := context.Background()

	_, _, refresh, err := svc.Register(ctx, CreateUserInput{
		Name: "Alice", Email: "alice@example.com", Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	newAccess, newRefresh, err := svc.Refresh(ctx, refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if newAccess == "" || newRefresh == "" || newRefresh == refresh {
		t.Fatalf("expected rotated tokens, got access=%q refresh=%q", newAccess, newRefresh)
	}

	// The presented refresh token is single use.
	if _, _, err := svc.Refresh(ctx, refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken on replay, got %v", err)
	}
}

func TestAuthService_Refresh_ExpiredTokenRejected(t *testing.T) {
	svc, tx := newAuthServiceForTest(t)
	ctx := context.Background()

	_, _, refresh, err := svc.Register(ctx, CreateUserInput{
		Name: "Alice", Email: "alice@example.com", Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := tx.Model(&types.UserToken{}).
		Where("refresh_token = ?", refresh).
		Update("expires_at", time.Now().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("expire token: %v", err)
	}

	if _, _, err := svc.Refresh(ctx, refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestAuthService_Refresh_PurgesExpiredTokens(t *testing.T) {
	svc, tx := newAuthServiceForTest(t)
	ctx := context.Background()

	_, _, refresh, err := svc.Register(ctx, CreateUserInput{
		Name: "Alice", Email: "alice@example.com", Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	other := testutil.SeedUser(t, tx, types.RoleUser)
	stale := &types.UserToken{
		ID:           uuid.New(),
		UserID:       other.ID,
		RefreshToken: uuid.NewString(),
		ExpiresAt:    time.Now().Add(-time.Hour),
	}
	if err := tx.Create(stale).Error; err != nil {
		t.Fatalf("seed stale token: %v", err)
	}

	if _, _, err := svc.Refresh(ctx, refresh); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	var count int64
	if err := tx.Model(&types.UserToken{}).Where("id = ?", stale.ID).Count(&count).Error; err != nil {
		t.Fatalf("count stale token: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected stale token purged on rotation, found %d rows", count)
	}
}

func TestAuthService_SetContextFromToken_RoundTrip(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	ctx := context.Background()

	registered, access, _, err := svc.Register(ctx, CreateUserInput{
		Name: "Alice", Email: "alice@example.com", Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	withIdentity, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("set context from token: %v", err)
	}
	rd := requestdata.GetRequestData(withIdentity)
	if rd == nil {
		t.Fatalf("expected request data on context")
	}
	if rd.UserID != registered.ID || rd.Email != "alice@example.com" || rd.Role != "user" {
		t.Fatalf("unexpected request data: %+v", rd)
	}
}

func TestAuthService_SetContextFromToken_RejectsTamperedToken(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	ctx := context.Background()

	_, access, _, err := svc.Register(ctx, CreateUserInput{
		Name: "Alice", Email: "alice@example.com", Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	tampered := access[:len(access)-2] + "xx"
	if _, err := svc.SetContextFromToken(ctx, tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Logout_RemovesRefreshTokens(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	ctx := context.Background()

	registered, _, refresh, err := svc.Register(ctx, CreateUserInput{
		Name: "Alice", Email: "alice@example.com", Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	asAlice := requestdata.WithRequestData(ctx, &requestdata.RequestData{
		UserID: registered.ID, Email: registered.Email, Role: registered.Role,
	})
	if err := svc.Logout(asAlice); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, _, err := svc.Refresh(ctx, refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}
