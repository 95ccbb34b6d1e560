package service

import (
	"errors"
	"testing"

	"github.com/techmart-next/internal/config"
	"github.com/techmart-next/internal/models"
	"github.com/techmart-next/internal/repository"

	"gorm.io/gorm"
)

func newTestAuthService(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	if err := db.AutoMigrate(&models.User{}, &models.UserProfile{}, &models.UserAddress{}); err != nil {
		t.Fatalf("auto migrate user tables failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key-for-unit-tests-only"
	cfg.JWT.ExpireHours = 1

	cartService := NewCartService(
		repository.NewCartRepository(db),
		NewInventoryOracle(repository.NewProductRepository(db)),
	)
	svc := NewUserAuthService(cfg, repository.NewUserRepository(db), repository.NewAddressRepository(db), cartService)
	return svc, db
}

func TestRegisterCreatesProfileAndPrimaryAddress(t *testing.T) {
	svc, db := newTestAuthService(t)

	user, token, _, err := svc.Register(RegisterInput{
		Username:  "alice",
		Email:     "Alice@Example.com",
		Password:  "secret123",
		FirstName: "Alice",
		LastName:  "Doe",
		Address:   "1 Main St",
		Phone:     "555-0100",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token on register")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "secret123" {
		t.Fatalf("password stored in plaintext")
	}

	var profile models.UserProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		t.Fatalf("load profile failed: %v", err)
	}
	if profile.FirstName != "Alice" || profile.LastName != "Doe" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	addresses := addressesFor(t, db, user.ID)
	if len(addresses) != 1 || !addresses[0].IsPrimary {
		t.Fatalf("expected one primary address, got %+v", addresses)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, _, _, err := svc.Register(RegisterInput{Username: "bob", Email: "bob@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// 邮箱重复
	if _, _, _, err := svc.Register(RegisterInput{Username: "bobby", Email: "bob@example.com", Password: "secret123"}); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate email, got %v", err)
	}
	// 用户名重复
	if _, _, _, err := svc.Register(RegisterInput{Username: "bob", Email: "bob2@example.com", Password: "secret123"}); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate username, got %v", err)
	}
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, _, _, err := svc.Register(RegisterInput{Username: "carol", Email: "not-an-email", Password: "secret123"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad email, got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Username: "carol", Email: "carol@example.com", Password: "short"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestLoginVerifiesCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, _, _, err := svc.Register(RegisterInput{Username: "dave", Email: "dave@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, _, err := svc.Login("dave@example.com", "secret123", "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Username != "dave" || token == "" {
		t.Fatalf("unexpected login result: user=%+v token=%q", user, token)
	}

	if _, _, _, err := svc.Login("dave@example.com", "wrong-pass", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "secret123", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginClearsGuestCartWithoutMerging(t *testing.T) {
	svc, db := newTestAuthService(t)

	user, _, _, err := svc.Register(RegisterInput{Username: "erin", Email: "erin@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	product := createTestProduct(t, db, "Earphones", 99.99, 10)
	guest := models.GuestCartOwner("guest-login")
	userOwner := models.UserCartOwner(user.ID)

	if err := svc.cartService.Add(AddCartLineInput{Owner: guest, ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("guest add failed: %v", err)
	}
	if err := svc.cartService.Add(AddCartLineInput{Owner: userOwner, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("user add failed: %v", err)
	}

	if _, _, _, err := svc.Login("erin@example.com", "secret123", "guest-login"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// 游客购物车被清空，而不是并入用户购物车
	if lines := cartLinesFor(t, db, guest); len(lines) != 0 {
		t.Fatalf("expected guest cart cleared, got %d lines", len(lines))
	}
	userLines := cartLinesFor(t, db, userOwner)
	if len(userLines) != 1 || userLines[0].Quantity != 1 {
		t.Fatalf("expected user cart untouched, got %+v", userLines)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, _, _, err := svc.Register(RegisterInput{Username: "frank", Email: "frank@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, expiresAt, err := svc.GenerateUserJWT(user)
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}
	if expiresAt.IsZero() {
		t.Fatalf("expected expiry time")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Username != user.Username {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := svc.ParseUserJWT(token + "tampered"); err == nil {
		t.Fatalf("expected error for tampered token")
	}
}

func TestUpdateProfileChecksUniqueness(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, _, _, err := svc.Register(RegisterInput{Username: "gina", Email: "gina@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register gina failed: %v", err)
	}
	user, _, _, err := svc.Register(RegisterInput{Username: "hank", Email: "hank@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register hank failed: %v", err)
	}

	taken := "gina"
	if _, _, err := svc.UpdateProfile(UpdateProfileInput{UserID: user.ID, Username: &taken}); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists for taken username, got %v", err)
	}

	newName := "henry"
	firstName := "Henry"
	updated, replaced, err := svc.UpdateProfile(UpdateProfileInput{UserID: user.ID, Username: &newName, FirstName: &firstName})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if replaced != "" {
		t.Fatalf("expected no replaced picture, got %q", replaced)
	}
	if updated.Username != "henry" {
		t.Fatalf("expected username updated, got %q", updated.Username)
	}
	if updated.Profile == nil || updated.Profile.FirstName != "Henry" {
		t.Fatalf("expected profile updated, got %+v", updated.Profile)
	}
}
