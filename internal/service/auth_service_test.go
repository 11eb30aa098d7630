package service_test

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/blogify-api/internal/mocks"
	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/service"
	"github.com/blogify-api/internal/validation"
)

func registerInput() *models.RegisterInput {
	return &models.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  "secret1",
	}
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.services.Auth.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Error("Password must be stored hashed")
	}
	if user.Role != models.RoleUser {
		t.Errorf("Expected role user, got %q", user.Role)
	}

	result, err := f.services.Auth.Login(ctx, &models.LoginInput{Email: "ada@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Token == "" || result.User.ID != user.ID {
		t.Errorf("Unexpected login result %+v", result)
	}

	actor, err := f.services.Auth.Authenticate(result.Token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if actor.UserID != user.ID || actor.Role != models.RoleUser {
		t.Errorf("Unexpected actor %+v", actor)
	}
}

func TestAuthService_RegisterAdminEmail(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.AdminEmails = []string{" Root@Example.com "}
	repos, store := mocks.NewRepositories()
	f := newFixtureWith(t, cfg, repos, store)
	ctx := context.Background()

	input := registerInput()
	input.Email = "root@example.com"
	admin, err := f.services.Auth.Register(ctx, input)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Fatalf("Expected role admin, got %q", admin.Role)
	}

	_, other := registered(t, f, "bob", "bob@example.com")
	if other.Role != models.RoleUser {
		t.Errorf("Expected role user, got %q", other.Role)
	}

	// the admin token grants access to other profiles
	result, err := f.services.Auth.Login(ctx, &models.LoginInput{Email: "root@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	actor, err := f.services.Auth.Authenticate(result.Token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if _, err := f.services.Profile.Get(ctx, actor, other.UserID); err != nil {
		t.Errorf("Admin should read any profile: %v", err)
	}
}

func TestAuthService_RegisterConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.services.Auth.Register(ctx, registerInput()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	sameEmail := registerInput()
	sameEmail.Username = "other"
	if _, err := f.services.Auth.Register(ctx, sameEmail); !errors.Is(err, service.ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}

	sameUsername := registerInput()
	sameUsername.Email = "other@example.com"
	if _, err := f.services.Auth.Register(ctx, sameUsername); !errors.Is(err, service.ErrUsernameTaken) {
		t.Errorf("Expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	f := newFixture(t)

	input := registerInput()
	input.Password = "123"
	input.Email = "bad"

	_, err := f.services.Auth.Register(context.Background(), input)
	var verrs validation.Errors
	if !errors.As(err, &verrs) || len(verrs) != 2 {
		t.Errorf("Expected 2 validation errors, got %v", err)
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.services.Auth.Register(ctx, registerInput())

	tests := []struct {
		name  string
		input *models.LoginInput
	}{
		{"wrong password", &models.LoginInput{Email: "ada@example.com", Password: "nope"}},
		{"unknown email", &models.LoginInput{Email: "bob@example.com", Password: "secret1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.services.Auth.Login(ctx, tt.input); !errors.Is(err, service.ErrInvalidCredentials) {
				t.Errorf("Expected ErrInvalidCredentials, got %v", err)
			}
		})
	}

	if _, err := f.services.Auth.Authenticate("garbage"); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
}

func registered(t *testing.T, f *fixture, username, email string) (*models.User, *service.Actor) {
	t.Helper()
	in := registerInput()
	in.Username, in.Email = username, email
	user, err := f.services.Auth.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return user, &service.Actor{UserID: user.ID, Role: user.Role}
}

func TestProfileService_AccessControl(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, aliceActor := registered(t, f, "alice", "alice@example.com")
	_, bobActor := registered(t, f, "bob", "bob@example.com")

	if _, err := f.services.Profile.Get(ctx, aliceActor, alice.ID); err != nil {
		t.Errorf("Owner should read own profile: %v", err)
	}
	if _, err := f.services.Profile.Get(ctx, bobActor, alice.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
	if _, err := f.services.Profile.Get(ctx, nil, alice.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for anonymous, got %v", err)
	}

	admin := &service.Actor{UserID: 999, Role: models.RoleAdmin}
	if _, err := f.services.Profile.Get(ctx, admin, alice.ID); err != nil {
		t.Errorf("Admin should read any profile: %v", err)
	}
	if _, err := f.services.Profile.Get(ctx, admin, 12345); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestProfileService_PartialUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, actor := registered(t, f, "alice", "alice@example.com")
	registered(t, f, "bob", "bob@example.com")

	user, err := f.services.Profile.Update(ctx, actor, alice.ID, &models.ProfileUpdate{Phone: strPtr(" 555-0100 ")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if user.Phone == nil || *user.Phone != "555-0100" {
		t.Errorf("Expected trimmed phone, got %v", user.Phone)
	}
	if user.FirstName != "Ada" {
		t.Errorf("Untouched fields must be kept, got %q", user.FirstName)
	}

	same, err := f.services.Profile.Update(ctx, actor, alice.ID, &models.ProfileUpdate{})
	if err != nil || same.ID != alice.ID {
		t.Errorf("Empty update should return the profile, got %v, %v", same, err)
	}

	if _, err := f.services.Profile.Update(ctx, actor, alice.ID, &models.ProfileUpdate{Email: strPtr("bob@example.com")}); !errors.Is(err, service.ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
	if _, err := f.services.Profile.Update(ctx, actor, alice.ID, &models.ProfileUpdate{Email: strPtr("")}); err == nil {
		t.Error("Expected validation error for empty email")
	}
}

func TestProfileService_UpdatePicture(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, actor := registered(t, f, "alice", "alice@example.com")

	first, err := f.services.Profile.UpdatePicture(ctx, actor, alice.ID, bytes.NewReader(pngBytes(t)), "me.png")
	if err != nil {
		t.Fatalf("UpdatePicture failed: %v", err)
	}
	pattern := regexp.MustCompile(`^/uploads/profiles/profile-\d+-[0-9a-f]{16}\.png$`)
	if first.ProfilePicture == nil || !pattern.MatchString(*first.ProfilePicture) {
		t.Fatalf("Unexpected picture path %v", first.ProfilePicture)
	}
	oldPath := *first.ProfilePicture

	second, err := f.services.Profile.UpdatePicture(ctx, actor, alice.ID, bytes.NewReader(pngBytes(t)), "me2.png")
	if err != nil {
		t.Fatalf("UpdatePicture failed: %v", err)
	}
	if fileExists(f.uploadedFile(oldPath)) {
		t.Error("Previous picture should be removed")
	}
	if !fileExists(f.uploadedFile(*second.ProfilePicture)) {
		t.Error("New picture should exist")
	}

	_, err = f.services.Profile.UpdatePicture(ctx, actor, alice.ID, bytes.NewReader([]byte("text")), "notes.txt")
	var verrs validation.Errors
	if !errors.As(err, &verrs) || verrs[0].Field != "profile_picture" {
		t.Errorf("Expected profile_picture validation error, got %v", err)
	}
}

func TestProfileService_UpdatePictureTooLarge(t *testing.T) {
	cfg := testConfig(t)
	cfg.Upload.MaxProfileImageSize = 1536
	repos, store := mocks.NewRepositories()
	f := newFixtureWith(t, cfg, repos, store)
	alice, actor := registered(t, f, "alice", "alice@example.com")

	_, err := f.services.Profile.UpdatePicture(context.Background(), actor, alice.ID, bytes.NewReader(make([]byte, 4096)), "big.png")
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if verrs[0].Message != "profile picture must be at most 1.5 KB" {
		t.Errorf("Unexpected message %q", verrs[0].Message)
	}
}
