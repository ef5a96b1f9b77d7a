package service

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/pkg/security"
	"context"
	"errors"
	"testing"
)

func TestUserLifecycle(t *testing.T) {
	db := newTestDB(t)
	s := newServices(t, db, nil)
	ctx := context.Background()

	user, err := s.users.Register(ctx, &dto.RegisterDTO{Username: "traveler", Password: "secret123", Nickname: "여행자"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.UserID == 0 || user.Role != "USER" {
		t.Errorf("registered user = %+v", user)
	}

	if _, err := s.users.Register(ctx, &dto.RegisterDTO{Username: "traveler", Password: "other123", Nickname: "x"}); !errors.Is(err, ErrUserUsernameExist) {
		t.Errorf("duplicate Register() error = %v, want ErrUserUsernameExist", err)
	}

	if _, err := s.users.Login(ctx, &dto.CredentialDTO{Username: "traveler", Password: "wrong"}); !errors.Is(err, ErrPasswordIncorrect) {
		t.Errorf("Login(wrong password) error = %v, want ErrPasswordIncorrect", err)
	}
	if _, err := s.users.Login(ctx, &dto.CredentialDTO{Username: "ghost", Password: "secret123"}); !errors.Is(err, ErrPasswordIncorrect) {
		t.Errorf("Login(unknown user) error = %v, want ErrPasswordIncorrect", err)
	}

	token, err := s.users.Login(ctx, &dto.CredentialDTO{Username: "traveler", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	claims, err := security.ValidateToken(token.Token)
	if err != nil || claims.UserID != user.UserID {
		t.Fatalf("token claims = %+v, %v", claims, err)
	}

	sig, _ := security.ExtractSignature(token.Token)
	if revoked, _ := s.users.IsTokenRevoked(ctx, sig); revoked {
		t.Fatal("fresh token should not be revoked")
	}
	if err := s.users.Logout(ctx, token.Token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if revoked, _ := s.users.IsTokenRevoked(ctx, sig); !revoked {
		t.Error("token should be revoked after logout")
	}

	info, err := s.users.GetUserInfo(ctx, user.UserID)
	if err != nil || info.Nickname != "여행자" {
		t.Errorf("GetUserInfo() = %+v, %v", info, err)
	}
	if _, err := s.users.GetUserInfo(ctx, 9999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserInfo(missing) error = %v, want ErrUserNotFound", err)
	}
}
