package storage

import (
	"errors"
	"testing"
	"time"
)

// 唯一索引兜底重复注册，错误要能区分于其它写入失败
func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateUser("Jane", "jane@example.com", "hashed"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err := s.CreateUser("Other", "jane@example.com", "hashed2")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	var count int64
	if err := s.DB.Model(&User{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("user count = %d, want 1", count)
	}
}

func TestAccessTokenLifecycle(t *testing.T) {
	s := newTestStore(t)

	u, err := s.CreateUser("Jane", "jane@example.com", "hashed")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	plain, err := s.CreateAccessToken(u.ID, "auth_token")
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	if plain == "" {
		t.Fatalf("expected a plaintext token")
	}

	// 落库的不是明文
	var tok AccessToken
	if err := s.DB.First(&tok).Error; err != nil {
		t.Fatalf("load token: %v", err)
	}
	if tok.TokenHash == plain {
		t.Fatalf("token must be stored as a digest")
	}

	got, err := s.FindTokenUser(plain)
	if err != nil {
		t.Fatalf("FindTokenUser: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("token resolved to wrong user: %d", got.ID)
	}

	if err := s.RevokeUserTokens(u.ID); err != nil {
		t.Fatalf("RevokeUserTokens: %v", err)
	}
	if _, err := s.FindTokenUser(plain); err != ErrNotFound {
		t.Fatalf("revoked token must not resolve, got %v", err)
	}
}

func TestFindTokenUserRejectsUnknownToken(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.FindTokenUser("no-such-token"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	s := newTestStore(t)

	u, err := s.CreateUser("Jane", "jane@example.com", "old-hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	tokenPlain, err := s.CreateAccessToken(u.ID, "auth_token")
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}

	reset, err := s.CreatePasswordReset("jane@example.com")
	if err != nil {
		t.Fatalf("CreatePasswordReset: %v", err)
	}

	if err := s.ConsumePasswordReset("jane@example.com", reset, "new-hash"); err != nil {
		t.Fatalf("ConsumePasswordReset: %v", err)
	}

	updated, err := s.FindUserByEmail("jane@example.com")
	if err != nil {
		t.Fatalf("FindUserByEmail: %v", err)
	}
	if updated.Password != "new-hash" {
		t.Fatalf("password not updated: %q", updated.Password)
	}

	// 重置后旧登录态一并吊销，token 一次性
	if _, err := s.FindTokenUser(tokenPlain); err != ErrNotFound {
		t.Fatalf("existing sessions must be revoked on reset, got %v", err)
	}
	if err := s.ConsumePasswordReset("jane@example.com", reset, "again"); err != ErrInvalidResetToken {
		t.Fatalf("reset token must be single use, got %v", err)
	}
}

func TestPasswordResetExpires(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateUser("Jane", "jane@example.com", "old-hash"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	reset, err := s.CreatePasswordReset("jane@example.com")
	if err != nil {
		t.Fatalf("CreatePasswordReset: %v", err)
	}

	// 把 created_at 拨回过期点之前
	stale := time.Now().Add(-2 * time.Hour)
	if err := s.DB.Model(&PasswordReset{}).Where("email = ?", "jane@example.com").
		Update("created_at", stale).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	if err := s.ConsumePasswordReset("jane@example.com", reset, "new-hash"); err != ErrInvalidResetToken {
		t.Fatalf("expired token must be rejected, got %v", err)
	}
}

func TestCreatePasswordResetUnknownEmail(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreatePasswordReset("nobody@example.com"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown email, got %v", err)
	}
}
