package storage

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

// ErrInvalidResetToken 重置 token 不存在或已过期
var ErrInvalidResetToken = errors.New("invalid or expired reset token")

// ErrEmailTaken 邮箱已被注册
var ErrEmailTaken = errors.New("email already taken")

func (s *Store) CreateUser(name, email, passwordHash string) (*User, error) {
	u := &User{Name: name, Email: email, Password: passwordHash}
	if err := s.DB.Create(u).Error; err != nil {
		// 写入撞上 email 唯一索引：并发注册时预检查会漏掉，
		// 这里按结果判定，不依赖方言相关的错误码
		var existing User
		if s.DB.Where("email = ?", email).First(&existing).Error == nil {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *Store) FindUserByEmail(email string) (*User, error) {
	var u User
	if err := s.DB.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) UpdateUserPassword(userID uint, passwordHash string) error {
	return s.DB.Model(&User{}).Where("id = ?", userID).
		Update("password", passwordHash).Error
}

// hashToken token 落库前的摘要；对外只发放明文一次
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CreateAccessToken 发放一个不透明 bearer token，返回明文
func (s *Store) CreateAccessToken(userID uint, name string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	plain := hex.EncodeToString(raw)

	tok := &AccessToken{
		UserID:    userID,
		Name:      name,
		TokenHash: hashToken(plain),
	}
	if err := s.DB.Create(tok).Error; err != nil {
		return "", err
	}
	return plain, nil
}

// FindTokenUser 按明文 token 找用户，顺带刷新 last_used_at
func (s *Store) FindTokenUser(plain string) (*User, error) {
	var tok AccessToken
	if err := s.DB.Where("token_hash = ?", hashToken(plain)).First(&tok).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var u User
	if err := s.DB.First(&u, tok.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	_ = s.DB.Model(&tok).Update("last_used_at", &now).Error

	return &u, nil
}

// RevokeUserTokens 吊销用户全部 token（登出与密码重置共用）
func (s *Store) RevokeUserTokens(userID uint) error {
	return s.DB.Where("user_id = ?", userID).Delete(&AccessToken{}).Error
}

// CreatePasswordReset 生成一次性的密码重置 token；同邮箱旧 token 作废
func (s *Store) CreatePasswordReset(email string) (string, error) {
	if _, err := s.FindUserByEmail(email); err != nil {
		return "", err
	}

	if err := s.DB.Where("email = ?", email).Delete(&PasswordReset{}).Error; err != nil {
		return "", err
	}

	token := uuid.NewString()
	pr := &PasswordReset{Email: email, TokenHash: hashToken(token)}
	if err := s.DB.Create(pr).Error; err != nil {
		return "", err
	}
	return token, nil
}

// ConsumePasswordReset 校验并消费重置 token：改密、删 token、吊销既有登录态
func (s *Store) ConsumePasswordReset(email, token, passwordHash string) error {
	var pr PasswordReset
	err := s.DB.Where("email = ? AND token_hash = ?", email, hashToken(token)).First(&pr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}

	if time.Since(pr.CreatedAt) > resetTokenTTL {
		_ = s.DB.Delete(&pr).Error
		return ErrInvalidResetToken
	}

	user, err := s.FindUserByEmail(email)
	if err != nil {
		return err
	}
	if err := s.UpdateUserPassword(user.ID, passwordHash); err != nil {
		return err
	}
	if err := s.DB.Delete(&pr).Error; err != nil {
		return err
	}
	return s.RevokeUserTokens(user.ID)
}
