package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/LJTian/NewsHub/internal/storage"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	// 邮箱唯一性由创建路径判定（唯一索引兜底并发），按 422 字段错误返回
	user, err := s.store.CreateUser(req.Name, req.Email, string(hash))
	if errors.Is(err, storage.ErrEmailTaken) {
		sendError(c, http.StatusUnprocessableEntity, "Validation Error.", gin.H{
			"email": []string{"The email has already been taken."},
		})
		return
	}
	if err != nil {
		sendError(c, http.StatusBadRequest, "User registration failed..!", nil)
		return
	}

	sendResponse(c, gin.H{"name": user.Name}, "User registered successfully..!")
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := s.store.FindUserByEmail(req.Email)
	if err != nil {
		sendError(c, http.StatusUnauthorized, "Invalid credentials..!", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		sendError(c, http.StatusUnauthorized, "Invalid credentials..!", nil)
		return
	}

	token, err := s.store.CreateAccessToken(user.ID, "auth_token")
	if err != nil {
		sendError(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	sendResponse(c, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"name":         user.Name,
	}, "Logged in successfully..!")
}

func (s *Server) logout(c *gin.Context) {
	user := currentUser(c)
	if err := s.store.RevokeUserTokens(user.ID); err != nil {
		sendError(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	sendResponse(c, nil, "Logged out successfully..!")
}

type resetLinkRequest struct {
	Email string `json:"email" binding:"required"`
}

func (s *Server) sendResetLink(c *gin.Context) {
	var req resetLinkRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := s.store.CreatePasswordReset(req.Email)
	if err != nil {
		sendError(c, http.StatusNotFound, "Failed to send password reset link..!", nil)
		return
	}

	if err := s.mailer.SendPasswordReset(req.Email, token); err != nil {
		log.Printf("send reset mail to %s error: %v", req.Email, err)
		sendError(c, http.StatusNotFound, "Failed to send password reset link..!", nil)
		return
	}

	sendResponse(c, nil, "Password reset link sent successfully..!")
}

type resetPasswordRequest struct {
	Email                string `json:"email" binding:"required,email"`
	Token                string `json:"token" binding:"required"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

func (s *Server) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	err = s.store.ConsumePasswordReset(req.Email, req.Token, string(hash))
	switch {
	case errors.Is(err, storage.ErrInvalidResetToken), errors.Is(err, storage.ErrNotFound):
		sendError(c, http.StatusBadRequest, "This password reset token is invalid.", nil)
	case err != nil:
		sendError(c, http.StatusInternalServerError, "internal server error", nil)
	default:
		sendResponse(c, nil, "Your password has been reset.")
	}
}
