package api

import (
	"log"
	"net/http"

	"github.com/LJTian/NewsHub/internal/storage"
	"github.com/gin-gonic/gin"
)

// Mailer 密码重置链接的投递通道，由部署方注入
type Mailer interface {
	SendPasswordReset(email, token string) error
}

// LogMailer 默认实现：只记日志，适合本地与无邮件通道的环境
type LogMailer struct{}

func (LogMailer) SendPasswordReset(email, token string) error {
	log.Printf("password reset requested for %s, token=%s", email, token)
	return nil
}

type Server struct {
	store  *storage.Store
	mailer Mailer
}

func NewServer(store *storage.Store, mailer Mailer) *Server {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &Server{store: store, mailer: mailer}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/register", s.register)
		v1.POST("/login", s.login)
		v1.POST("/password/email", s.sendResetLink)
		v1.POST("/password/reset", s.resetPassword)

		authed := v1.Group("")
		authed.Use(s.authRequired())
		{
			authed.POST("/logout", s.logout)

			authed.GET("/article/filters", s.articleFilters)
			authed.GET("/articles", s.listArticles)
			authed.GET("/articles/show/:id", s.showArticle)

			authed.POST("/preferences", s.setPreferences)
			authed.GET("/preferences", s.getPreferences)
			authed.GET("/preferences/feed", s.personalizedFeed)
		}
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
