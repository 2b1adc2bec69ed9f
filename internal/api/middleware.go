package api

import (
	"net/http"
	"strings"

	"github.com/LJTian/NewsHub/internal/storage"
	"github.com/gin-gonic/gin"
)

const userContextKey = "auth.user"

// authRequired 校验 Authorization: Bearer <token>，命中后把用户放进请求上下文
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
			return
		}

		user, err := s.store.FindTokenUser(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *storage.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*storage.User)
	return user
}
