package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/LJTian/NewsHub/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// 响应包络：{success, message, data}；列表接口单独走分页包络
func sendResponse(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func sendError(c *gin.Context, code int, message string, data any) {
	c.JSON(code, gin.H{
		"success": false,
		"message": message,
		"data":    data,
	})
}

// bindJSON 绑定请求体；校验失败统一回 422 + 字段级错误信息
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		sendError(c, http.StatusUnprocessableEntity, "Validation Error.", fieldErrors(verrs))
		return false
	}
	sendError(c, http.StatusUnprocessableEntity, "Validation Error.", gin.H{
		"body": []string{"The request body is malformed."},
	})
	return false
}

func fieldErrors(verrs validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := snakeCase(fe.Field())
		out[field] = append(out[field], fieldMessage(field, fe))
	}
	return out
}

func fieldMessage(field string, fe validator.FieldError) string {
	label := strings.ReplaceAll(field, "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", label)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", label, fe.Param())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", label, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", strings.ToLower(fe.Param()))
	default:
		return fmt.Sprintf("The %s is invalid.", label)
	}
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// paginationEnvelope 列表响应的分页包络，导航链接只保留 page 参数
func paginationEnvelope(c *gin.Context, page *storage.ArticlePage) gin.H {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	path := scheme + "://" + c.Request.Host + c.Request.URL.Path

	pageURL := func(p int) any {
		if p < 1 || p > page.LastPage {
			return nil
		}
		return fmt.Sprintf("%s?page=%d", path, p)
	}

	var from, to any
	if len(page.Items) > 0 {
		from = (page.Page-1)*page.PerPage + 1
		to = (page.Page-1)*page.PerPage + len(page.Items)
	}

	return gin.H{
		"current_page":   page.Page,
		"data":           page.Items,
		"first_page_url": pageURL(1),
		"from":           from,
		"last_page":      page.LastPage,
		"last_page_url":  pageURL(page.LastPage),
		"next_page_url":  pageURL(page.Page + 1),
		"path":           path,
		"per_page":       page.PerPage,
		"prev_page_url":  pageURL(page.Page - 1),
		"to":             to,
		"total":          page.Total,
	}
}
