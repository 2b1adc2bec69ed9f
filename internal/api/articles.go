package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/LJTian/NewsHub/internal/storage"
	"github.com/gin-gonic/gin"
)

func (s *Server) articleFilters(c *gin.Context) {
	opts, err := s.store.FetchFilterOptions()
	if err != nil {
		sendError(c, http.StatusNotFound, "Data not found..!", nil)
		return
	}
	sendResponse(c, opts, "data retrieved successfully.")
}

// queryList 同时接受重复参数（?a=1&a=2）与 PHP 风格的 a[] 写法，过滤空串
func queryList(c *gin.Context, key string) []string {
	raw := append(c.QueryArray(key), c.QueryArray(key+"[]")...)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func (s *Server) listArticles(c *gin.Context) {
	filter := storage.ArticleFilter{
		Keyword:    c.Query("keyword"),
		Categories: queryList(c, "category"),
		Sources:    queryList(c, "source"),
		Authors:    queryList(c, "author"),
		Date:       c.Query("date"),
		Month:      atoiDefault(c.Query("month"), 0),
		Year:       atoiDefault(c.Query("year"), 0),
	}
	page := atoiDefault(c.Query("page"), 1)
	perPage := atoiDefault(c.Query("per_page"), 10)

	result, err := s.store.FilterArticles(filter, page, perPage)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, paginationEnvelope(c, result))
}

func (s *Server) showArticle(c *gin.Context) {
	// 非数字 id 直接拒绝，不触发查询
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid ID..!", nil)
		return
	}

	a, err := s.store.FindArticle(uint(id))
	if errors.Is(err, storage.ErrNotFound) {
		sendError(c, http.StatusNotFound, "Article not found..!", nil)
		return
	}
	if err != nil {
		sendError(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	sendResponse(c, a, "Article fetched successfully..!")
}
