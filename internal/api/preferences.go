package api

import (
	"errors"
	"net/http"

	"github.com/LJTian/NewsHub/internal/storage"
	"github.com/gin-gonic/gin"
)

type preferencesRequest struct {
	Sources    []string `json:"sources" binding:"required"`
	Categories []string `json:"categories" binding:"required"`
	Authors    []string `json:"authors" binding:"required"`
}

func (s *Server) setPreferences(c *gin.Context) {
	var req preferencesRequest
	if !bindJSON(c, &req) {
		return
	}

	user := currentUser(c)
	pref, err := s.store.SetPreferences(user.ID, req.Sources, req.Categories, req.Authors)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Preferences update failed..!", nil)
		return
	}

	sendResponse(c, pref, "Preferences updated successfully..!")
}

func (s *Server) getPreferences(c *gin.Context) {
	user := currentUser(c)
	pref, err := s.store.GetPreferences(user.ID)
	if errors.Is(err, storage.ErrNotFound) {
		sendError(c, http.StatusNotFound, "Preferences not found.", nil)
		return
	}
	if err != nil {
		sendError(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	sendResponse(c, pref, "Preferences fetched successfully..!")
}

// hasLeadingValue 列表“生效”的判定与上游一致：首元素非空才算有偏好
func hasLeadingValue(list []string) bool {
	return len(list) > 0 && list[0] != ""
}

func (s *Server) personalizedFeed(c *gin.Context) {
	user := currentUser(c)
	pref, err := s.store.GetPreferences(user.ID)
	if errors.Is(err, storage.ErrNotFound) {
		sendError(c, http.StatusNotFound, "Preferences not found.", nil)
		return
	}
	if err != nil {
		sendError(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	categories := queryList(c, "category")
	sources := queryList(c, "source")
	authors := queryList(c, "author")

	// 显式过滤参数永远优先；三者全缺省时才回退到存储的偏好
	if len(categories) == 0 && len(sources) == 0 && len(authors) == 0 {
		if hasLeadingValue(pref.PreferredCategories) {
			categories = pref.PreferredCategories
		}
		if hasLeadingValue(pref.PreferredSources) {
			sources = pref.PreferredSources
		}
		if hasLeadingValue(pref.PreferredAuthors) {
			authors = pref.PreferredAuthors
		}
	}

	filter := storage.ArticleFilter{
		Categories: categories,
		Sources:    sources,
		Authors:    authors,
	}
	page := atoiDefault(c.Query("page"), 1)
	perPage := atoiDefault(c.Query("per_page"), 10)

	result, err := s.store.FilterArticles(filter, page, perPage)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	if len(result.Items) == 0 {
		sendError(c, http.StatusNotFound, "No articles found matching your preferences.", nil)
		return
	}

	c.JSON(http.StatusOK, paginationEnvelope(c, result))
}
