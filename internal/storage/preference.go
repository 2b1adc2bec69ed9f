package storage

import (
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// sanitizeList 去掉首尾空白，保留空串占位（与上游行为一致，
// feed 回退时按“首元素非空”判断列表是否生效）
func sanitizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

// SetPreferences 先按 user_id 查再写，保证每个用户只有一行
func (s *Store) SetPreferences(userID uint, sources, categories, authors []string) (*Preference, error) {
	sources = sanitizeList(sources)
	categories = sanitizeList(categories)
	authors = sanitizeList(authors)

	var pref Preference
	err := s.DB.Where("user_id = ?", userID).First(&pref).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		pref = Preference{
			UserID:              userID,
			PreferredSources:    datatypes.NewJSONSlice(sources),
			PreferredCategories: datatypes.NewJSONSlice(categories),
			PreferredAuthors:    datatypes.NewJSONSlice(authors),
		}
		if err := s.DB.Create(&pref).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		updates := map[string]any{
			"preferred_sources":    datatypes.NewJSONSlice(sources),
			"preferred_categories": datatypes.NewJSONSlice(categories),
			"preferred_authors":    datatypes.NewJSONSlice(authors),
		}
		if err := s.DB.Model(&pref).Updates(updates).Error; err != nil {
			return nil, err
		}
		pref.PreferredSources = datatypes.NewJSONSlice(sources)
		pref.PreferredCategories = datatypes.NewJSONSlice(categories)
		pref.PreferredAuthors = datatypes.NewJSONSlice(authors)
	}

	return &pref, nil
}

func (s *Store) GetPreferences(userID uint) (*Preference, error) {
	var pref Preference
	if err := s.DB.Where("user_id = ?", userID).First(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pref, nil
}
