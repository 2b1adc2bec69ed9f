package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/LJTian/NewsHub/internal/processor"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// toValidUTF8 规范非法 UTF-8，避免 PostgreSQL invalid byte sequence 错误
func toValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// truncateRunesDB 按 rune 数截断，确保不超过 varchar 字段长度
func truncateRunesDB(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}

// SaveBatch 逐条幂等入库：按幂等键（默认标题）命中则更新可变字段，
// 未命中则新建。不跨行开事务，批次中途失败留下的部分写入
// 由下一轮采集幂等修复
func (s *Store) SaveBatch(items []processor.Article) error {
	for _, it := range items {
		pubDate := it.PublishedAt.UTC().Format("2006-01-02")
		// 先留住本轮采集值：FirstOrCreate 命中已有记录时会把旧行回填进 a
		desc := toValidUTF8(it.Description)
		author := toValidUTF8(truncateRunesDB(it.Author, 256))
		category := toValidUTF8(truncateRunesDB(it.Category, 128))
		extra := datatypes.JSONMap(it.RawData)

		a := &Article{
			Title:         toValidUTF8(truncateRunesDB(it.Title, 512)),
			Description:   desc,
			Author:        author,
			Source:        it.Source,
			Category:      category,
			PublishedAt:   it.PublishedAt,
			PublishedDate: pubDate,
			ExtraData:     extra,
		}

		if err := s.DB.Where(s.identity(a)).FirstOrCreate(a).Error; err != nil {
			return fmt.Errorf("upsert %q: %w", a.Title, err)
		}
		// 命中已有记录时刷新可变字段，id 与创建时间保持不变
		if err := s.DB.Model(a).Updates(map[string]any{
			"description":    desc,
			"author":         author,
			"source":         it.Source,
			"category":       category,
			"published_at":   it.PublishedAt,
			"published_date": pubDate,
			"extra_data":     extra,
		}).Error; err != nil {
			return fmt.Errorf("update %q: %w", a.Title, err)
		}
	}
	return nil
}

// ArticleFilter 查询条件集合，零值字段不参与过滤，全部条件取 AND
type ArticleFilter struct {
	Keyword    string
	Categories []string
	Sources    []string
	Authors    []string
	Date       string // YYYY-MM-DD，精确到天
	Month      int    // 1-12，不限年份
	Year       int
}

// ArticlePage 一页查询结果
type ArticlePage struct {
	Items    []Article
	Page     int
	PerPage  int
	Total    int64
	LastPage int
}

const defaultPerPage = 10

// FilterArticles 组合过滤条件并分页，按发布时间倒序
func (s *Store) FilterArticles(f ArticleFilter, page, perPage int) (*ArticlePage, error) {
	if perPage <= 0 || perPage > 100 {
		perPage = defaultPerPage
	}
	if page <= 0 {
		page = 1
	}

	db := s.DB.Model(&Article{})

	if f.Keyword != "" {
		kw := "%" + f.Keyword + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", kw, kw)
	}
	if len(f.Categories) > 0 {
		db = db.Where("category IN ?", f.Categories)
	}
	if len(f.Sources) > 0 {
		db = db.Where("source IN ?", f.Sources)
	}
	if len(f.Authors) > 0 {
		db = db.Where("author IN ?", f.Authors)
	}
	if f.Date != "" {
		if t, err := time.Parse("2006-01-02", f.Date); err == nil {
			db = db.Where("published_date = ?", t.Format("2006-01-02"))
		}
	}
	// substr 在 postgres 与 sqlite 下行为一致，避免方言化的日期提取函数
	if f.Month >= 1 && f.Month <= 12 {
		db = db.Where("substr(published_date, 6, 2) = ?", fmt.Sprintf("%02d", f.Month))
	}
	if f.Year > 0 {
		db = db.Where("substr(published_date, 1, 4) = ?", strconv.Itoa(f.Year))
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []Article
	if err := db.Order("published_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&items).Error; err != nil {
		return nil, err
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	return &ArticlePage{
		Items:    items,
		Page:     page,
		PerPage:  perPage,
		Total:    total,
		LastPage: lastPage,
	}, nil
}

// FindArticle 按 id 查单条
func (s *Store) FindArticle(id uint) (*Article, error) {
	var a Article
	if err := s.DB.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FilterOptions 供筛选表单使用的 distinct 值集合
type FilterOptions struct {
	Sources    []string `json:"sources"`
	Authors    []string `json:"authors"`
	Categories []string `json:"categories"`
}

const filterOptionsCacheKey = "articles:filter-options"
const filterOptionsCacheTTL = 5 * time.Minute

// FetchFilterOptions 汇总 source/author/category 的 distinct 值，
// 走 Redis 读穿缓存（5 分钟 TTL，只依赖自然过期，不做通配失效）
func (s *Store) FetchFilterOptions() (*FilterOptions, error) {
	ctx := context.Background()

	if s.Redis != nil {
		if bs, err := s.Redis.Get(ctx, filterOptionsCacheKey).Bytes(); err == nil {
			var cached FilterOptions
			if err := json.Unmarshal(bs, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	opts := &FilterOptions{}
	var err error
	if opts.Sources, err = s.distinctArticleColumn("source"); err != nil {
		return nil, err
	}
	if opts.Authors, err = s.distinctArticleColumn("author"); err != nil {
		return nil, err
	}
	if opts.Categories, err = s.distinctArticleColumn("category"); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if bs, err := json.Marshal(opts); err == nil {
			_ = s.Redis.Set(ctx, filterOptionsCacheKey, bs, filterOptionsCacheTTL).Err()
		}
	}

	return opts, nil
}

// distinctArticleColumn 只接受固定列名调用，不拼接外部输入
func (s *Store) distinctArticleColumn(column string) ([]string, error) {
	var values []string
	err := s.DB.Model(&Article{}).
		Distinct().
		Where(column+" <> ''").
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}
