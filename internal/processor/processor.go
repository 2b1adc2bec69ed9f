package processor

import (
	"strings"
	"time"

	"github.com/LJTian/NewsHub/internal/collector"
)

// 缺省值与原始 API 的约定保持一致，客户端按这些字符串展示
const (
	DefaultAuthor      = "Unknown"
	DefaultDescription = "No description available"
	DefaultCategory    = "Unknown"
)

// Article 是写入存储层前的统一结构，所有字段保证非空
type Article struct {
	Title       string
	Description string
	Author      string
	Source      string
	Category    string
	PublishedAt time.Time
	RawData     map[string]any
}

// SimpleProcessor 做最基础的数据清洗与缺省值兜底
type SimpleProcessor struct {
	now func() time.Time
}

func NewSimpleProcessor() *SimpleProcessor {
	return &SimpleProcessor{now: time.Now}
}

// Process 清洗一批采集结果：去掉空标题、按标题去重（标题同时是入库的幂等键），
// 空字段统一兜底
func (p *SimpleProcessor) Process(items []collector.Article) []Article {
	out := make([]Article, 0, len(items))
	seen := make(map[string]struct{})

	for _, it := range items {
		title := strings.TrimSpace(it.Title)
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}

		description := strings.TrimSpace(it.Description)
		if description == "" {
			description = DefaultDescription
		}

		author := strings.TrimSpace(it.Author)
		if author == "" {
			author = DefaultAuthor
		}

		category := strings.TrimSpace(it.Category)
		if category == "" {
			category = DefaultCategory
		}

		publishedAt := it.PublishedAt
		if publishedAt.IsZero() {
			publishedAt = p.now()
		}

		out = append(out, Article{
			Title:       title,
			Description: description,
			Author:      author,
			Source:      it.Source,
			Category:    category,
			PublishedAt: publishedAt,
			RawData:     it.RawData,
		})
	}

	return out
}
