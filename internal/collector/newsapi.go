package collector

import (
	"fmt"
	"log"
	"net/url"
	"time"
)

// SourceNewsAPI 等常量同时作为入库的 source 字段与筛选值，保持三端一致
const (
	SourceNewsAPI  = "NewsAPI"
	SourceGuardian = "The Guardian"
	SourceNYT      = "New York Times"
)

// NewsAPIFetcher 抓取 NewsAPI 的 top-headlines 接口
type NewsAPIFetcher struct {
	Config ProviderConfig
}

func (f *NewsAPIFetcher) Name() string {
	return SourceNewsAPI
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Author      string `json:"author"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Category    string `json:"category"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

func (f *NewsAPIFetcher) Fetch() ([]Article, error) {
	log.Println("fetch NewsAPI top headlines...")

	params := url.Values{}
	params.Set("apiKey", f.Config.APIKey)
	params.Set("country", "us")

	var body newsAPIResponse
	if err := getJSON(f.Config.BaseURL, params, &body); err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}

	results := make([]Article, 0, len(body.Articles))
	for _, a := range body.Articles {
		// NewsAPI 的 top-headlines 不回传分类，默认归入 general
		category := a.Category
		if category == "" {
			category = "general"
		}

		results = append(results, Article{
			Title:       a.Title,
			Description: a.Description,
			Author:      a.Author,
			Source:      SourceNewsAPI,
			Category:    category,
			PublishedAt: parseDate(a.PublishedAt, time.RFC3339),
			RawData: map[string]any{
				"url":         a.URL,
				"source_name": a.Source.Name,
			},
		})
	}

	if len(results) == 0 {
		log.Println("newsapi: no articles fetched")
	}

	return results, nil
}
