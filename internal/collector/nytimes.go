package collector

import (
	"fmt"
	"log"
	"net/url"
	"time"
)

// NYTimesFetcher 抓取纽约时报 top stories 接口
type NYTimesFetcher struct {
	Config ProviderConfig
}

func (f *NYTimesFetcher) Name() string {
	return SourceNYT
}

type nytResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Section       string `json:"section"`
		Title         string `json:"title"`
		Abstract      string `json:"abstract"`
		URL           string `json:"url"`
		Byline        string `json:"byline"`
		PublishedDate string `json:"published_date"`
	} `json:"results"`
}

func (f *NYTimesFetcher) Fetch() ([]Article, error) {
	log.Println("fetch NYT top stories...")

	params := url.Values{}
	params.Set("api-key", f.Config.APIKey)

	var body nytResponse
	if err := getJSON(f.Config.BaseURL, params, &body); err != nil {
		return nil, fmt.Errorf("nytimes: %w", err)
	}

	results := make([]Article, 0, len(body.Results))
	for _, a := range body.Results {
		results = append(results, Article{
			Title:       a.Title,
			Description: a.Abstract,
			Author:      a.Byline,
			Source:      SourceNYT,
			Category:    a.Section,
			// top stories 返回 RFC3339，部分列表接口只有日期
			PublishedAt: parseDate(a.PublishedDate, time.RFC3339, "2006-01-02"),
			RawData: map[string]any{
				"url": a.URL,
			},
		})
	}

	if len(results) == 0 {
		log.Println("nytimes: no articles fetched")
	}

	return results, nil
}
