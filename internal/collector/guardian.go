package collector

import (
	"fmt"
	"log"
	"net/url"
	"time"
)

// GuardianFetcher 抓取 Guardian content API 的 search 接口
type GuardianFetcher struct {
	Config ProviderConfig
}

func (f *GuardianFetcher) Name() string {
	return SourceGuardian
}

type guardianResponse struct {
	Response struct {
		Status  string `json:"status"`
		Results []struct {
			ID                 string `json:"id"`
			SectionID          string `json:"sectionId"`
			SectionName        string `json:"sectionName"`
			WebPublicationDate string `json:"webPublicationDate"`
			WebTitle           string `json:"webTitle"`
			WebURL             string `json:"webUrl"`
			Fields             struct {
				Headline string `json:"headline"`
				Byline   string `json:"byline"`
				BodyText string `json:"bodyText"`
			} `json:"fields"`
		} `json:"results"`
	} `json:"response"`
}

func (f *GuardianFetcher) Fetch() ([]Article, error) {
	log.Println("fetch Guardian articles...")

	params := url.Values{}
	params.Set("api-key", f.Config.APIKey)
	params.Set("show-fields", "headline,byline,bodyText")

	var body guardianResponse
	if err := getJSON(f.Config.BaseURL, params, &body); err != nil {
		return nil, fmt.Errorf("guardian: %w", err)
	}

	results := make([]Article, 0, len(body.Response.Results))
	for _, a := range body.Response.Results {
		results = append(results, Article{
			Title:       a.WebTitle,
			Description: a.Fields.BodyText,
			Author:      a.Fields.Byline,
			Source:      SourceGuardian,
			Category:    a.SectionName,
			PublishedAt: parseDate(a.WebPublicationDate, time.RFC3339),
			RawData: map[string]any{
				"url":        a.WebURL,
				"section_id": a.SectionID,
			},
		})
	}

	if len(results) == 0 {
		log.Println("guardian: no articles fetched")
	}

	return results, nil
}
