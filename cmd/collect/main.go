package main

import (
	"log"

	"github.com/LJTian/NewsHub/internal/collector"
	"github.com/LJTian/NewsHub/internal/config"
	"github.com/LJTian/NewsHub/internal/processor"
	"github.com/LJTian/NewsHub/internal/scheduler"
	"github.com/LJTian/NewsHub/internal/storage"
	"github.com/joho/godotenv"
)

// 一个仅执行一次采集任务的命令行入口：适合手动触发采集
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}

	jobs := []scheduler.FetcherJob{
		{Fetcher: &collector.NewsAPIFetcher{Config: collector.ProviderConfig{BaseURL: cfg.NewsAPIURL, APIKey: cfg.NewsAPIKey}}, CronSpec: cfg.CronSpec},
		{Fetcher: &collector.GuardianFetcher{Config: collector.ProviderConfig{BaseURL: cfg.GuardianAPIURL, APIKey: cfg.GuardianAPIKey}}, CronSpec: cfg.CronSpec},
		{Fetcher: &collector.NYTimesFetcher{Config: collector.ProviderConfig{BaseURL: cfg.NYTAPIURL, APIKey: cfg.NYTAPIKey}}, CronSpec: cfg.CronSpec},
	}

	p := processor.NewSimpleProcessor()
	s, err := scheduler.New(jobs, p, store)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}

	// 只执行一轮采集任务后退出
	s.RunOnce()
}
