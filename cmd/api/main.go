package main

import (
	"log"

	"github.com/LJTian/NewsHub/internal/api"
	"github.com/LJTian/NewsHub/internal/collector"
	"github.com/LJTian/NewsHub/internal/config"
	"github.com/LJTian/NewsHub/internal/processor"
	"github.com/LJTian/NewsHub/internal/scheduler"
	"github.com/LJTian/NewsHub/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env 可选，生产环境直接用环境变量
	_ = godotenv.Load()
	cfg := config.Load()

	store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}

	// 每个 provider 独立一个 cron 任务，单源失败不影响其它源
	jobs := providerJobs(cfg)
	if len(jobs) == 0 {
		log.Println("warn: no provider API keys configured, ingestion disabled")
	}

	p := processor.NewSimpleProcessor()
	s, err := scheduler.New(jobs, p, store)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	s.Start()

	r := gin.Default()
	apiServer := api.NewServer(store, nil)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}

// providerJobs 只注册配了密钥的源，缺密钥的跳过并记日志
func providerJobs(cfg *config.Config) []scheduler.FetcherJob {
	var jobs []scheduler.FetcherJob

	if cfg.NewsAPIKey != "" {
		jobs = append(jobs, scheduler.FetcherJob{
			Fetcher:  &collector.NewsAPIFetcher{Config: collector.ProviderConfig{BaseURL: cfg.NewsAPIURL, APIKey: cfg.NewsAPIKey}},
			CronSpec: cfg.CronSpec,
		})
	} else {
		log.Println("newsapi: skip, NEWS_API_KEY not configured")
	}

	if cfg.GuardianAPIKey != "" {
		jobs = append(jobs, scheduler.FetcherJob{
			Fetcher:  &collector.GuardianFetcher{Config: collector.ProviderConfig{BaseURL: cfg.GuardianAPIURL, APIKey: cfg.GuardianAPIKey}},
			CronSpec: cfg.CronSpec,
		})
	} else {
		log.Println("guardian: skip, GUARDIAN_API_KEY not configured")
	}

	if cfg.NYTAPIKey != "" {
		jobs = append(jobs, scheduler.FetcherJob{
			Fetcher:  &collector.NYTimesFetcher{Config: collector.ProviderConfig{BaseURL: cfg.NYTAPIURL, APIKey: cfg.NYTAPIKey}},
			CronSpec: cfg.CronSpec,
		})
	} else {
		log.Println("nytimes: skip, NYT_API_KEY not configured")
	}

	return jobs
}
