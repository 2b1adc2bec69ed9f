package scheduler

import (
	"log"
	"sync"

	"github.com/LJTian/NewsHub/internal/collector"
	"github.com/LJTian/NewsHub/internal/processor"
	"github.com/LJTian/NewsHub/internal/storage"
	"github.com/robfig/cron/v3"
)

// FetcherJob 单个数据源的采集任务，cron 表达式可按源独立配置
type FetcherJob struct {
	Fetcher  collector.Fetcher
	CronSpec string
}

// Scheduler 按 cron 独立调度各 provider 的采集；任务之间互不阻塞，
// 单个源失败只记日志。同一个源的两轮任务重叠时不做互斥，
// 依赖入库按标题幂等收敛
type Scheduler struct {
	cron      *cron.Cron
	jobs      []FetcherJob
	processor *processor.SimpleProcessor
	store     *storage.Store
}

func New(jobs []FetcherJob, p *processor.SimpleProcessor, store *storage.Store) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:      c,
		jobs:      jobs,
		processor: p,
		store:     store,
	}

	for _, j := range jobs {
		job := j
		if _, err := c.AddFunc(job.CronSpec, func() { s.runFetcher(job.Fetcher) }); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunOnce 并发执行所有采集任务一轮后返回，方便手动触发
func (s *Scheduler) RunOnce() {
	log.Println("start collect job...")

	var wg sync.WaitGroup
	for _, j := range s.jobs {
		job := j
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.runFetcher(job.Fetcher)
		}()
	}

	wg.Wait()
	log.Println("collect job done (all sources)")
}

func (s *Scheduler) runFetcher(f collector.Fetcher) {
	name := f.Name()
	log.Printf("fetch from %s...", name)

	items, err := f.Fetch()
	if err != nil {
		log.Printf("fetch %s error: %v", name, err)
		return
	}
	if len(items) == 0 {
		log.Printf("fetch %s got 0 items", name)
		return
	}

	processed := s.processor.Process(items)
	if len(processed) == 0 {
		return
	}

	if err := s.store.SaveBatch(processed); err != nil {
		log.Printf("save %s batch error: %v", name, err)
		return
	}

	// 条数 = 本轮采集解析到的数量（非“新增数”，已存在会按标题更新）
	log.Printf("%s done, fetched=%d saved=%d items", name, len(items), len(processed))
}
