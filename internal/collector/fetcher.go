package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Article 统一采集后的基础结构：各 provider 的原始 JSON 在 adapter 内映射到这里，
// 缺省字段由 processor 统一兜底后入库
type Article struct {
	Title       string
	Description string
	Author      string
	// Source 由 adapter 指定，不信任上游 payload
	Source   string
	Category string
	// PublishedAt 缺失或解析失败时保持零值，processor 会回退为采集时间
	PublishedAt time.Time
	RawData     map[string]any
}

// Fetcher 抽象每一个数据源
type Fetcher interface {
	Name() string
	Fetch() ([]Article, error)
}

// ProviderConfig 单个数据源的上游地址与凭证，来自配置
type ProviderConfig struct {
	BaseURL string
	APIKey  string
}

const (
	clientTimeout    = 10 * time.Second
	maxResponseBytes = 10 << 20 // 10MB
)

// getJSON 带查询参数 GET 上游并解析 JSON；非 200 一律视为错误，
// 调用方记录日志并在本轮返回零条记录，不做重试
func getJSON(baseURL string, params url.Values, out any) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	u.RawQuery = params.Encode()

	client := &http.Client{Timeout: clientTimeout}
	resp, err := client.Get(u.String())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// parseDate 依次尝试各 layout，全部失败返回零值，由调用方回退
func parseDate(s string, layouts ...string) time.Time {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
