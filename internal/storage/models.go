package storage

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Article 归一化后的文章；title 是天然的幂等键（详见 SaveBatch）
type Article struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:512;uniqueIndex" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Author      string `gorm:"size:256;index" json:"author"`
	Source      string `gorm:"size:64;index" json:"source"`
	Category    string `gorm:"size:128;index" json:"category"`
	PublishedAt time.Time `gorm:"index" json:"published_at"`
	// 冗余一份 UTC 日期 YYYY-MM-DD，按日/月/年筛选时避免方言相关的日期函数
	PublishedDate string            `gorm:"size:10;index" json:"-"`
	ExtraData     datatypes.JSONMap `json:"-"`

	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255" json:"name"`
	Email    string `gorm:"size:255;uniqueIndex" json:"email"`
	Password string `gorm:"size:255" json:"-"`

	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AccessToken 不透明 bearer token，落库只存 sha256 摘要；登出整体吊销
type AccessToken struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"index"`
	Name       string `gorm:"size:64"`
	TokenHash  string `gorm:"size:64;uniqueIndex"`
	LastUsedAt *time.Time

	CreatedAt time.Time
}

// PasswordReset 密码重置 token（sha256 摘要），60 分钟过期，消费即删除
type PasswordReset struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"size:255;index"`
	TokenHash string `gorm:"size:64"`

	CreatedAt time.Time
}

// Preference 每个用户一行，三组列表按 JSON 数组落库；
// 业务层只接触 []string，序列化止于存储边界
type Preference struct {
	ID                  uint                        `gorm:"primaryKey" json:"id"`
	UserID              uint                        `gorm:"uniqueIndex" json:"user_id"`
	PreferredSources    datatypes.JSONSlice[string] `json:"preferred_sources"`
	PreferredCategories datatypes.JSONSlice[string] `json:"preferred_categories"`
	PreferredAuthors    datatypes.JSONSlice[string] `json:"preferred_authors"`

	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
