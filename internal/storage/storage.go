package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrNotFound 统一的未命中错误，API 层据此返回 404
var ErrNotFound = errors.New("record not found")

// IdentityKey 文章入库的幂等键。默认按标题（与上游行为一致），
// 标题冲突覆盖的风险由这里显式承担；需要更强的身份语义时整体替换
type IdentityKey func(a *Article) map[string]any

// TitleKey 以标题作为幂等键
func TitleKey(a *Article) map[string]any {
	return map[string]any{"title": a.Title}
}

type Store struct {
	DB    *gorm.DB
	Redis *redis.Client

	identity IdentityKey
}

func NewStore(dsn, redisAddr string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		// 缓存缺席只降级，不阻止启动
		log.Printf("warn: redis ping failed: %v", err)
	}

	return NewStoreWithDB(db, rdb)
}

// NewStoreWithDB 基于已打开的连接构建 Store；rdb 可为 nil（测试或无缓存部署）
func NewStoreWithDB(db *gorm.DB, rdb *redis.Client) (*Store, error) {
	if err := db.AutoMigrate(&Article{}, &User{}, &AccessToken{}, &PasswordReset{}, &Preference{}); err != nil {
		return nil, err
	}

	return &Store{DB: db, Redis: rdb, identity: TitleKey}, nil
}

// SetIdentityKey 替换文章入库的幂等键
func (s *Store) SetIdentityKey(fn IdentityKey) {
	if fn != nil {
		s.identity = fn
	}
}
