package favorite

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"recipe-aggregator/internal/infrastructure/config"
	"recipe-aggregator/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Store 收藏集合
// 以 redis set 持久化，add/remove 都是 redis 自身的原子操作，
// 程序內不保留可寫副本，不同 id 的並發變更互不覆蓋
type Store struct {
	client *redis.Client
	key    string

	mu     sync.Mutex
	subs   map[int]chan []string
	nextID int
}

// NewStore 創建收藏集合
func NewStore(cfg *config.Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Favorites.RedisAddr,
		Password: cfg.Favorites.RedisPassword,
		DB:       cfg.Favorites.RedisDB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("收藏集合已初始化",
		zap.String("redis_addr", cfg.Favorites.RedisAddr),
		zap.String("鍵", cfg.Favorites.Key),
	)

	return &Store{
		client: client,
		key:    cfg.Favorites.Key,
		subs:   make(map[int]chan []string),
	}, nil
}

// Snapshot 取得目前的收藏集合
func (s *Store) Snapshot(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Contains 檢查某個 id 是否已收藏
func (s *Store) Contains(ctx context.Context, id string) (bool, error) {
	member, err := s.client.SIsMember(ctx, s.key, id).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return member, nil
}

// Add 加入收藏，重複加入是 no-op
func (s *Store) Add(ctx context.Context, id string) error {
	if err := s.client.SAdd(ctx, s.key, id).Err(); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	common.LogInfo("已加入收藏", zap.String("id", id))
	s.notify(ctx)
	return nil
}

// Remove 移除收藏，移除不存在的 id 是 no-op
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.client.SRem(ctx, s.key, id).Err(); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	common.LogInfo("已移除收藏", zap.String("id", id))
	s.notify(ctx)
	return nil
}

// Subscribe 訂閱收藏集合變更
// 每個訂閱者先收到目前的集合，之後在每次變更後收到新快照；
// ctx 結束時自動退訂並關閉 channel
func (s *Store) Subscribe(ctx context.Context) <-chan []string {
	ch := make(chan []string, 16)

	current, err := s.Snapshot(ctx)
	if err != nil {
		common.LogWarn("讀取收藏快照失敗", zap.Error(err))
		current = nil
	}
	ch <- current

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		close(ch)
	}()

	return ch
}

// notify 變更後向所有訂閱者推送新快照
// 訂閱者塞滿時丟棄這次快照，之後的變更會補上最新狀態
func (s *Store) notify(ctx context.Context) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		common.LogWarn("讀取收藏快照失敗", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// Ping 檢查持久層連線
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉收藏集合
func (s *Store) Close() error {
	return s.client.Close()
}
