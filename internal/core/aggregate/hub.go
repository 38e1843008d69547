package aggregate

import (
	"context"
	"sync"

	"recipe-aggregator/internal/pkg/common"
)

// Snapshot 聚合狀態快照
// Recipes 只在操作成功時整批替換；ErrorMessage 為 nil 表示
// 上一次操作成功且沒有新的操作失敗（與空字串不同）
type Snapshot struct {
	Recipes      []common.Recipe `json:"recipes"`
	ErrorMessage *string         `json:"errorMessage"`
}

// Hub 快照廣播器
// 單一發布者、多個訂閱者；快照一經發布即視為不可變
type Hub struct {
	mu      sync.Mutex
	current Snapshot
	subs    map[int]chan Snapshot
	nextID  int
}

// NewHub 創建廣播器
func NewHub() *Hub {
	return &Hub{
		current: Snapshot{Recipes: []common.Recipe{}},
		subs:    make(map[int]chan Snapshot),
	}
}

// Current 取得目前快照
func (h *Hub) Current() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Publish 發布新快照並推送給所有訂閱者
// 訂閱者塞滿時丟棄這次快照，下一次發布會補上最新狀態
func (h *Hub) Publish(snapshot Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = snapshot
	for _, ch := range h.subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// Subscribe 訂閱快照
// 每個訂閱者先收到目前快照；ctx 結束時自動退訂並關閉 channel
func (h *Hub) Subscribe(ctx context.Context) <-chan Snapshot {
	ch := make(chan Snapshot, 16)

	h.mu.Lock()
	ch <- h.current
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
		close(ch)
	}()

	return ch
}
