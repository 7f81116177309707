// Package broadcast は接続中の全リスナーへのイベント配信を提供する
// 配信は at-most-once：発行時に接続していないリスナーには届かず、再送もしない
package broadcast

import (
	"sync"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/pkg/metrics"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/protocol"
)

// Subscriber はハブの1購読者を表す
// チャネルはバッファ付きで、満杯時の配信は黙って破棄される
type Subscriber struct {
	ch   chan protocol.Message
	role protocol.Role
}

// C は購読者の受信チャネルを返す
func (s *Subscriber) C() <-chan protocol.Message {
	return s.ch
}

// Hub は購読者の登録とメッセージのファンアウトを行う
// リスナーごとの配信順序は保たれるが、リスナー間の順序は保証しない
type Hub struct {
	mu      sync.Mutex
	subs    map[*Subscriber]struct{}
	metrics *metrics.Metrics // nil可
}

// NewHub は空のハブを作成する
func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		subs:    make(map[*Subscriber]struct{}),
		metrics: m,
	}
}

// Subscribe は新しい購読者を登録して返す
func (h *Hub) Subscribe(role protocol.Role, buffer int) *Subscriber {
	if buffer <= 0 {
		buffer = 32
	}
	s := &Subscriber{
		ch:   make(chan protocol.Message, buffer),
		role: role,
	}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Unsubscribe は購読者を削除してチャネルを閉じる
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.ch)
	}
	h.mu.Unlock()
}

// SetRole は購読者の権限を更新する（AUTH_REQUEST成功時）
func (h *Hub) SetRole(s *Subscriber, role protocol.Role) {
	h.mu.Lock()
	if _, ok := h.subs[s]; ok {
		s.role = role
	}
	h.mu.Unlock()
}

// Publish は全購読者にメッセージを配信する
func (h *Hub) Publish(msg protocol.Message) {
	h.publish(msg, false)
}

// PublishAdmins は管理者権限の購読者のみに配信する
func (h *Hub) PublishAdmins(msg protocol.Message) {
	h.publish(msg, true)
}

func (h *Hub) publish(msg protocol.Message, adminsOnly bool) {
	h.mu.Lock()
	for s := range h.subs {
		if adminsOnly && s.role != protocol.RoleAdmin {
			continue
		}
		select {
		case s.ch <- msg:
		default:
			// 受信が追いつかない購読者へのフレームは破棄する
			// 次のSTATS_UPDATEで追いつく前提
		}
	}
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.BroadcastsTotal.WithLabelValues(string(msg.Type)).Inc()
	}
}

// Count は現在の購読者数を返す
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
