package memory

import (
	"sync"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/seat"
)

// SeatStore は座席状態のインメモリ実装
// 全テーブルを単一のRWMutexで保護し、TrySetBooked の
// check-and-set が同時実行下でも必ず1件だけ成功することを保証する
type SeatStore struct {
	mu      sync.RWMutex
	layouts map[string][]*seat.Seat          // showID → 列→番号順の座席
	index   map[string]map[string]*seat.Seat // showID → seatID → 座席
}

// NewSeatStore は空の座席ストアを作成する
func NewSeatStore() *SeatStore {
	return &SeatStore{
		layouts: make(map[string][]*seat.Seat),
		index:   make(map[string]map[string]*seat.Seat),
	}
}

// CreateShow は上映回の座席レイアウトを一度だけ生成する
func (s *SeatStore) CreateShow(showID string, plan seat.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.layouts[showID]; ok {
		return seat.ErrShowAlreadyExists
	}

	layout := plan.Generate()
	byID := make(map[string]*seat.Seat, len(layout))
	for _, st := range layout {
		byID[st.ID] = st
	}
	s.layouts[showID] = layout
	s.index[showID] = byID
	return nil
}

// Layout は上映回の座席一覧のコピーを返す
func (s *SeatStore) Layout(showID string) ([]*seat.Seat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	layout, ok := s.layouts[showID]
	if !ok {
		return nil, seat.ErrShowNotFound
	}

	out := make([]*seat.Seat, len(layout))
	for i, st := range layout {
		c := *st
		out[i] = &c
	}
	return out, nil
}

// TrySetBooked は座席の未予約→予約済み遷移を原子的に行い、
// 成功した座席のコピーを返す
func (s *SeatStore) TrySetBooked(showID, seatID string) (*seat.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.index[showID]
	if !ok {
		return nil, seat.ErrShowNotFound
	}
	st, ok := byID[seatID]
	if !ok {
		return nil, seat.ErrSeatNotFound
	}
	if err := st.Book(); err != nil {
		return nil, err
	}

	c := *st
	return &c, nil
}

// ResetShow は上映回の全座席を未予約状態に戻す（冪等）
func (s *SeatStore) ResetShow(showID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout, ok := s.layouts[showID]
	if !ok {
		return seat.ErrShowNotFound
	}
	for _, st := range layout {
		st.Reset()
	}
	return nil
}

// Totals は全上映回の予約済み席数・総席数・チケット売上を返す
func (s *SeatStore) Totals() (booked, total, revenue int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, layout := range s.layouts {
		for _, st := range layout {
			total++
			if st.IsBooked() {
				booked++
				revenue += st.Price
			}
		}
	}
	return booked, total, revenue
}

// ShowTotals は単一上映回の予約済み席数・総席数を返す
func (s *SeatStore) ShowTotals(showID string) (booked, total int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	layout, ok := s.layouts[showID]
	if !ok {
		return 0, 0, seat.ErrShowNotFound
	}
	for _, st := range layout {
		total++
		if st.IsBooked() {
			booked++
		}
	}
	return booked, total, nil
}
