package memory

import (
	"sync"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/show"
)

// ShowRepository は上映回リポジトリのインメモリ実装
type ShowRepository struct {
	mu    sync.RWMutex
	byID  map[string]*show.Show
	order []*show.Show // 新しい順
}

// NewShowRepository は空の上映回リポジトリを作成する
func NewShowRepository() *ShowRepository {
	return &ShowRepository{byID: make(map[string]*show.Show)}
}

// Create は新しい上映回を登録する
func (r *ShowRepository) Create(s *show.Show) error {
	if err := s.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[s.ID]; ok {
		return show.ErrShowAlreadyExists
	}

	clone := *s
	r.byID[clone.ID] = &clone
	r.order = append([]*show.Show{&clone}, r.order...)
	return nil
}

// GetByID はIDから上映回を取得する
func (r *ShowRepository) GetByID(id string) (*show.Show, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, show.ErrShowNotFound
	}
	clone := *s
	return &clone, nil
}

// List は上映回一覧を新しい順で返す
func (r *ShowRepository) List() []*show.Show {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*show.Show, len(r.order))
	for i, s := range r.order {
		clone := *s
		out[i] = &clone
	}
	return out
}
