package memory

import (
	"sync"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/food"
)

// FoodCatalog は売店商品カタログのインメモリ実装
type FoodCatalog struct {
	mu    sync.RWMutex
	byID  map[string]*food.Item
	order []*food.Item // 登録順
}

// NewFoodCatalog は空のカタログを作成する
func NewFoodCatalog() *FoodCatalog {
	return &FoodCatalog{byID: make(map[string]*food.Item)}
}

// Add は商品を登録する
func (c *FoodCatalog) Add(item *food.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[item.ID]; ok {
		return food.ErrItemAlreadyExists
	}

	clone := *item
	c.byID[clone.ID] = &clone
	c.order = append(c.order, &clone)
	return nil
}

// List は商品一覧を登録順で返す
func (c *FoodCatalog) List() []*food.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*food.Item, len(c.order))
	for i, item := range c.order {
		clone := *item
		out[i] = &clone
	}
	return out
}
