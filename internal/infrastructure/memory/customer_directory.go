package memory

import (
	"sync"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/customer"
)

// CustomerDirectory は顧客台帳のインメモリ実装
// 外部に返す顧客は常にディープコピーし、変更は Apply 経由に限定する
type CustomerDirectory struct {
	mu      sync.RWMutex
	byID    map[string]*customer.Customer
	byEmail map[string]*customer.Customer
	order   []*customer.Customer // 登録順
}

// NewCustomerDirectory は空の顧客台帳を作成する
func NewCustomerDirectory() *CustomerDirectory {
	return &CustomerDirectory{
		byID:    make(map[string]*customer.Customer),
		byEmail: make(map[string]*customer.Customer),
	}
}

// Create は新しい顧客を登録する
func (d *CustomerDirectory) Create(c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if c.Email != "" {
		if _, ok := d.byEmail[c.Email]; ok {
			return customer.ErrEmailAlreadyExists
		}
	}
	if _, ok := d.byID[c.ID]; ok {
		return customer.ErrEmailAlreadyExists
	}

	clone := cloneCustomer(c)
	d.byID[clone.ID] = clone
	if clone.Email != "" {
		d.byEmail[clone.Email] = clone
	}
	d.order = append(d.order, clone)
	return nil
}

// GetByID はIDから顧客のコピーを取得する
func (d *CustomerDirectory) GetByID(id string) (*customer.Customer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.byID[id]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return cloneCustomer(c), nil
}

// GetByEmail はメールアドレスから顧客のコピーを取得する
func (d *CustomerDirectory) GetByEmail(email string) (*customer.Customer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.byEmail[email]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return cloneCustomer(c), nil
}

// List は登録順で全顧客のコピーを返す
func (d *CustomerDirectory) List() []*customer.Customer {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*customer.Customer, len(d.order))
	for i, c := range d.order {
		out[i] = cloneCustomer(c)
	}
	return out
}

// Apply は台帳のロック下で顧客を変更する
func (d *CustomerDirectory) Apply(id string, fn func(c *customer.Customer)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.byID[id]
	if !ok {
		return customer.ErrCustomerNotFound
	}
	fn(c)
	return nil
}

func cloneCustomer(c *customer.Customer) *customer.Customer {
	clone := *c
	clone.History = make([]customer.BookingRecord, len(c.History))
	copy(clone.History, c.History)
	return &clone
}
