package food

import "errors"

// Category は売店商品のカテゴリを表す
type Category string

const (
	CategoryPopcorn Category = "Popcorn"
	CategoryDrink   Category = "Drink"
	CategoryCombo   Category = "Combo"
)

// Item は売店商品エンティティを表す
type Item struct {
	ID          string
	Name        string
	Description string
	Price       int
	Category    Category
	Image       string
}

// Catalog は売店商品カタログのインターフェース
type Catalog interface {
	// List は商品一覧を登録順で返す
	List() []*Item

	// Add は商品を登録する
	Add(item *Item) error
}

// ErrItemAlreadyExists は商品IDの重複登録エラー
var ErrItemAlreadyExists = errors.New("商品は既に存在します")

// Validate は商品の検証を行う
func (i *Item) Validate() error {
	if i.Name == "" {
		return errors.New("商品名は必須です")
	}
	if i.Price < 0 {
		return errors.New("価格は0以上である必要があります")
	}
	return nil
}
