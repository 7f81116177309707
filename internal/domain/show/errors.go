package show

import "errors"

// Show ドメインのエラー定義
var (
	ErrShowNotFound      = errors.New("上映回が見つかりません")
	ErrShowAlreadyExists = errors.New("上映回は既に存在します")
	ErrTitleRequired     = errors.New("タイトルは必須です")
	ErrInvalidRating     = errors.New("評価は0〜5である必要があります")
)
