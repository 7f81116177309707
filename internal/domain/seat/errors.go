package seat

import "errors"

// Seat ドメインのエラー定義
var (
	ErrShowNotFound      = errors.New("上映回の座席レイアウトが見つかりません")
	ErrShowAlreadyExists = errors.New("上映回の座席レイアウトは既に存在します")
	ErrSeatNotFound      = errors.New("座席が見つかりません")
	ErrSeatAlreadyBooked = errors.New("座席は既に予約されています")
	ErrRowRequired       = errors.New("座席の列は必須です")
	ErrInvalidSeatNumber = errors.New("座席番号は1以上である必要があります")
	ErrInvalidPrice      = errors.New("価格は0以上である必要があります")
)
