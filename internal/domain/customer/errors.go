package customer

import "errors"

// Customer ドメインのエラー定義
var (
	ErrCustomerNotFound   = errors.New("顧客が見つかりません")
	ErrEmailAlreadyExists = errors.New("このメールアドレスは既に登録されています")
	ErrNameRequired       = errors.New("氏名は必須です")
	ErrInvalidCredentials = errors.New("メールアドレスまたはパスワードが正しくありません")
)
