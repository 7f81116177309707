package api

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator はプロトコルペイロード用のバリデーター
// echo.Validator も満たすため、HTTPハンドラーからも利用できる
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator は新しいバリデーターを作成する
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate はペイロードのバリデーションを実行する
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
