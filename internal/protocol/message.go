// Package protocol はクライアントとの間で交換されるメッセージのワイヤ契約を定義する
// エンベロープは {type, payload, timestamp, id} の固定形式
package protocol

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type はメッセージ種別を表す
type Type string

// メッセージ種別の閉じた集合
const (
	// ハンドシェイク
	TypeConnected Type = "CONNECTED"

	// 接続の認証（管理者トークン）
	TypeAuthRequest Type = "AUTH_REQUEST"
	TypeAuthSuccess Type = "AUTH_SUCCESS"

	// 顧客のログイン・登録
	TypeLoginRequest    Type = "LOGIN_REQUEST"
	TypeLoginSuccess    Type = "LOGIN_SUCCESS"
	TypeLoginFailure    Type = "LOGIN_FAILURE"
	TypeRegisterRequest Type = "REGISTER_REQUEST"
	TypeRegisterSuccess Type = "REGISTER_SUCCESS"

	// カタログ参照・管理
	TypeGetMovies       Type = "GET_MOVIES"
	TypeMoviesUpdate    Type = "MOVIES_UPDATE"
	TypeGetCustomers    Type = "GET_CUSTOMERS"
	TypeCustomersUpdate Type = "CUSTOMERS_UPDATE"
	TypeGetFoods        Type = "GET_FOODS"
	TypeFoodsUpdate     Type = "FOODS_UPDATE"
	TypeAddMovie        Type = "ADD_MOVIE"

	// 座席在庫
	TypeGetRoomState      Type = "GET_ROOM_STATE"
	TypeRoomStateResponse Type = "ROOM_STATE_RESPONSE"
	TypeResetRoom         Type = "RESET_ROOM"
	TypeResetConfirmed    Type = "RESET_CONFIRMED"
	TypeResetFailed       Type = "RESET_FAILED"
	TypeBookSeatRequest   Type = "BOOK_SEAT_REQUEST"
	TypeBookSeatFailure   Type = "BOOK_SEAT_FAILURE"

	// サーバー起点のブロードキャスト
	TypeSeatUpdate  Type = "SEAT_UPDATE"
	TypeStatsUpdate Type = "STATS_UPDATE"
	TypeNewOrder    Type = "NEW_ORDER"
)

// Role は接続の権限を表す
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleGuest Role = "GUEST"
)

// Message はワイヤ上のメッセージエンベロープ
type Message struct {
	Type      Type            `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"` // Unixミリ秒
	ID        string          `json:"id"`
}

// New は指定ペイロードのメッセージを作成する
func New(t Type, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Type:      t,
		Payload:   raw,
		Timestamp: time.Now().UnixMilli(),
		ID:        uuid.NewString(),
	}, nil
}

// Decode はメッセージのペイロードを指定の型に復元する
func (m Message) Decode(v any) error {
	if len(m.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(m.Payload, v)
}
