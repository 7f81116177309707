package application

import "github.com/sanosuguru/go-cinema-seat-inventory/internal/protocol"

// EventPublisher は状態変更イベントの配信先インターフェース
// 配信は at-most-once のベストエフォートで、整合性契約には含まれない
type EventPublisher interface {
	// Publish は接続中の全リスナーに配信する
	Publish(msg protocol.Message)

	// PublishAdmins は管理者権限のリスナーのみに配信する
	PublishAdmins(msg protocol.Message)
}

// ActiveCounter は接続中のクライアント数を返すインターフェース
type ActiveCounter interface {
	Count() int
}
