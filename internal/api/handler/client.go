package handler

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/broadcast"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/pkg/logger"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/protocol"
)

// client はゲートウェイの1接続を表す
// 個別応答は send、ブロードキャストは sub 経由で届き、
// 書き込みは writePump の単一ゴルーチンに集約する
type client struct {
	conn       *websocket.Conn
	sub        *broadcast.Subscriber
	send       chan protocol.Message
	role       protocol.Role
	customerID string // ログイン・登録後に設定される接続の確定識別子

	done      chan struct{}
	closeOnce sync.Once
}

func newClient(conn *websocket.Conn, sub *broadcast.Subscriber, sendBuffer int) *client {
	return &client{
		conn: conn,
		sub:  sub,
		send: make(chan protocol.Message, sendBuffer),
		role: protocol.RoleGuest,
		done: make(chan struct{}),
	}
}

// reply は個別応答をキューに積む
// 送信キューが満杯ならフレームを破棄する（at-most-once）
func (cl *client) reply(t protocol.Type, payload any) {
	msg, err := protocol.New(t, payload)
	if err != nil {
		logger.Error("応答メッセージの生成に失敗", zap.String("type", string(t)), zap.Error(err))
		return
	}
	select {
	case cl.send <- msg:
	case <-cl.done:
	default:
		logger.Warn("送信キューが満杯のため応答を破棄",
			zap.String("type", string(t)),
		)
	}
}

// close は接続を一度だけ閉じる
func (cl *client) close() {
	cl.closeOnce.Do(func() {
		close(cl.done)
		cl.conn.Close()
	})
}

// writePump は接続へのすべての書き込みを行う
func (cl *client) writePump(pingInterval, writeWait time.Duration) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		cl.close()
	}()

	for {
		select {
		case msg := <-cl.send:
			if !cl.write(msg, writeWait) {
				return
			}
		case msg, ok := <-cl.sub.C():
			if !ok {
				// ハブから退会済み
				cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
				cl.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if !cl.write(msg, writeWait) {
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-cl.done:
			return
		}
	}
}

func (cl *client) write(msg protocol.Message, writeWait time.Duration) bool {
	cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := cl.conn.WriteJSON(msg); err != nil {
		logger.Debug("メッセージ送信に失敗", zap.Error(err))
		return false
	}
	return true
}
