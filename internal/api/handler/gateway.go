package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/api"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/application"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/broadcast"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/customer"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/seat"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/show"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/pkg/logger"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/pkg/metrics"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/protocol"
)

const (
	serverID      = "SRV-CINEMA-01"
	serverVersion = "1.0.0"
)

// クライアント向けの失敗メッセージ（ワイヤ契約で固定の英語文字列）
const (
	msgSeatAlreadyBooked  = "seat already booked"
	msgSeatNotFound       = "seat not found"
	msgShowNotFound       = "show not found"
	msgCredentialsInvalid = "credentials invalid"
	msgEmailExists        = "email exists"
	msgInvalidRequest     = "invalid request"
	msgInternalError      = "internal error"
)

// GatewayConfig はゲートウェイ接続の調整値
type GatewayConfig struct {
	SendBuffer     int
	PingInterval   time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
}

// DefaultGatewayConfig は既定の調整値を返す
func DefaultGatewayConfig() GatewayConfig {
	return GatewayConfig{
		SendBuffer:     64,
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 8192,
	}
}

// GatewayHandler はプロトコルゲートウェイ
// WebSocket接続上の型付きメッセージを各サービスにディスパッチする唯一の入口
type GatewayHandler struct {
	upgrader  websocket.Upgrader
	hub       *broadcast.Hub
	auth      AuthServiceInterface
	booking   BookingServiceInterface
	catalog   CatalogServiceInterface
	stats     StatsServiceInterface
	validator *api.CustomValidator
	metrics   *metrics.Metrics // nil可
	cfg       GatewayConfig
}

// NewGatewayHandler は新しいゲートウェイハンドラーを作成する
func NewGatewayHandler(
	hub *broadcast.Hub,
	auth AuthServiceInterface,
	booking BookingServiceInterface,
	catalog CatalogServiceInterface,
	stats StatsServiceInterface,
	m *metrics.Metrics,
	cfg GatewayConfig,
) *GatewayHandler {
	return &GatewayHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// デモUIはどのオリジンからも接続できる
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		hub:       hub,
		auth:      auth,
		booking:   booking,
		catalog:   catalog,
		stats:     stats,
		validator: api.NewValidator(),
		metrics:   m,
		cfg:       cfg,
	}
}

// Serve はWebSocket接続を受け付け、切断まで読み取りループを回す
func (h *GatewayHandler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	sub := h.hub.Subscribe(protocol.RoleGuest, h.cfg.SendBuffer)
	cl := newClient(conn, sub, h.cfg.SendBuffer)

	if h.metrics != nil {
		h.metrics.ConnectedClients.Inc()
	}
	logger.Info("クライアント接続", zap.String("remote", conn.RemoteAddr().String()))

	defer func() {
		h.hub.Unsubscribe(sub)
		cl.close()
		if h.metrics != nil {
			h.metrics.ConnectedClients.Dec()
		}
		logger.Info("クライアント切断", zap.String("remote", conn.RemoteAddr().String()))
	}()

	go cl.writePump(h.cfg.PingInterval, h.cfg.WriteWait)

	cl.reply(protocol.TypeConnected, protocol.Connected{
		ServerID: serverID,
		Version:  serverVersion,
		Message:  "system ready",
	})

	h.readLoop(c.Request().Context(), cl)
	return nil
}

func (h *GatewayHandler) readLoop(ctx context.Context, cl *client) {
	cl.conn.SetReadLimit(h.cfg.MaxMessageSize)
	cl.conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	})

	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("読み取りエラーで切断", zap.Error(err))
			}
			return
		}

		var msg protocol.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warn("エンベロープの解析に失敗", zap.Error(err))
			continue
		}
		h.dispatch(ctx, cl, msg)
	}
}

// dispatch は受信メッセージを種別ごとにサービスへ振り分ける
// 未知の種別はエラーにせず無視する
func (h *GatewayHandler) dispatch(ctx context.Context, cl *client, msg protocol.Message) {
	if h.metrics != nil {
		h.metrics.MessagesReceivedTotal.WithLabelValues(string(msg.Type)).Inc()
	}

	switch msg.Type {
	case protocol.TypeAuthRequest:
		h.handleAuth(cl, msg)
	case protocol.TypeLoginRequest:
		h.handleLogin(ctx, cl, msg)
	case protocol.TypeRegisterRequest:
		h.handleRegister(ctx, cl, msg)
	case protocol.TypeGetMovies:
		cl.reply(protocol.TypeMoviesUpdate, protocol.MoviesUpdate{
			Movies: protocol.FromShows(h.catalog.ListShows(ctx)),
		})
	case protocol.TypeGetCustomers:
		// 顧客台帳は連絡先を含むため管理者接続のみに返す
		if cl.role != protocol.RoleAdmin {
			logger.Warn("管理者権限のないGET_CUSTOMERSを無視")
			return
		}
		cl.reply(protocol.TypeCustomersUpdate, protocol.CustomersUpdate{
			Customers: protocol.FromCustomers(h.auth.ListCustomers(ctx)),
		})
	case protocol.TypeGetFoods:
		cl.reply(protocol.TypeFoodsUpdate, protocol.FoodsUpdate{
			Foods: protocol.FromFoods(h.catalog.ListFoods(ctx)),
		})
	case protocol.TypeAddMovie:
		h.handleAddMovie(ctx, cl, msg)
	case protocol.TypeGetRoomState:
		h.handleGetRoomState(ctx, cl, msg)
	case protocol.TypeResetRoom:
		h.handleResetRoom(ctx, cl, msg)
	case protocol.TypeBookSeatRequest:
		h.handleBookSeat(ctx, cl, msg)
	default:
		logger.Debug("未対応のメッセージ種別を無視", zap.String("type", string(msg.Type)))
	}
}

func (h *GatewayHandler) handleAuth(cl *client, msg protocol.Message) {
	var req protocol.AuthRequest
	if err := h.decode(msg, &req); err != nil {
		logger.Warn("AUTH_REQUESTの解析に失敗", zap.Error(err))
		return
	}
	role := h.auth.AuthenticateConnection(req.Token)
	if role != protocol.RoleAdmin {
		// ログイン済みセッションのトークンなら再接続として顧客IDを引き継ぐ
		if custID, ok := h.auth.ResolveSession(req.Token); ok {
			cl.customerID = custID
		}
	}
	cl.role = role
	h.hub.SetRole(cl.sub, role)
	cl.reply(protocol.TypeAuthSuccess, protocol.AuthSuccess{Role: role})
}

func (h *GatewayHandler) handleLogin(ctx context.Context, cl *client, msg protocol.Message) {
	var req protocol.LoginRequest
	if err := h.decode(msg, &req); err != nil {
		cl.reply(protocol.TypeLoginFailure, protocol.LoginFailure{Message: msgInvalidRequest})
		return
	}

	cust, token, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, customer.ErrInvalidCredentials) {
			cl.reply(protocol.TypeLoginFailure, protocol.LoginFailure{Message: msgCredentialsInvalid})
			return
		}
		logger.Error("ログイン処理に失敗", zap.Error(err))
		cl.reply(protocol.TypeLoginFailure, protocol.LoginFailure{Message: msgInternalError})
		return
	}

	cl.customerID = cust.ID
	cl.reply(protocol.TypeLoginSuccess, protocol.LoginSuccess{
		Customer: protocol.FromCustomer(cust),
		Token:    token,
	})
}

func (h *GatewayHandler) handleRegister(ctx context.Context, cl *client, msg protocol.Message) {
	var req protocol.RegisterRequest
	if err := h.decode(msg, &req); err != nil {
		cl.reply(protocol.TypeLoginFailure, protocol.LoginFailure{Message: msgInvalidRequest})
		return
	}

	cust, token, err := h.auth.Register(ctx, req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		if errors.Is(err, customer.ErrEmailAlreadyExists) {
			cl.reply(protocol.TypeLoginFailure, protocol.LoginFailure{Message: msgEmailExists})
			return
		}
		logger.Error("登録処理に失敗", zap.Error(err))
		cl.reply(protocol.TypeLoginFailure, protocol.LoginFailure{Message: msgInternalError})
		return
	}

	cl.customerID = cust.ID
	cl.reply(protocol.TypeRegisterSuccess, protocol.LoginSuccess{
		Customer: protocol.FromCustomer(cust),
		Token:    token,
	})
}

func (h *GatewayHandler) handleAddMovie(ctx context.Context, cl *client, msg protocol.Message) {
	if cl.role != protocol.RoleAdmin {
		logger.Warn("管理者権限のないADD_MOVIEを無視")
		return
	}
	var req protocol.AddMovie
	if err := h.decode(msg, &req); err != nil {
		logger.Warn("ADD_MOVIEの解析に失敗", zap.Error(err))
		return
	}
	if _, err := h.catalog.AddShow(ctx, application.AddShowInput{
		Title:      req.Title,
		Genre:      req.Genre,
		Duration:   req.Duration,
		Poster:     req.Poster,
		TrailerURL: req.TrailerURL,
		Rating:     req.Rating,
	}); err != nil {
		logger.Error("上映回の追加に失敗", zap.Error(err))
	}
}

func (h *GatewayHandler) handleGetRoomState(ctx context.Context, cl *client, msg protocol.Message) {
	var req protocol.GetRoomState
	if err := h.decode(msg, &req); err != nil {
		logger.Warn("GET_ROOM_STATEの解析に失敗", zap.Error(err))
		return
	}

	seats, err := h.catalog.RoomState(ctx, req.ShowID)
	if err != nil {
		// 未知の上映回は空レイアウトとして応答する
		cl.reply(protocol.TypeRoomStateResponse, protocol.RoomState{Seats: []protocol.SeatView{}, ShowID: req.ShowID})
		return
	}
	cl.reply(protocol.TypeRoomStateResponse, protocol.RoomState{
		Seats:  protocol.FromSeats(seats),
		ShowID: req.ShowID,
	})
}

func (h *GatewayHandler) handleResetRoom(ctx context.Context, cl *client, msg protocol.Message) {
	if cl.role != protocol.RoleAdmin {
		logger.Warn("管理者権限のないRESET_ROOMを無視")
		return
	}
	var req protocol.ResetRoom
	if err := h.decode(msg, &req); err != nil {
		logger.Warn("RESET_ROOMの解析に失敗", zap.Error(err))
		return
	}

	seats, err := h.catalog.ResetRoom(ctx, req.ShowID)
	if err != nil {
		cl.reply(protocol.TypeResetFailed, protocol.ResetFailure{
			ShowID:  req.ShowID,
			Message: msgShowNotFound,
		})
		return
	}

	cl.reply(protocol.TypeResetConfirmed, protocol.ResetConfirmed{
		Message: fmt.Sprintf("room %s reset", req.ShowID),
	})
	cl.reply(protocol.TypeRoomStateResponse, protocol.RoomState{
		Seats:  protocol.FromSeats(seats),
		ShowID: req.ShowID,
	})
	h.stats.Broadcast()
}

func (h *GatewayHandler) handleBookSeat(ctx context.Context, cl *client, msg protocol.Message) {
	var req protocol.BookSeatRequest
	if err := h.decode(msg, &req); err != nil {
		cl.reply(protocol.TypeBookSeatFailure, protocol.BookSeatFailure{
			SeatID:  req.SeatID,
			Message: msgInvalidRequest,
		})
		return
	}

	// 認証済み接続ではセッションの顧客IDを優先する
	// ペイロードの識別子との文字列照合による誤帰属を防ぐ
	requesterID := req.RequesterID
	if cl.customerID != "" {
		requesterID = cl.customerID
	}

	if _, err := h.booking.Book(ctx, application.BookSeatInput{
		ShowID:         req.ShowID,
		SeatID:         req.SeatID,
		RequesterID:    requesterID,
		AncillaryTotal: req.AncillaryTotal,
	}); err != nil {
		cl.reply(protocol.TypeBookSeatFailure, protocol.BookSeatFailure{
			SeatID:  req.SeatID,
			Message: bookFailureMessage(err),
		})
	}
	// 成功時の確認はSEAT_UPDATEブロードキャストが兼ねる
}

// decode はペイロードの復元とバリデーションを行う
func (h *GatewayHandler) decode(msg protocol.Message, v any) error {
	if err := msg.Decode(v); err != nil {
		return err
	}
	return h.validator.Validate(v)
}

func bookFailureMessage(err error) string {
	switch {
	case errors.Is(err, seat.ErrSeatAlreadyBooked):
		return msgSeatAlreadyBooked
	case errors.Is(err, seat.ErrSeatNotFound):
		return msgSeatNotFound
	case errors.Is(err, seat.ErrShowNotFound), errors.Is(err, show.ErrShowNotFound):
		return msgShowNotFound
	case errors.Is(err, application.ErrInvalidBookingRequest):
		return msgInvalidRequest
	default:
		logger.Error("予約処理に失敗", zap.Error(err))
		return msgInternalError
	}
}
