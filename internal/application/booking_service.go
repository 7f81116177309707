package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/customer"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/seat"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/show"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/pkg/logger"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/pkg/metrics"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/protocol"
)

// ErrInvalidBookingRequest はリクエスト形状が不正な場合のエラー
var ErrInvalidBookingRequest = errors.New("予約リクエストが不正です")

// BookingService は予約の調停者
// 座席のcheck-and-set・予約履歴の追記・統計の再計算を
// 単一のミューテックス下でまとめて行い、先着1件のみを成立させる
type BookingService struct {
	mu        sync.Mutex
	seats     seat.Store
	shows     show.Repository
	customers customer.Directory
	stats     *StatsService
	publisher EventPublisher
	metrics   *metrics.Metrics // nil可
}

// NewBookingService は新しい予約サービスを作成する
func NewBookingService(
	seats seat.Store,
	shows show.Repository,
	customers customer.Directory,
	stats *StatsService,
	publisher EventPublisher,
	m *metrics.Metrics,
) *BookingService {
	return &BookingService{
		seats:     seats,
		shows:     shows,
		customers: customers,
		stats:     stats,
		publisher: publisher,
		metrics:   m,
	}
}

// BookSeatInput は予約リクエスト
// RequesterID は認証済み接続ではセッションの顧客ID、未認証接続では任意の識別子
type BookSeatInput struct {
	ShowID         string
	SeatID         string
	RequesterID    string
	AncillaryTotal int
}

// Book は予約リクエストを調停する
// 成功時は予約履歴エントリを返し、SEAT_UPDATE / STATS_UPDATE /
// NEW_ORDER / CUSTOMERS_UPDATE を配信する
// 失敗時はイベントを一切配信せず、エラーのみ返す
func (s *BookingService) Book(ctx context.Context, input BookSeatInput) (*customer.BookingRecord, error) {
	if input.ShowID == "" || input.SeatID == "" || input.RequesterID == "" || input.AncillaryTotal < 0 {
		s.count("invalid")
		return nil, ErrInvalidBookingRequest
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sh, err := s.shows.GetByID(input.ShowID)
	if err != nil {
		s.count("not_found")
		return nil, fmt.Errorf("上映回の取得に失敗: %w", err)
	}

	// 座席のcheck-and-set：ここを通過した呼び出しだけが勝者になる
	booked, err := s.seats.TrySetBooked(input.ShowID, input.SeatID)
	if err != nil {
		if errors.Is(err, seat.ErrSeatAlreadyBooked) {
			s.count("conflict")
		} else {
			s.count("not_found")
		}
		return nil, err
	}

	rec := customer.NewBookingRecord(sh.ID, sh.Title, booked.ID, booked.Price, input.AncillaryTotal)

	custID, err := s.resolveRequester(input.RequesterID)
	if err != nil {
		// 座席は既にBOOKEDに遷移済み。補償はせず記録だけ残す（§7: 失敗は致命的でない）
		s.count("error")
		logger.Error("予約者の解決に失敗",
			zap.String("requester_id", input.RequesterID),
			zap.Error(err),
		)
		return nil, err
	}
	if err := s.customers.Apply(custID, func(c *customer.Customer) {
		c.ApplyBooking(rec)
	}); err != nil {
		s.count("error")
		return nil, fmt.Errorf("予約履歴の追記に失敗: %w", err)
	}

	s.stats.AddAncillaryRevenue(input.AncillaryTotal)
	s.count("success")

	logger.Info("座席を予約",
		zap.String("show_id", sh.ID),
		zap.String("seat_id", booked.ID),
		zap.String("customer_id", custID),
		zap.Int("total", rec.Price),
	)

	s.emitBookingEvents(sh, booked, rec, custID)
	return &rec, nil
}

// resolveRequester は予約者を顧客IDに解決する
// 未登録の識別子は暗黙のゲスト顧客として登録する（以後同じIDで再利用）
func (s *BookingService) resolveRequester(requesterID string) (string, error) {
	if _, err := s.customers.GetByID(requesterID); err == nil {
		return requesterID, nil
	} else if !errors.Is(err, customer.ErrCustomerNotFound) {
		return "", err
	}

	guest := customer.NewGuest(requesterID)
	guest.ID = requesterID
	if err := s.customers.Create(guest); err != nil {
		return "", fmt.Errorf("ゲスト顧客の作成に失敗: %w", err)
	}
	logger.Info("ゲスト顧客を作成", zap.String("customer_id", requesterID))
	return requesterID, nil
}

func (s *BookingService) emitBookingEvents(sh *show.Show, booked *seat.Seat, rec customer.BookingRecord, custID string) {
	s.publish(protocol.TypeSeatUpdate, protocol.SeatUpdate{
		SeatID:    booked.ID,
		Status:    string(seat.StatusBooked),
		ChangedBy: custID,
		ShowID:    sh.ID,
	}, false)

	s.publish(protocol.TypeCustomersUpdate, protocol.CustomersUpdate{
		Customers: protocol.FromCustomers(s.customers.List()),
	}, true)

	note := ""
	if rec.AncillaryTotal > 0 {
		note = fmt.Sprintf("+ 売店 (%d)", rec.AncillaryTotal)
	}
	s.publish(protocol.TypeNewOrder, protocol.NewOrder{
		Event:    "NEW ORDER",
		Customer: custID,
		Movie:    sh.Title,
		Seat:     booked.ID,
		Price:    rec.Price,
		Time:     time.Now().Format("15:04:05"),
		Note:     note,
	}, false)

	s.stats.Broadcast()
}

func (s *BookingService) publish(t protocol.Type, payload any, adminsOnly bool) {
	msg, err := protocol.New(t, payload)
	if err != nil {
		logger.Error("イベントメッセージの生成に失敗", zap.String("type", string(t)), zap.Error(err))
		return
	}
	if adminsOnly {
		s.publisher.PublishAdmins(msg)
		return
	}
	s.publisher.Publish(msg)
}

func (s *BookingService) count(status string) {
	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(status).Inc()
	}
}
