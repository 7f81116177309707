package application

import (
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/seat"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/pkg/logger"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/protocol"
)

// StatsService は集計統計を座席ストアから再計算する
// チケット売上・販売数・稼働率は常に座席ストアの純関数で、
// 付帯売上（売店）のみ累積カウンタとして上乗せする
type StatsService struct {
	seats     seat.Store
	active    ActiveCounter
	publisher EventPublisher

	mu               sync.Mutex
	ancillaryRevenue int
}

// NewStatsService は新しい統計サービスを作成する
func NewStatsService(seats seat.Store, active ActiveCounter, publisher EventPublisher) *StatsService {
	return &StatsService{seats: seats, active: active, publisher: publisher}
}

// AddAncillaryRevenue は付帯売上を累積する（予約成功時のみ呼ばれる）
func (s *StatsService) AddAncillaryRevenue(amount int) {
	if amount <= 0 {
		return
	}
	s.mu.Lock()
	s.ancillaryRevenue += amount
	s.mu.Unlock()
}

// Snapshot は現在の集計統計を返す
func (s *StatsService) Snapshot() protocol.Stats {
	booked, total, revenue := s.seats.Totals()

	occupancy := 0
	if total > 0 {
		occupancy = int(math.Round(float64(booked) / float64(total) * 100))
	}

	active := 0
	if s.active != nil {
		active = s.active.Count()
	}

	s.mu.Lock()
	ancillary := s.ancillaryRevenue
	s.mu.Unlock()

	return protocol.Stats{
		TotalRevenue:  revenue + ancillary,
		ActiveUsers:   active,
		TicketsSold:   booked,
		OccupancyRate: occupancy,
	}
}

// Broadcast は最新の統計を全リスナーに配信する
func (s *StatsService) Broadcast() {
	msg, err := protocol.New(protocol.TypeStatsUpdate, s.Snapshot())
	if err != nil {
		logger.Error("統計メッセージの生成に失敗", zap.Error(err))
		return
	}
	s.publisher.Publish(msg)
}
