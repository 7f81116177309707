package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/food"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/seat"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/show"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/pkg/logger"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/protocol"
)

// CatalogService は上映回・売店商品カタログと座席状態の参照系を提供する
type CatalogService struct {
	shows     show.Repository
	seats     seat.Store
	foods     food.Catalog
	publisher EventPublisher
}

// NewCatalogService は新しいカタログサービスを作成する
func NewCatalogService(shows show.Repository, seats seat.Store, foods food.Catalog, publisher EventPublisher) *CatalogService {
	return &CatalogService{shows: shows, seats: seats, foods: foods, publisher: publisher}
}

// AddShowInput は上映回の追加リクエスト
type AddShowInput struct {
	Title      string
	Genre      string
	Duration   string
	Poster     string
	TrailerURL string
	Rating     float64
}

// ListShows は上映回一覧を新しい順で返す
func (s *CatalogService) ListShows(ctx context.Context) []*show.Show {
	return s.shows.List()
}

// AddShow は上映回を追加し、座席レイアウトを標準プランで一度だけ生成する
// 成功時は全リスナーに上映回一覧を配信する
func (s *CatalogService) AddShow(ctx context.Context, input AddShowInput) (*show.Show, error) {
	sh := show.New(input.Title, input.Genre, input.Duration, input.Poster, input.TrailerURL, input.Rating)
	if err := sh.Validate(); err != nil {
		return nil, err
	}
	if err := s.shows.Create(sh); err != nil {
		return nil, fmt.Errorf("上映回の登録に失敗: %w", err)
	}
	if err := s.seats.CreateShow(sh.ID, seat.DefaultPlan()); err != nil {
		return nil, fmt.Errorf("座席レイアウトの生成に失敗: %w", err)
	}

	logger.Info("上映回を追加", zap.String("show_id", sh.ID), zap.String("title", sh.Title))

	msg, err := protocol.New(protocol.TypeMoviesUpdate, protocol.MoviesUpdate{
		Movies: protocol.FromShows(s.shows.List()),
	})
	if err != nil {
		logger.Error("上映回一覧メッセージの生成に失敗", zap.Error(err))
	} else {
		s.publisher.Publish(msg)
	}
	return sh, nil
}

// ListFoods は売店商品一覧を返す
func (s *CatalogService) ListFoods(ctx context.Context) []*food.Item {
	return s.foods.List()
}

// RoomState は上映回の座席一覧を返す
func (s *CatalogService) RoomState(ctx context.Context, showID string) ([]*seat.Seat, error) {
	return s.seats.Layout(showID)
}

// ResetRoom は上映回の全座席を未予約に戻し、リセット後のレイアウトを返す
func (s *CatalogService) ResetRoom(ctx context.Context, showID string) ([]*seat.Seat, error) {
	if err := s.seats.ResetShow(showID); err != nil {
		return nil, err
	}
	logger.Info("上映回をリセット", zap.String("show_id", showID))
	return s.seats.Layout(showID)
}
