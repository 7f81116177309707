package handler

import (
	"context"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/application"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/customer"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/food"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/seat"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/show"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/protocol"
)

// AuthServiceInterface は認証サービスのインターフェース
type AuthServiceInterface interface {
	AuthenticateConnection(token string) protocol.Role
	Login(ctx context.Context, email, password string) (*customer.Customer, string, error)
	Register(ctx context.Context, name, email, password, phone string) (*customer.Customer, string, error)
	ResolveSession(token string) (string, bool)
	ListCustomers(ctx context.Context) []*customer.Customer
}

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	Book(ctx context.Context, input application.BookSeatInput) (*customer.BookingRecord, error)
}

// CatalogServiceInterface はカタログサービスのインターフェース
type CatalogServiceInterface interface {
	ListShows(ctx context.Context) []*show.Show
	AddShow(ctx context.Context, input application.AddShowInput) (*show.Show, error)
	ListFoods(ctx context.Context) []*food.Item
	RoomState(ctx context.Context, showID string) ([]*seat.Seat, error)
	ResetRoom(ctx context.Context, showID string) ([]*seat.Seat, error)
}

// StatsServiceInterface は統計サービスのインターフェース
type StatsServiceInterface interface {
	Snapshot() protocol.Stats
	Broadcast()
}
