package protocol

import (
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/customer"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/food"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/seat"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/show"
)

// SeatView は座席のワイヤ表現
type SeatView struct {
	ID     string `json:"id"`
	Row    string `json:"row"`
	Number int    `json:"number"`
	Status string `json:"status"`
	Price  int    `json:"price"`
}

// MovieView は上映回のワイヤ表現
type MovieView struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Genre      string  `json:"genre"`
	Duration   string  `json:"duration"`
	Rating     float64 `json:"rating"`
	Poster     string  `json:"poster"`
	TrailerURL string  `json:"trailerUrl"`
}

// FoodView は売店商品のワイヤ表現
type FoodView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image,omitempty"`
}

// TicketView は予約履歴エントリのワイヤ表現
type TicketView struct {
	ID        string `json:"id"`
	ShowID    string `json:"showId"`
	ShowTitle string `json:"movieTitle"`
	SeatID    string `json:"seatId"`
	Price     int    `json:"price"`
	FoodTotal int    `json:"foodTotal"`
	Date      string `json:"date"`
}

// CustomerView は顧客のワイヤ表現（パスワードハッシュは含めない）
type CustomerView struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	Avatar          string       `json:"avatar,omitempty"`
	Bio             string       `json:"bio,omitempty"`
	MembershipLevel string       `json:"membershipLevel"`
	Points          int          `json:"points"`
	TotalSpent      int          `json:"totalSpent"`
	History         []TicketView `json:"history"`
}

// FromSeat は座席エンティティをワイヤ表現に変換する
func FromSeat(s *seat.Seat) SeatView {
	return SeatView{
		ID:     s.ID,
		Row:    s.Row,
		Number: s.Number,
		Status: string(s.Status),
		Price:  s.Price,
	}
}

// FromSeats は座席一覧をワイヤ表現に変換する
func FromSeats(seats []*seat.Seat) []SeatView {
	out := make([]SeatView, len(seats))
	for i, s := range seats {
		out[i] = FromSeat(s)
	}
	return out
}

// FromShow は上映回エンティティをワイヤ表現に変換する
func FromShow(s *show.Show) MovieView {
	return MovieView{
		ID:         s.ID,
		Title:      s.Title,
		Genre:      s.Genre,
		Duration:   s.Duration,
		Rating:     s.Rating,
		Poster:     s.Poster,
		TrailerURL: s.TrailerURL,
	}
}

// FromShows は上映回一覧をワイヤ表現に変換する
func FromShows(shows []*show.Show) []MovieView {
	out := make([]MovieView, len(shows))
	for i, s := range shows {
		out[i] = FromShow(s)
	}
	return out
}

// FromFood は売店商品エンティティをワイヤ表現に変換する
func FromFood(item *food.Item) FoodView {
	return FoodView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    string(item.Category),
		Image:       item.Image,
	}
}

// FromFoods は売店商品一覧をワイヤ表現に変換する
func FromFoods(items []*food.Item) []FoodView {
	out := make([]FoodView, len(items))
	for i, item := range items {
		out[i] = FromFood(item)
	}
	return out
}

// FromCustomer は顧客エンティティをワイヤ表現に変換する
func FromCustomer(c *customer.Customer) CustomerView {
	history := make([]TicketView, len(c.History))
	for i, rec := range c.History {
		history[i] = TicketView{
			ID:        rec.ID,
			ShowID:    rec.ShowID,
			ShowTitle: rec.ShowTitle,
			SeatID:    rec.SeatID,
			Price:     rec.Price,
			FoodTotal: rec.AncillaryTotal,
			Date:      rec.BookedAt.Format("2006-01-02"),
		}
	}
	return CustomerView{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Avatar:          c.Avatar,
		Bio:             c.Bio,
		MembershipLevel: string(c.MembershipLevel),
		Points:          c.Points,
		TotalSpent:      c.TotalSpent,
		History:         history,
	}
}

// FromCustomers は顧客一覧をワイヤ表現に変換する
func FromCustomers(customers []*customer.Customer) []CustomerView {
	out := make([]CustomerView, len(customers))
	for i, c := range customers {
		out[i] = FromCustomer(c)
	}
	return out
}
