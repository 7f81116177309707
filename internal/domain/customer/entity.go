package customer

import (
	"time"

	"github.com/google/uuid"
)

// MembershipLevel は会員ランクを表す
type MembershipLevel string

const (
	LevelStandard MembershipLevel = "Standard"
	LevelVIP      MembershipLevel = "VIP"
	LevelDiamond  MembershipLevel = "Diamond"
)

// PointsUnit はポイント付与の単位額（合計金額をこの値で割った商を付与）
const PointsUnit = 1000

// BookingRecord は予約履歴のエントリを表す
// 作成後は不変で、履歴には追記のみ行われる
type BookingRecord struct {
	ID             string
	ShowID         string
	ShowTitle      string
	SeatID         string
	Price          int // 座席価格＋付帯売上の合計
	AncillaryTotal int
	BookedAt       time.Time
}

// NewBookingRecord は新しい予約履歴エントリを作成する
func NewBookingRecord(showID, showTitle, seatID string, seatPrice, ancillaryTotal int) BookingRecord {
	return BookingRecord{
		ID:             "T-" + uuid.NewString(),
		ShowID:         showID,
		ShowTitle:      showTitle,
		SeatID:         seatID,
		Price:          seatPrice + ancillaryTotal,
		AncillaryTotal: ancillaryTotal,
		BookedAt:       time.Now(),
	}
}

// Customer は顧客エンティティを表す
// History は新しい順に並び、予約成功時にのみ変更される
type Customer struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	PasswordHash    string
	Avatar          string
	Bio             string
	MembershipLevel MembershipLevel
	Points          int
	TotalSpent      int
	History         []BookingRecord
	CreatedAt       time.Time
}

// New は新規登録の顧客を作成する（Standardランク、ポイント・利用額ゼロ）
func New(name, email, passwordHash, phone string) *Customer {
	return &Customer{
		ID:              "CUST-" + uuid.NewString(),
		Name:            name,
		Email:           email,
		Phone:           phone,
		PasswordHash:    passwordHash,
		MembershipLevel: LevelStandard,
		History:         []BookingRecord{},
		CreatedAt:       time.Now(),
	}
}

// NewGuest は未認証の予約者に対する暗黙のゲスト顧客を作成する
func NewGuest(name string) *Customer {
	g := New(name, "", "", "")
	g.Bio = "ゲスト"
	return g
}

// ApplyBooking は予約成功を顧客に反映する
// 履歴の先頭に追記し、ポイントと累計利用額を同時に加算する
func (c *Customer) ApplyBooking(rec BookingRecord) {
	c.History = append([]BookingRecord{rec}, c.History...)
	c.Points += rec.Price / PointsUnit
	c.TotalSpent += rec.Price
}

// Validate は顧客の検証を行う
func (c *Customer) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	return nil
}
