package seat

import "strconv"

// Status は座席の状態を表す
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusBooked    Status = "BOOKED"
	StatusVIP       Status = "VIP"
)

// Tier は座席の料金ティアを表す
type Tier string

const (
	TierStandard Tier = "standard"
	TierVIP      Tier = "vip"
)

// Seat は上映回ごとの座席エンティティを表す
// ID は「列＋番号」（例: A1）で上映回内で一意
type Seat struct {
	ID     string
	Row    string
	Number int
	Tier   Tier
	Status Status
	Price  int
}

// New は新しい座席を作成する
func New(row string, number int, tier Tier, price int) *Seat {
	status := StatusAvailable
	if tier == TierVIP {
		status = StatusVIP
	}
	return &Seat{
		ID:     row + strconv.Itoa(number),
		Row:    row,
		Number: number,
		Tier:   tier,
		Status: status,
		Price:  price,
	}
}

// IsBooked は座席が予約済みかを返す
func (s *Seat) IsBooked() bool {
	return s.Status == StatusBooked
}

// Book は座席を予約済み状態に遷移させる
// 許可される遷移は AVAILABLE→BOOKED と VIP→BOOKED のみ
func (s *Seat) Book() error {
	if s.IsBooked() {
		return ErrSeatAlreadyBooked
	}
	s.Status = StatusBooked
	return nil
}

// Reset は座席をティアに応じた未予約状態に戻す
func (s *Seat) Reset() {
	if s.Tier == TierVIP {
		s.Status = StatusVIP
		return
	}
	s.Status = StatusAvailable
}

// Validate は座席の検証を行う
func (s *Seat) Validate() error {
	if s.Row == "" {
		return ErrRowRequired
	}
	if s.Number <= 0 {
		return ErrInvalidSeatNumber
	}
	if s.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}
