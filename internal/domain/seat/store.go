package seat

// Store は上映回ごとの座席状態を管理するストアのインターフェース
// 座席状態の唯一の正とし、変更は TrySetBooked と ResetShow のみが行う
type Store interface {
	// CreateShow は上映回の座席レイアウトを一度だけ生成する
	// 既存の showID を再利用した場合は ErrShowAlreadyExists を返す
	CreateShow(showID string, plan Plan) error

	// Layout は上映回の座席一覧を列→番号順で返す
	Layout(showID string) ([]*Seat, error)

	// TrySetBooked は座席を AVAILABLE/VIP→BOOKED に原子的に遷移させる
	// 同一座席への同時呼び出しは必ず1件だけ成功する
	TrySetBooked(showID, seatID string) (*Seat, error)

	// ResetShow は上映回の全座席を未予約状態に戻す（冪等）
	ResetShow(showID string) error

	// Totals は全上映回の (予約済み席数, 総席数, チケット売上) を返す
	Totals() (booked int, total int, revenue int)

	// ShowTotals は単一上映回の (予約済み席数, 総席数) を返す
	ShowTotals(showID string) (booked int, total int, err error)
}
