package protocol

// リクエストペイロード（クライアント→サーバー）
// バリデーションタグはゲートウェイで検証される

// AuthRequest は接続へのトークン提示
// 管理者トークンで権限昇格、ログイン発行のセッショントークンで再接続時の顧客引き継ぎを行う
type AuthRequest struct {
	Token string `json:"token" validate:"required"`
}

// LoginRequest は顧客ログイン要求
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest は顧客の新規登録要求
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
}

// AddMovie は上映回の追加要求（管理者）
type AddMovie struct {
	Title      string  `json:"title" validate:"required"`
	Genre      string  `json:"genre"`
	Duration   string  `json:"duration"`
	Poster     string  `json:"poster"`
	TrailerURL string  `json:"trailerUrl"`
	Rating     float64 `json:"rating" validate:"gte=0,lte=5"`
}

// GetRoomState は単一上映回の座席状態の取得要求
type GetRoomState struct {
	ShowID string `json:"showId" validate:"required"`
}

// ResetRoom は上映回の全座席を未予約に戻す要求（管理者）
type ResetRoom struct {
	ShowID string `json:"showId" validate:"required"`
}

// BookSeatRequest は座席予約要求
// AncillaryTotal は売店などの付帯売上（最小通貨単位、省略時0）
type BookSeatRequest struct {
	SeatID         string `json:"seatId" validate:"required"`
	RequesterID    string `json:"requesterId" validate:"required"`
	ShowID         string `json:"showId" validate:"required"`
	ShowTitle      string `json:"showTitle"`
	AncillaryTotal int    `json:"ancillaryTotal" validate:"gte=0"`
}

// レスポンス・ブロードキャストペイロード（サーバー→クライアント）

// Connected は接続確立の通知
type Connected struct {
	ServerID string `json:"serverId"`
	Version  string `json:"version"`
	Message  string `json:"message"`
}

// AuthSuccess は接続認証の結果
type AuthSuccess struct {
	Role Role `json:"role"`
}

// LoginSuccess はログインまたは登録の成功応答
// Token は以後のセッション解決に使う不透明トークン
type LoginSuccess struct {
	Customer CustomerView `json:"customer"`
	Token    string       `json:"token"`
}

// LoginFailure はログイン・登録の失敗応答
type LoginFailure struct {
	Message string `json:"message"`
}

// MoviesUpdate は上映回一覧
type MoviesUpdate struct {
	Movies []MovieView `json:"movies"`
}

// CustomersUpdate は顧客台帳
type CustomersUpdate struct {
	Customers []CustomerView `json:"customers"`
}

// FoodsUpdate は売店商品一覧
type FoodsUpdate struct {
	Foods []FoodView `json:"foods"`
}

// RoomState は単一上映回の座席状態
type RoomState struct {
	Seats  []SeatView `json:"seats"`
	ShowID string     `json:"showId"`
}

// ResetConfirmed はリセット完了の通知
type ResetConfirmed struct {
	Message string `json:"message"`
}

// ResetFailure はリセット失敗の応答（要求元のみに送る）
type ResetFailure struct {
	ShowID  string `json:"showId"`
	Message string `json:"message"`
}

// SeatUpdate は座席状態変更のブロードキャスト
type SeatUpdate struct {
	SeatID    string `json:"seatId"`
	Status    string `json:"status"`
	ChangedBy string `json:"changedBy"`
	ShowID    string `json:"showId"`
}

// BookSeatFailure は予約失敗の応答（要求元のみに送る）
type BookSeatFailure struct {
	SeatID  string `json:"seatId"`
	Message string `json:"message"`
}

// Stats は集計統計のブロードキャスト
// 座席ストアからの再計算値であり、独立に所有される状態ではない
type Stats struct {
	TotalRevenue  int `json:"totalRevenue"`
	ActiveUsers   int `json:"activeUsers"`
	TicketsSold   int `json:"ticketsSold"`
	OccupancyRate int `json:"occupancyRate"` // パーセント（四捨五入）
}

// NewOrder は成立した注文の可読サマリ（監視用、整合性契約の対象外）
type NewOrder struct {
	Event    string `json:"event"`
	Customer string `json:"customer"`
	Movie    string `json:"movie"`
	Seat     string `json:"seat"`
	Price    int    `json:"price"`
	Time     string `json:"time"`
	Note     string `json:"note,omitempty"`
}
