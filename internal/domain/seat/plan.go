package seat

// Plan は上映回の座席レイアウト生成規則を表す
// レイアウトは上映回の作成時に一度だけ生成され、以後は固定される
type Plan struct {
	Rows          []string
	SeatsPerRow   int
	StandardPrice int
	VIPRows       map[string]struct{}
	VIPPrice      int
}

// DefaultPlan は標準の座席プランを返す（A〜G列×8席、G列はVIP）
func DefaultPlan() Plan {
	return Plan{
		Rows:          []string{"A", "B", "C", "D", "E", "F", "G"},
		SeatsPerRow:   8,
		StandardPrice: 80000,
		VIPRows:       map[string]struct{}{"G": {}},
		VIPPrice:      120000,
	}
}

// Generate はプランに従って座席レイアウトを生成する
// 返り値の順序は列→番号の昇順で安定
func (p Plan) Generate() []*Seat {
	seats := make([]*Seat, 0, len(p.Rows)*p.SeatsPerRow)
	for _, row := range p.Rows {
		tier := TierStandard
		price := p.StandardPrice
		if _, ok := p.VIPRows[row]; ok {
			tier = TierVIP
			price = p.VIPPrice
		}
		for n := 1; n <= p.SeatsPerRow; n++ {
			seats = append(seats, New(row, n, tier, price))
		}
	}
	return seats
}

// Validate はプランの検証を行う
func (p Plan) Validate() error {
	if len(p.Rows) == 0 || p.SeatsPerRow <= 0 {
		return ErrInvalidSeatNumber
	}
	if p.StandardPrice < 0 || p.VIPPrice < 0 {
		return ErrInvalidPrice
	}
	return nil
}
