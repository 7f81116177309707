package memory

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/customer"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/food"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/seat"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/show"
)

// DemoPassword はデモ用シード顧客の共通パスワード
const DemoPassword = "123456"

// SeedDemoData はデモ用の上映回・売店商品・顧客を投入する
// デモUI向けのフィクスチャで、空のストアに対して起動時に一度だけ呼ぶ
func SeedDemoData(seats *SeatStore, shows *ShowRepository, foods *FoodCatalog, customers *CustomerDirectory) error {
	demoShows := []*show.Show{
		{
			ID:         "1",
			Title:      "Mai",
			Genre:      "Drama, Romance",
			Duration:   "131 min",
			Rating:     4.8,
			Poster:     "https://upload.wikimedia.org/wikipedia/vi/8/86/Mai_movie_poster.jpg",
			TrailerURL: "https://www.youtube.com/embed/3Re-XN2JvRg",
		},
		{
			ID:         "2",
			Title:      "Dune: Part Two",
			Genre:      "Sci-Fi",
			Duration:   "166 min",
			Rating:     4.9,
			Poster:     "https://upload.wikimedia.org/wikipedia/en/5/52/Dune_Part_Two_poster.jpeg",
			TrailerURL: "https://www.youtube.com/embed/Way9Dexny3w",
		},
	}
	for _, s := range demoShows {
		if err := shows.Create(s); err != nil {
			return fmt.Errorf("上映回シード投入に失敗: %w", err)
		}
		if err := seats.CreateShow(s.ID, seat.DefaultPlan()); err != nil {
			return fmt.Errorf("座席レイアウト生成に失敗: %w", err)
		}
	}

	demoFoods := []*food.Item{
		{ID: "F1", Name: "Cheese Popcorn (L)", Description: "チーズ味ポップコーン Lサイズ", Price: 79000, Category: food.CategoryPopcorn},
		{ID: "F2", Name: "Caramel Popcorn (L)", Description: "キャラメル味ポップコーン Lサイズ", Price: 79000, Category: food.CategoryPopcorn},
		{ID: "F3", Name: "Cola (L)", Description: "コーラ Lサイズ", Price: 35000, Category: food.CategoryDrink},
		{ID: "F4", Name: "Combo Solo", Description: "ポップコーン(M)＋ドリンク(L)", Price: 99000, Category: food.CategoryCombo},
		{ID: "F5", Name: "Combo Couple", Description: "ポップコーン(L)＋ドリンク(L)×2", Price: 139000, Category: food.CategoryCombo},
	}
	for _, item := range demoFoods {
		if err := foods.Add(item); err != nil {
			return fmt.Errorf("売店商品シード投入に失敗: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("デモパスワードのハッシュ化に失敗: %w", err)
	}

	tanaka := customer.New("Tanaka Ichiro", "tanaka@example.com", string(hash), "090-1234-5678")
	tanaka.ID = "CUST001"
	tanaka.MembershipLevel = customer.LevelDiamond
	tanaka.Points = 2540
	tanaka.TotalSpent = 5400000

	sato := customer.New("Sato Yuki", "sato@example.com", string(hash), "080-8765-4321")
	sato.ID = "CUST002"
	sato.Points = 120
	sato.TotalSpent = 300000

	for _, c := range []*customer.Customer{tanaka, sato} {
		if err := customers.Create(c); err != nil {
			return fmt.Errorf("顧客シード投入に失敗: %w", err)
		}
	}
	return nil
}
