package application

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/customer"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/seat"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/show"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/infrastructure/memory"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/protocol"
)

// capturePublisher はテスト用にブロードキャストを記録する
type capturePublisher struct {
	mu     sync.Mutex
	all    []protocol.Message
	admins []protocol.Message
}

func (p *capturePublisher) Publish(msg protocol.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.all = append(p.all, msg)
}

func (p *capturePublisher) PublishAdmins(msg protocol.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.admins = append(p.admins, msg)
}

func (p *capturePublisher) byType(t protocol.Type) []protocol.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []protocol.Message
	for _, m := range append(append([]protocol.Message{}, p.all...), p.admins...) {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}

func (p *capturePublisher) total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.all) + len(p.admins)
}

type bookingEnv struct {
	seats     *memory.SeatStore
	shows     *memory.ShowRepository
	customers *memory.CustomerDirectory
	stats     *StatsService
	publisher *capturePublisher
	service   *BookingService
	tanaka    *customer.Customer
}

func setupBookingEnv(t *testing.T) *bookingEnv {
	t.Helper()

	seats := memory.NewSeatStore()
	shows := memory.NewShowRepository()
	customers := memory.NewCustomerDirectory()
	publisher := &capturePublisher{}

	require.NoError(t, shows.Create(&show.Show{ID: "S1", Title: "Mai", Rating: 4.8}))
	require.NoError(t, seats.CreateShow("S1", seat.DefaultPlan()))

	tanaka := customer.New("Tanaka Ichiro", "tanaka@example.com", "hash", "")
	require.NoError(t, customers.Create(tanaka))

	stats := NewStatsService(seats, nil, publisher)
	service := NewBookingService(seats, shows, customers, stats, publisher, nil)

	return &bookingEnv{
		seats:     seats,
		shows:     shows,
		customers: customers,
		stats:     stats,
		publisher: publisher,
		service:   service,
		tanaka:    tanaka,
	}
}

func TestBookingService_Book(t *testing.T) {
	t.Run("予約成功で履歴・ポイント・イベントが揃う", func(t *testing.T) {
		env := setupBookingEnv(t)

		rec, err := env.service.Book(context.Background(), BookSeatInput{
			ShowID:         "S1",
			SeatID:         "A1",
			RequesterID:    env.tanaka.ID,
			AncillaryTotal: 79000,
		})

		require.NoError(t, err)
		assert.Equal(t, "A1", rec.SeatID)
		assert.Equal(t, 159000, rec.Price) // 80000 + 79000

		got, err := env.customers.GetByID(env.tanaka.ID)
		require.NoError(t, err)
		require.Len(t, got.History, 1)
		assert.Equal(t, 159, got.Points)
		assert.Equal(t, 159000, got.TotalSpent)

		// 座席更新は全接続へ
		updates := env.publisher.byType(protocol.TypeSeatUpdate)
		require.Len(t, updates, 1)
		var su protocol.SeatUpdate
		require.NoError(t, updates[0].Decode(&su))
		assert.Equal(t, "A1", su.SeatID)
		assert.Equal(t, "BOOKED", su.Status)
		assert.Equal(t, env.tanaka.ID, su.ChangedBy)
		assert.Equal(t, "S1", su.ShowID)

		// 顧客台帳は管理者のみ
		require.Len(t, env.publisher.admins, 1)
		assert.Equal(t, protocol.TypeCustomersUpdate, env.publisher.admins[0].Type)

		assert.Len(t, env.publisher.byType(protocol.TypeNewOrder), 1)

		statsMsgs := env.publisher.byType(protocol.TypeStatsUpdate)
		require.Len(t, statsMsgs, 1)
		var st protocol.Stats
		require.NoError(t, statsMsgs[0].Decode(&st))
		assert.Equal(t, 159000, st.TotalRevenue)
		assert.Equal(t, 1, st.TicketsSold)
	})

	t.Run("予約済み座席への後続リクエストは失敗しイベントを出さない", func(t *testing.T) {
		env := setupBookingEnv(t)

		_, err := env.service.Book(context.Background(), BookSeatInput{
			ShowID: "S1", SeatID: "A1", RequesterID: env.tanaka.ID,
		})
		require.NoError(t, err)
		before := env.publisher.total()

		_, err = env.service.Book(context.Background(), BookSeatInput{
			ShowID: "S1", SeatID: "A1", RequesterID: env.tanaka.ID,
		})

		assert.ErrorIs(t, err, seat.ErrSeatAlreadyBooked)
		assert.Equal(t, before, env.publisher.total(), "失敗時はイベントを配信しない")

		got, err := env.customers.GetByID(env.tanaka.ID)
		require.NoError(t, err)
		assert.Len(t, got.History, 1, "失敗時は履歴に追記しない")
	})

	t.Run("存在しない上映回はエラー", func(t *testing.T) {
		env := setupBookingEnv(t)

		_, err := env.service.Book(context.Background(), BookSeatInput{
			ShowID: "unknown", SeatID: "A1", RequesterID: env.tanaka.ID,
		})

		assert.ErrorIs(t, err, show.ErrShowNotFound)
		assert.Zero(t, env.publisher.total())
	})

	t.Run("存在しない座席はエラー", func(t *testing.T) {
		env := setupBookingEnv(t)

		_, err := env.service.Book(context.Background(), BookSeatInput{
			ShowID: "S1", SeatID: "Z9", RequesterID: env.tanaka.ID,
		})

		assert.ErrorIs(t, err, seat.ErrSeatNotFound)
	})

	t.Run("必須フィールド欠落はエラー", func(t *testing.T) {
		env := setupBookingEnv(t)

		_, err := env.service.Book(context.Background(), BookSeatInput{
			ShowID: "S1", SeatID: "A1",
		})

		assert.ErrorIs(t, err, ErrInvalidBookingRequest)
	})

	t.Run("負の付帯売上はエラー", func(t *testing.T) {
		env := setupBookingEnv(t)

		_, err := env.service.Book(context.Background(), BookSeatInput{
			ShowID: "S1", SeatID: "A1", RequesterID: env.tanaka.ID, AncillaryTotal: -1,
		})

		assert.ErrorIs(t, err, ErrInvalidBookingRequest)
	})
}

func TestBookingService_Book_GuestRequester(t *testing.T) {
	env := setupBookingEnv(t)

	_, err := env.service.Book(context.Background(), BookSeatInput{
		ShowID: "S1", SeatID: "A1", RequesterID: "walk-in-9",
	})
	require.NoError(t, err)

	t.Run("未知の予約者は暗黙のゲスト顧客になる", func(t *testing.T) {
		guest, err := env.customers.GetByID("walk-in-9")
		require.NoError(t, err)
		assert.Equal(t, "walk-in-9", guest.Name)
		require.Len(t, guest.History, 1)
		assert.Equal(t, 80, guest.Points)
	})

	t.Run("同じ識別子の再予約は同一ゲストに積まれる", func(t *testing.T) {
		_, err := env.service.Book(context.Background(), BookSeatInput{
			ShowID: "S1", SeatID: "A2", RequesterID: "walk-in-9",
		})
		require.NoError(t, err)

		guest, err := env.customers.GetByID("walk-in-9")
		require.NoError(t, err)
		assert.Len(t, guest.History, 2)
		assert.Len(t, env.customers.List(), 2, "ゲストは1人だけ作成される")
	})
}

// 同一座席を取り合う2つの予約で勝者がちょうど1人になることを検証する
func TestBookingService_Book_Race(t *testing.T) {
	env := setupBookingEnv(t)

	alice := customer.New("Alice", "alice@example.com", "hash", "")
	bob := customer.New("Bob", "bob@example.com", "hash", "")
	require.NoError(t, env.customers.Create(alice))
	require.NoError(t, env.customers.Create(bob))

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)
	start := make(chan struct{})
	for _, id := range []string{alice.ID, bob.ID} {
		wg.Add(1)
		go func(requester string) {
			defer wg.Done()
			<-start

			_, err := env.service.Book(context.Background(), BookSeatInput{
				ShowID: "S1", SeatID: "A1", RequesterID: requester,
			})
			switch {
			case err == nil:
				successes.Add(1)
			case err == seat.ErrSeatAlreadyBooked:
				conflicts.Add(1)
			default:
				t.Errorf("想定外のエラー: %v", err)
			}
		}(id)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(1), conflicts.Load())

	// 勝者側のイベントだけが配信される
	updates := env.publisher.byType(protocol.TypeSeatUpdate)
	require.Len(t, updates, 1)

	// 履歴の合計もちょうど1件
	histories := 0
	for _, c := range env.customers.List() {
		histories += len(c.History)
	}
	assert.Equal(t, 1, histories)
}
