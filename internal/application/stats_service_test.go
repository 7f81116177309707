package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/seat"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/infrastructure/memory"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/protocol"
)

type fixedCounter int

func (c fixedCounter) Count() int { return int(c) }

func TestStatsService_Snapshot(t *testing.T) {
	seats := memory.NewSeatStore()
	require.NoError(t, seats.CreateShow("S1", seat.DefaultPlan()))
	svc := NewStatsService(seats, fixedCounter(3), &capturePublisher{})

	t.Run("初期状態は全てゼロ", func(t *testing.T) {
		st := svc.Snapshot()

		assert.Zero(t, st.TotalRevenue)
		assert.Zero(t, st.TicketsSold)
		assert.Zero(t, st.OccupancyRate)
		assert.Equal(t, 3, st.ActiveUsers)
	})

	t.Run("予約が売上・販売数・稼働率に反映される", func(t *testing.T) {
		_, err := seats.TrySetBooked("S1", "A1") // 80000
		require.NoError(t, err)
		_, err = seats.TrySetBooked("S1", "G1") // 120000
		require.NoError(t, err)

		st := svc.Snapshot()

		assert.Equal(t, 200000, st.TotalRevenue)
		assert.Equal(t, 2, st.TicketsSold)
		assert.Equal(t, 4, st.OccupancyRate) // round(2/56*100)
	})

	t.Run("付帯売上は累積で上乗せされる", func(t *testing.T) {
		svc.AddAncillaryRevenue(79000)
		svc.AddAncillaryRevenue(35000)
		svc.AddAncillaryRevenue(0)  // 無視
		svc.AddAncillaryRevenue(-1) // 無視

		st := svc.Snapshot()

		assert.Equal(t, 314000, st.TotalRevenue)
	})

	t.Run("リセット後は座席由来の値だけがゼロに戻る", func(t *testing.T) {
		require.NoError(t, seats.ResetShow("S1"))

		st := svc.Snapshot()

		assert.Zero(t, st.TicketsSold)
		assert.Zero(t, st.OccupancyRate)
		assert.Equal(t, 114000, st.TotalRevenue, "付帯売上の累積は残る")
	})
}

func TestStatsService_Broadcast(t *testing.T) {
	seats := memory.NewSeatStore()
	require.NoError(t, seats.CreateShow("S1", seat.DefaultPlan()))
	publisher := &capturePublisher{}
	svc := NewStatsService(seats, nil, publisher)

	_, err := seats.TrySetBooked("S1", "A1")
	require.NoError(t, err)

	svc.Broadcast()

	msgs := publisher.byType(protocol.TypeStatsUpdate)
	require.Len(t, msgs, 1)
	var st protocol.Stats
	require.NoError(t, msgs[0].Decode(&st))
	assert.Equal(t, 80000, st.TotalRevenue)
	assert.Equal(t, 1, st.TicketsSold)
	assert.Zero(t, st.ActiveUsers, "カウンタ未設定時は0")
}
