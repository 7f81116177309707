package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c := New("Tanaka Ichiro", "tanaka@example.com", "hash", "090-0000-0000")

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, LevelStandard, c.MembershipLevel)
	assert.Zero(t, c.Points)
	assert.Zero(t, c.TotalSpent)
	assert.Empty(t, c.History)
}

func TestCustomer_ApplyBooking(t *testing.T) {
	c := New("Tanaka Ichiro", "tanaka@example.com", "hash", "")

	rec := NewBookingRecord("S1", "Mai", "A1", 80000, 1000)
	c.ApplyBooking(rec)

	t.Run("合計金額は座席価格＋付帯売上", func(t *testing.T) {
		assert.Equal(t, 81000, rec.Price)
	})

	t.Run("ポイントはfloor(合計/1000)だけ加算される", func(t *testing.T) {
		assert.Equal(t, 81, c.Points)
	})

	t.Run("累計利用額は合計と同額だけ加算される", func(t *testing.T) {
		assert.Equal(t, 81000, c.TotalSpent)
	})

	t.Run("履歴にちょうど1件追記される", func(t *testing.T) {
		require.Len(t, c.History, 1)
		assert.Equal(t, rec.ID, c.History[0].ID)
		assert.Equal(t, "S1", c.History[0].ShowID)
		assert.Equal(t, "A1", c.History[0].SeatID)
	})
}

func TestCustomer_ApplyBooking_HistoryOrder(t *testing.T) {
	c := New("Tanaka Ichiro", "tanaka@example.com", "hash", "")

	first := NewBookingRecord("S1", "Mai", "A1", 80000, 0)
	second := NewBookingRecord("S1", "Mai", "A2", 80000, 0)
	c.ApplyBooking(first)
	c.ApplyBooking(second)

	// 新しい順
	require.Len(t, c.History, 2)
	assert.Equal(t, second.ID, c.History[0].ID)
	assert.Equal(t, first.ID, c.History[1].ID)

	assert.Equal(t, 160, c.Points)
	assert.Equal(t, 160000, c.TotalSpent)
}

func TestNewGuest(t *testing.T) {
	g := NewGuest("walk-in-42")

	assert.Equal(t, "walk-in-42", g.Name)
	assert.Equal(t, LevelStandard, g.MembershipLevel)
	assert.Empty(t, g.Email)
}
