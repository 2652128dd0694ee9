package engine

import (
	"testing"

	"golang-autoprofit/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribersNotifiedInOrder(t *testing.T) {
	e := newTestEngine(t, baseRiskConfig(), 10000)

	var order []string
	e.Subscribe(func(dto.ProfitStats) { order = append(order, "first") })
	e.Subscribe(func(dto.ProfitStats) { order = append(order, "second") })
	e.Subscribe(func(dto.ProfitStats) { order = append(order, "third") })

	tr, err := e.OpenTrade("AAA", dto.DirectionLong, 100, 10)
	require.NoError(t, err)
	_, err = e.CloseTrade(tr.ID, 101, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestPanickingSubscriberIsIsolated(t *testing.T) {
	e := newTestEngine(t, baseRiskConfig(), 10000)

	var delivered []dto.ProfitStats
	e.Subscribe(func(dto.ProfitStats) { panic("boom") })
	e.Subscribe(func(s dto.ProfitStats) { delivered = append(delivered, s) })

	tr, err := e.OpenTrade("AAA", dto.DirectionLong, 100, 10)
	require.NoError(t, err)

	closed, err := e.CloseTrade(tr.ID, 102, "")
	require.NoError(t, err, "a misbehaving subscriber must not prevent the close")
	assert.Equal(t, dto.StatusClosed, closed.Status)

	require.Len(t, delivered, 1)
	assert.InDelta(t, 20, delivered[0].Today, 1e-9)
	assert.InDelta(t, 10020, e.GetCapital(), 1e-9)
}

func TestUnsubscribe(t *testing.T) {
	e := newTestEngine(t, baseRiskConfig(), 10000)

	var calls int
	id := e.Subscribe(func(dto.ProfitStats) { calls++ })

	e.ResetDaily()
	assert.Equal(t, 1, calls)

	e.Unsubscribe(id)
	e.ResetDaily()
	assert.Equal(t, 1, calls)

	// Unsubscribing twice is harmless.
	e.Unsubscribe(id)
}
