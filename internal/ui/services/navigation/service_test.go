package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"collectionview/internal/domain"
	"collectionview/internal/eventbus"
)

func newFixture(t *testing.T, count *int) (*Service, *eventbus.Recorder) {
	t.Helper()
	bus := eventbus.New()
	rec, unsub := eventbus.Record(bus)
	t.Cleanup(unsub)
	return NewService(bus, func() int { return *count }), rec
}

func TestNavigateList(t *testing.T) {
	count := 5
	s, rec := newFixture(t, &count)

	s.Navigate(DirectionUp)
	assert.Equal(t, 0, s.Cursor())
	assert.Empty(t, rec.Events(), "no move at the top")

	s.Navigate(DirectionDown)
	s.Navigate(DirectionDown)
	assert.Equal(t, 2, s.Cursor())

	s.Navigate(DirectionEnd)
	assert.Equal(t, 4, s.Cursor())
	s.Navigate(DirectionDown)
	assert.Equal(t, 4, s.Cursor())

	s.Navigate(DirectionHome)
	assert.Equal(t, 0, s.Cursor())

	events := rec.Events()
	assert.Len(t, events, 4)
	assert.Equal(t, domain.CursorMovedEvent{OldIndex: 2, NewIndex: 4}, events[2])
}

func TestNavigateGrid(t *testing.T) {
	count := 10
	s, _ := newFixture(t, &count)
	s.SetColumns(4)

	s.Navigate(DirectionDown)
	assert.Equal(t, 4, s.Cursor())
	s.Navigate(DirectionRight)
	assert.Equal(t, 5, s.Cursor())
	s.Navigate(DirectionDown)
	assert.Equal(t, 9, s.Cursor())
	s.Navigate(DirectionDown)
	assert.Equal(t, 9, s.Cursor(), "no row below")
	s.Navigate(DirectionUp)
	assert.Equal(t, 5, s.Cursor())
}

func TestViewportFollowsCursor(t *testing.T) {
	count := 100
	s, _ := newFixture(t, &count)
	s.SetViewportHeight(ReservedRows + 10)
	assert.Equal(t, 10, s.ViewportHeight())

	s.MoveToIndex(25)
	assert.Equal(t, 16, s.ViewportOffset())

	s.Navigate(DirectionPageUp)
	assert.Equal(t, 16, s.Cursor())
	assert.Equal(t, 16, s.ViewportOffset())

	s.Navigate(DirectionHome)
	assert.Equal(t, 0, s.ViewportOffset())
}

func TestClampAfterShrink(t *testing.T) {
	count := 10
	s, _ := newFixture(t, &count)

	s.MoveToIndex(8)
	count = 3
	s.Clamp()
	assert.Equal(t, 2, s.Cursor())

	count = 0
	s.Clamp()
	assert.Equal(t, 0, s.Cursor())
}

func TestTinyViewport(t *testing.T) {
	count := 3
	s, _ := newFixture(t, &count)
	s.SetViewportHeight(2)
	assert.Equal(t, 1, s.ViewportHeight())
}

func TestSetViewportRows(t *testing.T) {
	count := 30
	s, _ := newFixture(t, &count)
	s.SetColumns(3)
	s.SetViewportRows(2)
	assert.Equal(t, 2, s.ViewportHeight())

	s.MoveToIndex(10) // row 3
	assert.Equal(t, 6, s.ViewportOffset(), "offset snaps to the start of a row")

	s.SetViewportRows(0)
	assert.Equal(t, 1, s.ViewportHeight())
}
