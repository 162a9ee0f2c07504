package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHorizontalInitialize(t *testing.T) {
	rec := &Recorder{}
	h := NewHorizontal(nil, rec, HorizontalConfig{})
	chunk := testItems(13)
	require.NoError(t, h.Initialize(chunk))

	assert.Equal(t, 39, h.Len())
	assert.Equal(t, 13, h.OriginalLength())
	assert.Equal(t, 4, h.Index())
	assert.Equal(t, 880.0, h.Offset())
	assert.Equal(t, "translateX(-880px)", h.Transform())
	assert.Equal(t, chunk[4:9], itemsOf(h.Visible()))

	ops := rec.Flush()
	require.Len(t, ops, 40)
	for _, op := range ops[:39] {
		assert.Equal(t, OpInsertAfter, op.Kind)
	}
	assert.Equal(t, Op{Kind: OpTranslate, Transform: "translateX(-880px)"}, ops[39])
}

func TestHorizontalInitializeShortChunk(t *testing.T) {
	for n := 1; n <= 6; n++ {
		h := NewHorizontal(nil, nil, HorizontalConfig{})
		require.NoError(t, h.Initialize(testItems(n)))
		assert.Equal(t, 0, h.Index(), "n=%d", n)
		assert.Len(t, h.Visible(), VisibleCards, "n=%d", n)
	}
}

func TestHorizontalInitializeEmpty(t *testing.T) {
	h := NewHorizontal(nil, nil, HorizontalConfig{})
	assert.ErrorIs(t, h.Initialize(nil), ErrEmptyChunk)
}

func TestHorizontalMoveSlideRejectsBadInput(t *testing.T) {
	h := NewHorizontal(nil, nil, HorizontalConfig{})
	assert.ErrorIs(t, h.MoveSlide(1), ErrNotInitialized)

	require.NoError(t, h.Initialize(testItems(13)))
	for _, dir := range []int{0, 2, -3} {
		err := h.MoveSlide(dir)
		assert.ErrorIs(t, err, ErrInvalidDirection)
	}
	assert.Equal(t, 4, h.Index())
	assert.Equal(t, 880.0, h.Offset())
	assert.Equal(t, 39, h.Len())
}

func TestHorizontalTwentyForwardMoves(t *testing.T) {
	h := NewHorizontal(nil, nil, HorizontalConfig{})
	require.NoError(t, h.Initialize(testItems(13)))

	for i := 0; i < 20; i++ {
		require.NoError(t, h.MoveSlide(1))
		assert.Len(t, h.Visible(), VisibleCards)
	}
	assert.Equal(t, 24, h.Index())
	assert.Equal(t, 24*CardWidth, h.Offset())
}

func TestHorizontalRoundTrip(t *testing.T) {
	h := NewHorizontal(nil, nil, HorizontalConfig{})
	require.NoError(t, h.Initialize(testItems(13)))
	startIndex, startOffset := h.Index(), h.Offset()

	for i := 0; i < 13; i++ {
		require.NoError(t, h.MoveSlide(1))
	}
	for i := 0; i < 13; i++ {
		require.NoError(t, h.MoveSlide(-1))
	}
	assert.Equal(t, startIndex, h.Index())
	assert.Equal(t, startOffset, h.Offset())
}

func TestHorizontalAppendsFreshTiling(t *testing.T) {
	rec := &Recorder{}
	h := NewHorizontal(nil, rec, HorizontalConfig{})
	chunk := testItems(13)
	require.NoError(t, h.Initialize(chunk))
	rec.Flush()

	// index 4 reaches 33 (= 39 - 5 - 1) after 29 moves.
	for i := 0; i < 28; i++ {
		require.NoError(t, h.MoveSlide(1))
	}
	assert.Equal(t, 39, h.Len())
	rec.Flush()

	require.NoError(t, h.MoveSlide(1))
	assert.Equal(t, 52, h.Len())
	assert.Equal(t, chunk, itemsOf(h.Cards()[39:]))

	ops := rec.Flush()
	require.Len(t, ops, 14)
	for i, op := range ops[:13] {
		assert.Equal(t, OpInsertAfter, op.Kind)
		assert.Equal(t, chunk[i].Name, op.Card.Title)
		assert.Equal(t, LinkRenderer{}.CreateCard(chunk[i]).Href, op.Card.Href)
	}
	assert.Equal(t, OpTranslate, ops[13].Kind)
}

func TestHorizontalPrependsInOrder(t *testing.T) {
	rec := &Recorder{}
	h := NewHorizontal(nil, rec, HorizontalConfig{})
	chunk := testItems(13)
	require.NoError(t, h.Initialize(chunk))
	rec.Flush()

	for i := 0; i < 4; i++ {
		require.NoError(t, h.MoveSlide(-1))
	}
	assert.Equal(t, 52, h.Len())
	assert.Equal(t, 13, h.Index())
	assert.Equal(t, 13*CardWidth, h.Offset())
	assert.Equal(t, chunk, itemsOf(h.Cards()[:13]))
	assert.Equal(t, chunk[0:5], itemsOf(h.Visible()))

	ops := rec.Flush()
	// three plain translates, then thirteen inserts last card first, then the translate
	require.Len(t, ops, 3+13+1)
	inserts := ops[3:16]
	for i, op := range inserts {
		assert.Equal(t, OpInsertBefore, op.Kind)
		assert.Equal(t, chunk[12-i].Name, op.Card.Title)
	}
}

func TestHorizontalTrimsFrontWhenMovingForward(t *testing.T) {
	rec := &Recorder{}
	h := NewHorizontal(nil, rec, HorizontalConfig{})
	require.NoError(t, h.Initialize(testItems(13)))

	// appends at index 33 and 46 fill the strip to 65; the one at 59 trims.
	for i := 0; i < 54; i++ {
		require.NoError(t, h.MoveSlide(1))
		assert.LessOrEqual(t, h.Len(), 65)
	}
	rec.Flush()
	require.NoError(t, h.MoveSlide(1))

	assert.Equal(t, 65, h.Len())
	assert.Equal(t, 46, h.Index())
	assert.Equal(t, 46*CardWidth, h.Offset())

	ops := rec.Flush()
	removes := 0
	for _, op := range ops {
		if op.Kind == OpRemove {
			assert.Equal(t, "front", op.Edge)
			removes++
		}
	}
	assert.Equal(t, 13, removes)
}

func TestHorizontalTrimsBackWhenMovingBackward(t *testing.T) {
	rec := &Recorder{}
	h := NewHorizontal(nil, rec, HorizontalConfig{})
	require.NoError(t, h.Initialize(testItems(13)))

	// prepends at 4, 17 and 30 backward moves; the third exceeds 65 cards.
	for i := 0; i < 29; i++ {
		require.NoError(t, h.MoveSlide(-1))
		assert.LessOrEqual(t, h.Len(), 65)
	}
	rec.Flush()
	require.NoError(t, h.MoveSlide(-1))

	assert.Equal(t, 65, h.Len())
	assert.Equal(t, 13, h.Index())

	removes := 0
	for _, op := range rec.Flush() {
		if op.Kind == OpRemove {
			assert.Equal(t, "back", op.Edge)
			removes++
		}
	}
	assert.Equal(t, 13, removes)
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 4, floorDiv(8, 2))
	assert.Equal(t, -2, floorDiv(-4, 2))
	assert.Equal(t, -2, floorDiv(-3, 2))
	assert.Equal(t, -1, floorDiv(-1, 2))
	assert.Equal(t, 1, floorDiv(3, 2))
}
