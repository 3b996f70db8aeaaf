package view

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(length int, initial State) *Model {
	buf := make(Bytes, length)
	for i := range buf {
		buf[i] = byte(i)
	}
	return NewModel(buf, initial)
}

func requireInvariants(t *testing.T, m *Model) {
	t.Helper()
	s := m.State()
	require.GreaterOrEqual(t, s.Width, uint32(1))
	require.GreaterOrEqual(t, s.Height, uint32(1))
	fb := FrameBytes(s.Width, s.Height)
	length := uint64(m.Len())
	if fb > length {
		require.Zero(t, s.Offset, "oversized frame must sit at offset 0")
	} else {
		require.LessOrEqual(t, s.Offset, length-fb)
	}
	f := m.Frame()
	require.LessOrEqual(t, s.Offset+uint64(len(f.Pix)), length)
}

func TestDefaultsOnTinyBuffer(t *testing.T) {
	m := newTestModel(100, DefaultState())

	s := m.State()
	assert.Equal(t, uint64(0), s.Offset)
	assert.Equal(t, uint32(1920), s.Width)
	assert.Equal(t, uint32(1080), s.Height)

	f := m.Frame()
	assert.Len(t, f.Pix, 100)
	assert.False(t, f.Complete())
	assert.Equal(t, 0, f.FullRows())
	assert.Equal(t, Range[uint64]{Min: 0, Max: 0}, m.OffsetRange())
}

func TestOffsetRangeMegabyteScenario(t *testing.T) {
	m := newTestModel(8_000_000, State{Width: 1000, Height: 1000})

	assert.Equal(t, Range[uint64]{Min: 0, Max: 4_000_000}, m.OffsetRange())

	m.SetOffset(5_000_000)
	assert.Equal(t, uint64(4_000_000), m.State().Offset)

	f := m.Frame()
	assert.True(t, f.Complete())
	assert.Len(t, f.Pix, 4_000_000)
	assert.Equal(t, uint64(4_000_000), f.Offset)
}

func TestOffsetRangeTracksDimensions(t *testing.T) {
	m := newTestModel(1000, State{Width: 10, Height: 10})
	assert.Equal(t, uint64(600), m.OffsetRange().Max)

	m.SetWidth(5)
	assert.Equal(t, uint64(800), m.OffsetRange().Max)

	m.SetHeight(50)
	assert.Equal(t, uint64(0), m.OffsetRange().Max)
}

func TestEveryOffsetInRangeYieldsFrameInsideBuffer(t *testing.T) {
	m := newTestModel(257, State{Width: 4, Height: 3})
	r := m.OffsetRange()
	for off := r.Min; off <= r.Max; off++ {
		m.SetOffset(off)
		require.Equal(t, off, m.State().Offset)
		f := m.Frame()
		require.True(t, f.Complete())
		require.LessOrEqual(t, off+uint64(len(f.Pix)), uint64(m.Len()))
		require.Equal(t, byte(off), f.Pix[0])
	}
}

func TestGrowingDimensionsPastBufferForcesOffsetZero(t *testing.T) {
	m := newTestModel(1024, State{Offset: 512, Width: 8, Height: 8})
	require.Equal(t, uint64(512), m.State().Offset)

	m.SetWidth(100)
	assert.Equal(t, uint64(0), m.State().Offset)

	m = newTestModel(1024, State{Offset: 512, Width: 8, Height: 8})
	m.SetHeight(100)
	assert.Equal(t, uint64(0), m.State().Offset)
}

func TestGrowingDimensionsPullsOffsetBack(t *testing.T) {
	m := newTestModel(1024, State{Offset: 900, Width: 4, Height: 4})
	require.Equal(t, uint64(900), m.State().Offset)

	m.SetHeight(8)
	assert.Equal(t, uint64(1024-128), m.State().Offset)
}

func TestZeroDimensionsAreFloored(t *testing.T) {
	m := newTestModel(64, State{Width: 2, Height: 2})
	m.SetWidth(0)
	assert.Equal(t, uint32(1), m.State().Width)
	m.SetHeight(0)
	assert.Equal(t, uint32(1), m.State().Height)
}

func TestDimensionRangesKeepHeadroom(t *testing.T) {
	m := newTestModel(16, State{Width: 1, Height: 1})
	assert.Equal(t, Range[uint32]{Min: 1, Max: 10000}, m.WidthRange())
	assert.Equal(t, Range[uint32]{Min: 1, Max: 10000}, m.HeightRange())

	m.SetWidth(10000)
	assert.Equal(t, uint32(10001), m.WidthRange().Max)

	m.Step(FieldWidth, 1)
	assert.Equal(t, uint32(10001), m.State().Width)
	assert.Equal(t, uint32(10002), m.WidthRange().Max)

	m.SetHeight(math.MaxUint32)
	assert.Equal(t, uint32(math.MaxUint32), m.HeightRange().Max)
}

func TestSettersWithCurrentValueAreNoOps(t *testing.T) {
	m := newTestModel(4096, State{Offset: 100, Width: 16, Height: 8})
	before := m.State()
	frame := m.Frame()

	m.SetOffset(before.Offset)
	m.SetWidth(before.Width)
	m.SetHeight(before.Height)

	assert.Equal(t, before, m.State())
	after := m.Frame()
	assert.Equal(t, frame.Offset, after.Offset)
	assert.Equal(t, len(frame.Pix), len(after.Pix))
	assert.Same(t, &frame.Pix[0], &after.Pix[0])
}

func TestApply(t *testing.T) {
	m := newTestModel(1 << 20, State{Width: 16, Height: 16})

	s := m.Apply(Change{Field: FieldWidth, Value: 32})
	assert.Equal(t, uint32(32), s.Width)

	s = m.Apply(Change{Field: FieldHeight, Value: 64})
	assert.Equal(t, uint32(64), s.Height)

	s = m.Apply(Change{Field: FieldOffset, Value: 12})
	assert.Equal(t, uint64(12), s.Offset)

	s = m.Apply(Change{Field: FieldWidth, Value: math.MaxUint64})
	assert.Equal(t, uint32(math.MaxUint32), s.Width)
	assert.Equal(t, uint64(0), s.Offset)

	s = m.Apply(Change{Field: Field(42), Value: 1})
	assert.Equal(t, uint32(math.MaxUint32), s.Width)
}

func TestStep(t *testing.T) {
	m := newTestModel(1000, State{Offset: 10, Width: 10, Height: 10})

	assert.Equal(t, uint64(11), m.Step(FieldOffset, 1).Offset)
	assert.Equal(t, uint64(0), m.Step(FieldOffset, -100).Offset)
	assert.Equal(t, uint64(600), m.Step(FieldOffset, 1<<40).Offset)
	assert.Equal(t, uint64(560), m.Step(FieldOffset, -int64(m.Stride())).Offset)

	assert.Equal(t, uint32(1), m.Step(FieldWidth, -50).Width)
	assert.Equal(t, uint32(2), m.Step(FieldHeight, -8).Height)
	assert.Equal(t, uint32(10000), m.Step(FieldHeight, math.MaxInt64).Height)
}

func TestValueAndFieldRange(t *testing.T) {
	m := newTestModel(1000, State{Offset: 3, Width: 5, Height: 7})
	assert.Equal(t, uint64(3), m.Value(FieldOffset))
	assert.Equal(t, uint64(5), m.Value(FieldWidth))
	assert.Equal(t, uint64(7), m.Value(FieldHeight))

	assert.Equal(t, Range[uint64]{Min: 0, Max: 860}, m.FieldRange(FieldOffset))
	assert.Equal(t, Range[uint64]{Min: 1, Max: 10000}, m.FieldRange(FieldWidth))
	assert.Equal(t, Range[uint64]{Min: 1, Max: 10000}, m.FieldRange(FieldHeight))
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "offset", FieldOffset.String())
	assert.Equal(t, "width", FieldWidth.String())
	assert.Equal(t, "height", FieldHeight.String())
	assert.Equal(t, "Field(9)", Field(9).String())
	assert.Equal(t, "width=3", Change{Field: FieldWidth, Value: 3}.String())
}

func TestRandomEditsPreserveInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, length := range []int{1, 3, 4, 100, 4096, 65537} {
		m := newTestModel(length, DefaultState())
		requireInvariants(t, m)
		for i := 0; i < 2000; i++ {
			switch rng.IntN(5) {
			case 0:
				m.SetOffset(rng.Uint64N(uint64(length) * 2))
			case 1:
				m.SetWidth(uint32(rng.IntN(300)))
			case 2:
				m.SetHeight(uint32(rng.IntN(300)))
			case 3:
				m.Step(Field(rng.IntN(3)), rng.Int64N(2001)-1000)
			case 4:
				m.Apply(Change{Field: Field(rng.IntN(3)), Value: rng.Uint64()})
			}
			requireInvariants(t, m)
			assert.GreaterOrEqual(t, m.WidthRange().Max, max(uint32(SoftDimensionMax), min(m.State().Width, math.MaxUint32-1)+1))
		}
	}
}
