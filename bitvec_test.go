package bitvec

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bitvec/testutil"
)

func requireBits(t *testing.T, want []bool, v *BitVector) {
	t.Helper()
	require.Equal(t, len(want), v.Len())
	for i, w := range want {
		got, err := v.Get(i)
		require.NoError(t, err)
		require.Equal(t, w, got, "bit %d", i)
	}
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, 2*WordBytes, InlineBits)
	switch WordBytes {
	case 8:
		assert.Equal(t, 16, InlineBits)
	case 4:
		assert.Equal(t, 8, InlineBits)
	default:
		t.Fatalf("unexpected word size %d", WordBytes)
	}
}

func TestNew(t *testing.T) {
	v := New()
	assert.Equal(t, 0, v.Len())
	assert.True(t, v.IsEmpty())
	assert.True(t, v.IsInline())
	assert.Equal(t, InlineBits, v.Capacity())

	var zero BitVector
	assert.True(t, zero.Equal(&v))
}

func TestFromBits(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for _, n := range testutil.BoundaryLengths(InlineBits) {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			bits := rng.Bits(n)
			v := FromBits(bits)

			requireBits(t, bits, &v)
			assert.Equal(t, n <= InlineBits, v.IsInline())
		})
	}
}

func TestFromBytes(t *testing.T) {
	t.Run("lsb first", func(t *testing.T) {
		v := FromBytes([]byte{0b1111_0000, 0b0000_1111})

		want := []bool{
			false, false, false, false, true, true, true, true,
			true, true, true, true, false, false, false, false,
		}
		requireBits(t, want, &v)
		assert.Equal(t, 16 <= InlineBits, v.IsInline())
	})

	t.Run("heap", func(t *testing.T) {
		src := []byte{0xAA, 0x55, 0xFF}
		v := FromBytes(src)

		assert.Equal(t, 24, v.Len())
		assert.False(t, v.IsInline())
		assert.Equal(t, src, v.Bytes())

		// The input is copied.
		src[0] = 0
		b, err := v.Get(1)
		require.NoError(t, err)
		assert.True(t, b)
	})

	t.Run("empty", func(t *testing.T) {
		v := FromBytes(nil)
		assert.Equal(t, 0, v.Len())
		assert.True(t, v.IsInline())
	})
}

func TestInlineThresholdScenario(t *testing.T) {
	if InlineBits != 16 {
		t.Skip("scenario is defined for 64-bit platforms")
	}

	v := FromBytes([]byte{0b1111_0000, 0b0000_1111})
	require.True(t, v.IsInline())

	want := []bool{
		false, false, false, false, true, true, true, true,
		true, true, true, true, false, false, false, false,
	}

	v.Push(true)
	assert.False(t, v.IsInline())
	requireBits(t, append(want, true), &v)
}

func TestPushMatchesFromBits(t *testing.T) {
	rng := testutil.NewRNG(42)
	bits := rng.Bits(300)

	var pushed BitVector
	for _, b := range bits {
		pushed.Push(b)
	}
	built := FromBits(bits)

	assert.True(t, pushed.Equal(&built))
	requireBits(t, bits, &pushed)
}

func TestTransition(t *testing.T) {
	rng := testutil.NewRNG(7)
	bits := rng.Bits(InlineBits + 1)

	v := New()
	for _, b := range bits[:InlineBits] {
		v.Push(b)
	}
	require.True(t, v.IsInline())
	requireBits(t, bits[:InlineBits], &v)

	v.Push(bits[InlineBits])
	assert.False(t, v.IsInline())
	assert.GreaterOrEqual(t, v.Capacity(), InlineBits+1)
	requireBits(t, bits, &v)
}

func TestGrowth(t *testing.T) {
	rng := testutil.NewRNG(99)
	bits := rng.Bits(40 * InlineBits)

	v := FromBits(bits[:InlineBits+1])
	require.False(t, v.IsInline())

	reallocs := 0
	capacity := v.Capacity()
	for i, b := range bits[InlineBits+1:] {
		v.Push(b)
		if c := v.Capacity(); c != capacity {
			assert.GreaterOrEqual(t, c, 2*capacity, "capacity should at least double")
			capacity = c
			reallocs++
			requireBits(t, bits[:InlineBits+2+i], &v)
		}
	}
	assert.GreaterOrEqual(t, reallocs, 2)
	requireBits(t, bits, &v)
}

func TestAllocations(t *testing.T) {
	rng := testutil.NewRNG(1)
	small := rng.Bits(InlineBits)
	large := rng.Bits(InlineBits + 1)
	smallBytes := rng.Bytes(InlineBits / 8)
	largeBytes := rng.Bytes(InlineBits/8 + 5)

	var sink int

	t.Run("inline construction", func(t *testing.T) {
		allocs := testing.AllocsPerRun(100, func() {
			v := FromBits(small)
			w := FromBytes(smallBytes)
			sink = v.Len() + w.Len()
		})
		assert.Zero(t, allocs)
	})

	t.Run("heap construction", func(t *testing.T) {
		allocs := testing.AllocsPerRun(100, func() {
			v := FromBits(large)
			sink = v.Len()
		})
		assert.Equal(t, float64(1), allocs)

		allocs = testing.AllocsPerRun(100, func() {
			v := FromBytes(largeBytes)
			sink = v.Len()
		})
		assert.Equal(t, float64(1), allocs)
	})

	t.Run("inline pushes", func(t *testing.T) {
		allocs := testing.AllocsPerRun(100, func() {
			v := New()
			for i := 0; i < InlineBits; i++ {
				v.Push(i%3 == 0)
			}
			sink = v.Len()
		})
		assert.Zero(t, allocs)
	})

	t.Run("transition push", func(t *testing.T) {
		allocs := testing.AllocsPerRun(100, func() {
			v := New()
			for i := 0; i <= InlineBits; i++ {
				v.Push(i%3 == 0)
			}
			sink = v.Len()
		})
		assert.Equal(t, float64(1), allocs)
	})

	_ = sink
}

func TestBounds(t *testing.T) {
	for _, n := range []int{1, InlineBits, InlineBits + 9} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			v := Repeat(true, n)

			_, err := v.Get(n - 1)
			assert.NoError(t, err)
			assert.NoError(t, v.Set(n-1, false))

			for _, i := range []int{n, n + 1, n + 100, -1} {
				_, err := v.Get(i)
				assert.ErrorIs(t, err, ErrIndexOutOfRange)

				err = v.Set(i, true)
				assert.ErrorIs(t, err, ErrIndexOutOfRange)

				var ioe *IndexOutOfRangeError
				require.True(t, errors.As(err, &ioe))
				assert.Equal(t, i, ioe.Index)
				assert.Equal(t, n, ioe.Len)
			}
		})
	}

	var empty BitVector
	_, err := empty.Get(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.EqualError(t, err, "index out of range: index 0, length 0")
}

func TestSet(t *testing.T) {
	for _, n := range []int{InlineBits, 3 * InlineBits} {
		v := Repeat(false, n)
		inline := v.IsInline()

		for i := 0; i < n; i += 3 {
			require.NoError(t, v.Set(i, true))
		}
		require.NoError(t, v.Set(0, false))

		assert.Equal(t, inline, v.IsInline(), "Set must not change the storage mode")
		for i := 0; i < n; i++ {
			got, err := v.Get(i)
			require.NoError(t, err)
			assert.Equal(t, i != 0 && i%3 == 0, got, "bit %d", i)
		}
	}
}

func TestPop(t *testing.T) {
	bits := testutil.NewRNG(3).Bits(InlineBits + 2)
	v := FromBits(bits)
	require.False(t, v.IsInline())

	for i := len(bits) - 1; i >= 0; i-- {
		b, ok := v.Pop()
		require.True(t, ok)
		assert.Equal(t, bits[i], b)
		assert.False(t, v.IsInline(), "heap vectors never move back inline")
	}
	_, ok := v.Pop()
	assert.False(t, ok)

	// Stale bits from popped positions must not leak into new pushes.
	v.Push(false)
	v.Push(true)
	requireBits(t, []bool{false, true}, &v)
}

func TestAppend(t *testing.T) {
	rng := testutil.NewRNG(11)

	t.Run("matches push", func(t *testing.T) {
		head := rng.Bits(5)
		tail := rng.Bits(3 * InlineBits)

		appended := FromBits(head)
		appended.Append(tail...)

		pushed := FromBits(head)
		for _, b := range tail {
			pushed.Push(b)
		}

		assert.True(t, appended.Equal(&pushed))
		requireBits(t, append(append([]bool{}, head...), tail...), &appended)
	})

	t.Run("single allocation", func(t *testing.T) {
		tail := rng.Bits(10 * InlineBits)
		allocs := testing.AllocsPerRun(50, func() {
			v := New()
			v.Push(true)
			v.Append(tail...)
		})
		assert.Equal(t, float64(1), allocs)
	})

	t.Run("vector", func(t *testing.T) {
		a := rng.Bits(InlineBits - 3)
		b := rng.Bits(InlineBits + 5)

		va, vb := FromBits(a), FromBits(b)
		va.AppendVector(&vb)
		requireBits(t, append(append([]bool{}, a...), b...), &va)
	})

	t.Run("self", func(t *testing.T) {
		bits := rng.Bits(InlineBits - 1)
		v := FromBits(bits)
		v.AppendVector(&v)
		requireBits(t, append(append([]bool{}, bits...), bits...), &v)
	})

	t.Run("empty", func(t *testing.T) {
		v := New()
		v.Append()
		assert.Equal(t, 0, v.Len())
		assert.True(t, v.IsInline())
	})
}

func TestReserve(t *testing.T) {
	v := New()
	v.Reserve(1000)
	assert.True(t, v.IsInline(), "reserve must not leave an empty vector on the heap")

	v = Repeat(true, InlineBits+1)
	v.Reserve(1000)
	assert.GreaterOrEqual(t, v.Capacity(), InlineBits+1001)

	allocs := testing.AllocsPerRun(10, func() {
		w := v.Clone()
		w.Reserve(1000)
		for i := 0; i < 1000; i++ {
			w.Push(true)
		}
	})
	assert.Equal(t, float64(2), allocs, "one for the clone, one for the reservation")

	assert.Panics(t, func() { v.Reserve(-1) })
}

func TestReserve_Inline(t *testing.T) {
	v := New()
	v.Reserve(1000)
	require.True(t, v.IsInline())
	assert.Equal(t, InlineBits, v.Capacity())

	allocs := testing.AllocsPerRun(10, func() {
		w := New()
		w.Reserve(1000)
		for i := 0; i < 1000; i++ {
			w.Push(true)
		}
	})
	assert.Equal(t, float64(1), allocs, "the transition allocates the reserved size once")
}

func TestReserveExact(t *testing.T) {
	v := Repeat(true, InlineBits+1)
	v.ReserveExact(100)
	assert.Equal(t, 8*byteLen(InlineBits+101), v.Capacity())
	want := Repeat(true, InlineBits+1)
	requireBits(t, want.ToBits(), &v)

	v.ReserveExact(1)
	assert.Equal(t, 8*byteLen(InlineBits+101), v.Capacity(), "enough room already")

	w := New()
	w.ReserveExact(50)
	assert.True(t, w.IsInline())

	assert.Panics(t, func() { v.ReserveExact(-1) })
}

func TestWithCapacity(t *testing.T) {
	v := WithCapacity(1000)
	assert.True(t, v.IsInline())
	assert.Zero(t, v.Len())
	assert.Equal(t, InlineBits, v.Capacity())

	for i := 0; i <= InlineBits; i++ {
		v.Push(i%3 == 0)
	}
	assert.False(t, v.IsInline())
	assert.Equal(t, 8*byteLen(1000), v.Capacity())

	allocs := testing.AllocsPerRun(10, func() {
		w := WithCapacity(1000)
		for i := 0; i < 1000; i++ {
			w.Push(true)
		}
	})
	assert.Equal(t, float64(1), allocs)

	small := WithCapacity(InlineBits)
	for i := 0; i < InlineBits; i++ {
		small.Push(true)
	}
	assert.True(t, small.IsInline())

	assert.Panics(t, func() { WithCapacity(-1) })
}

func TestShrink(t *testing.T) {
	bits := testutil.NewRNG(12).Bits(InlineBits + 1)
	v := WithCapacity(1000)
	v.Append(bits...)
	require.Equal(t, 8*byteLen(1000), v.Capacity())

	v.ShrinkTo(100)
	assert.Equal(t, 8*byteLen(100), v.Capacity())
	v.ShrinkTo(5000)
	assert.Equal(t, 8*byteLen(100), v.Capacity(), "ShrinkTo never grows")

	v.ShrinkToFit()
	assert.Equal(t, 8*byteLen(InlineBits+1), v.Capacity())
	requireBits(t, bits, &v)

	for v.Len() > 3 {
		v.Pop()
	}
	v.ShrinkToFit()
	assert.False(t, v.IsInline(), "shrinking never moves bits back inline")
	assert.Equal(t, 8, v.Capacity())
	requireBits(t, bits[:3], &v)

	v.Push(true)
	requireBits(t, append(bits[:3:3], true), &v)

	assert.Panics(t, func() { v.ShrinkTo(-1) })
}

func TestShrink_Inline(t *testing.T) {
	v := WithCapacity(1000)
	v.ShrinkToFit()
	assert.True(t, v.IsInline())

	for i := 0; i <= InlineBits; i++ {
		v.Push(true)
	}
	assert.Equal(t, 16*inlineBytes, v.Capacity(), "the reservation was dropped")
}

func TestToBits(t *testing.T) {
	for _, n := range testutil.BoundaryLengths(InlineBits) {
		bits := testutil.NewRNG(int64(n)).Bits(n)
		v := FromBits(bits)
		assert.Equal(t, bits, v.ToBits(), "n=%d", n)
	}

	empty := New()
	assert.Empty(t, empty.ToBits())
}

func TestClone(t *testing.T) {
	v := Repeat(true, InlineBits+4)
	c := v.Clone()
	require.True(t, c.Equal(&v))

	require.NoError(t, c.Set(0, false))
	b, _ := v.Get(0)
	assert.True(t, b, "clone must not share storage")

	for v.Len() > 3 {
		v.Pop()
	}
	small := v.Clone()
	assert.False(t, v.IsInline())
	assert.True(t, small.IsInline())
	assert.True(t, small.Equal(&v))
}

func TestEqual(t *testing.T) {
	a := MustParse("1011")
	b := MustParse("10110")
	assert.False(t, a.Equal(&b))

	b.Pop()
	assert.True(t, a.Equal(&b), "tail bits past Len are ignored")

	heap := Repeat(false, InlineBits+1)
	for heap.Len() > 4 {
		heap.Pop()
	}
	for i, bit := range a.All() {
		require.NoError(t, heap.Set(i, bit))
	}
	assert.True(t, heap.Equal(&a), "equality ignores the storage mode")
}

func TestBytes(t *testing.T) {
	v := MustParse("1111_1111_11")
	v.Pop()
	assert.Equal(t, []byte{0xFF, 0x01}, v.Bytes())

	empty := New()
	assert.Empty(t, empty.Bytes())
}

func BenchmarkPush(b *testing.B) {
	for _, n := range []int{InlineBits, 1024} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				v := New()
				for i := 0; i < n; i++ {
					v.Push(i&1 == 0)
				}
			}
		})
	}
}

func BenchmarkGet(b *testing.B) {
	v := FromBits(testutil.NewRNG(1).Bits(4096))
	b.ReportAllocs()
	for b.Loop() {
		for i := 0; i < v.Len(); i++ {
			_, _ = v.Get(i)
		}
	}
}
