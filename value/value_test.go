package value

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	require.Equal(t, KindNull, v.Kind())
	require.True(t, v.IsNull())
}

func TestConstructorsAndAccessors(t *testing.T) {
	t.Run("Bool", func(t *testing.T) {
		require.True(t, Bool(true).BoolVal())
		require.False(t, Bool(false).BoolVal())
		require.Equal(t, KindBool, Bool(true).Kind())
	})

	t.Run("Int", func(t *testing.T) {
		v := Int(math.MinInt64)
		require.Equal(t, KindInt, v.Kind())
		require.Equal(t, int64(math.MinInt64), v.IntVal())
	})

	t.Run("BigInt", func(t *testing.T) {
		bi := new(big.Int).Lsh(big.NewInt(1), 80)
		v := BigInt(bi)
		require.Equal(t, KindBigInt, v.Kind())
		require.Same(t, bi, v.BigIntVal())
	})

	t.Run("Float", func(t *testing.T) {
		v := Float(-0.5)
		require.Equal(t, KindFloat, v.Kind())
		require.Equal(t, -0.5, v.FloatVal())

		require.True(t, math.IsNaN(Float(math.NaN()).FloatVal()))
		require.True(t, math.IsInf(Float(math.Inf(1)).FloatVal(), 1))
	})

	t.Run("NegativeZeroPreserved", func(t *testing.T) {
		v := Float(math.Copysign(0, -1))
		require.Equal(t, math.Float64bits(math.Copysign(0, -1)), math.Float64bits(v.FloatVal()))
	})

	t.Run("String", func(t *testing.T) {
		require.Equal(t, "héllo", String("héllo").StringVal())
	})

	t.Run("Timestamp", func(t *testing.T) {
		now := time.Now()
		require.True(t, Time(now).TimestampVal().HasOffset)
		require.False(t, NaiveTime(now).TimestampVal().HasOffset)
		require.True(t, Time(now).TimestampVal().Time.Equal(now))
	})

	t.Run("UniqueID", func(t *testing.T) {
		id := uuid.New()
		require.Equal(t, id, UniqueID(id).UniqueIDVal())
	})
}

func TestAccessorsOnWrongKind(t *testing.T) {
	v := String("x")
	require.False(t, v.BoolVal())
	require.Zero(t, v.IntVal())
	require.Zero(t, v.FloatVal())
	require.Nil(t, v.BigIntVal())
	require.Nil(t, v.ArrayVal())
	require.Nil(t, v.ObjectVal())
	require.Zero(t, v.Len())
}

func TestGet(t *testing.T) {
	obj := Object(
		Member{Key: "a", Value: Int(1)},
		Member{Key: "b", Value: Int(2)},
	)

	a, ok := obj.Get("a")
	require.True(t, ok)
	require.Equal(t, int64(1), a.IntVal())

	_, ok = obj.Get("missing")
	require.False(t, ok)

	_, ok = Int(1).Get("a")
	require.False(t, ok)
}

func TestLen(t *testing.T) {
	require.Equal(t, 3, Array(Null(), Null(), Null()).Len())
	require.Equal(t, 1, Object(Member{Key: "k", Value: Null()}).Len())
	require.Zero(t, Array().Len())
	require.Zero(t, String("abc").Len())
}

func TestEqual(t *testing.T) {
	t.Run("Scalars", func(t *testing.T) {
		require.True(t, Null().Equal(Null()))
		require.True(t, Int(5).Equal(Int(5)))
		require.False(t, Int(5).Equal(Int(6)))
		require.False(t, Int(5).Equal(Float(5)))
		require.True(t, String("a").Equal(String("a")))
	})

	t.Run("BigIntByValue", func(t *testing.T) {
		a := BigInt(big.NewInt(100))
		b := BigInt(big.NewInt(100))
		require.True(t, a.Equal(b))
	})

	t.Run("NaNNeverEqual", func(t *testing.T) {
		nan := Float(math.NaN())
		require.False(t, nan.Equal(nan))
	})

	t.Run("Containers", func(t *testing.T) {
		a := Array(Int(1), String("x"))
		require.True(t, a.Equal(Array(Int(1), String("x"))))
		require.False(t, a.Equal(Array(Int(1))))
		require.False(t, a.Equal(Array(String("x"), Int(1))))
	})

	t.Run("ObjectOrderSignificant", func(t *testing.T) {
		ab := Object(Member{Key: "a", Value: Int(1)}, Member{Key: "b", Value: Int(2)})
		ba := Object(Member{Key: "b", Value: Int(2)}, Member{Key: "a", Value: Int(1)})
		require.False(t, ab.Equal(ba))
		require.True(t, ab.Equal(Object(Member{Key: "a", Value: Int(1)}, Member{Key: "b", Value: Int(2)})))
	})

	t.Run("TimestampOffsetSignificant", func(t *testing.T) {
		now := time.Now()
		require.False(t, Time(now).Equal(NaiveTime(now)))
		require.True(t, Time(now).Equal(Time(now)))
	})
}

func TestKindString(t *testing.T) {
	require.Equal(t, "Null", KindNull.String())
	require.Equal(t, "UniqueID", KindUniqueID.String())
	require.Equal(t, "Unknown", Kind(200).String())
}
