package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestOrder_SQL(t *testing.T) {
	t.Parallel()

	o := Order{Sort: "v.updated_at", ID: "v.id"}
	require.Equal(t, "ORDER BY v.updated_at DESC, v.id DESC", o.SQL())
}

func TestBuilder_FirstPage_NoSeek(t *testing.T) {
	t.Parallel()

	var b Builder
	b.Where("v.visibility = " + b.Arg("public"))
	b.Seek(Order{Sort: "v.updated_at", ID: "v.id"}, nil)
	limit := b.Limit(21)

	require.Equal(t, "WHERE v.visibility = $1", b.Clause())
	require.Equal(t, "LIMIT $2", limit)
	require.Equal(t, []any{"public", 21}, b.Args())
}

func TestBuilder_Seek(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	key := CountKey(50, id)

	var b Builder
	b.Where("v.visibility = " + b.Arg("public"))
	b.Seek(Order{Sort: "view_count", ID: "v.id"}, &key)

	require.Equal(t,
		"WHERE v.visibility = $1 AND (view_count < $2 OR (view_count = $2 AND v.id < $3))",
		b.Clause(),
	)
	require.Equal(t, []any{"public", int64(50), id}, b.Args())
}

func TestBuilder_SeekTimeValue(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 1, 2, 3, 4, 5, 6, time.UTC)
	key := TimeKey(ts, uuid.Nil)

	var b Builder
	b.Seek(Order{Sort: "c.created_at", ID: "c.id"}, &key)

	require.Len(t, b.Args(), 2)
	require.Equal(t, ts, b.Args()[0])
}

func TestBuilder_Empty(t *testing.T) {
	t.Parallel()

	var b Builder
	b.Where("   ")
	require.Empty(t, b.Clause())
	require.Empty(t, b.Args())
}
