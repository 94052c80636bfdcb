package pagination

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type item struct {
	id    uuid.UUID
	count int64
}

func keyOfItem(it item) Key { return CountKey(it.count, it.id) }

// sliceSource отдаёт первые n элементов и запоминает запрошенный размер.
func sliceSource(items []item, asked *int) FetchFunc[item] {
	return func(_ context.Context, n int) ([]item, error) {
		*asked = n
		if n > len(items) {
			n = len(items)
		}
		return items[:n], nil
	}
}

func makeItems(n int) []item {
	out := make([]item, n)
	for i := range out {
		out[i] = item{id: uuid.New(), count: int64(n - i)}
	}
	return out
}

func TestFetch_LimitBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		available  int
		limit      int
		wantLen    int
		wantMore   bool
		wantCursor bool
	}{
		{name: "exactly limit rows -> no more", available: 5, limit: 5, wantLen: 5},
		{name: "limit+1 rows -> has more", available: 6, limit: 5, wantLen: 5, wantMore: true, wantCursor: true},
		{name: "fewer rows", available: 2, limit: 5, wantLen: 2},
		{name: "empty", available: 0, limit: 1, wantLen: 0},
		{name: "max limit", available: 150, limit: MaxLimit, wantLen: MaxLimit, wantMore: true, wantCursor: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			items := makeItems(tt.available)
			var asked int

			page, err := Fetch(context.Background(), tt.limit, sliceSource(items, &asked), keyOfItem)
			require.NoError(t, err)
			require.Equal(t, tt.limit+1, asked, "assembler must request limit+1 rows")
			require.Len(t, page.Items, tt.wantLen)
			require.NotNil(t, page.Items)
			require.Equal(t, tt.wantMore, page.HasMore)

			if !tt.wantCursor {
				require.Empty(t, page.NextCursor)
				return
			}

			k, err := Decode(page.NextCursor, SortCount)
			require.NoError(t, err)
			require.Equal(t, items[tt.limit-1].id, k.ID)
			require.Equal(t, items[tt.limit-1].count, k.Count)
		})
	}
}

func TestFetch_InvalidLimit(t *testing.T) {
	t.Parallel()

	called := false
	fetch := func(context.Context, int) ([]item, error) {
		called = true
		return nil, nil
	}

	for _, limit := range []int{0, -1, MaxLimit + 1} {
		_, err := Fetch(context.Background(), limit, fetch, keyOfItem)
		require.ErrorIs(t, err, ErrInvalidArgument, "limit=%d", limit)
	}
	require.False(t, called, "fetch must not run for invalid limits")
}

func TestFetch_PropagatesFetchError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := Fetch(context.Background(), 10, func(context.Context, int) ([]item, error) {
		return nil, boom
	}, keyOfItem)
	require.ErrorIs(t, err, boom)
}

func TestValidateLimit(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateLimit(MinLimit))
	require.NoError(t, ValidateLimit(MaxLimit))
	require.ErrorIs(t, ValidateLimit(101), ErrInvalidArgument)
}
