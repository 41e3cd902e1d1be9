package browse

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mikey-austin/mu_browse/internal/media"
)

func intPage(from, n int, cursor string) media.Page[int] {
	items := make([]int, 0, n)
	for i := range n {
		items = append(items, from+i)
	}
	return media.Page[int]{Items: items, Continuation: cursor}
}

func TestPagerStopsAtCeiling(t *testing.T) {
	nextCalls := 0
	out, err := Pager[int]{
		First: func(context.Context) (media.Page[int], error) { return intPage(0, 80, "c1"), nil },
		Next: func(_ context.Context, cursor string) (media.Page[int], error) {
			nextCalls++
			require.Equal(t, "c1", cursor)
			return intPage(80, 80, ""), nil
		},
	}.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 150)
	require.Equal(t, 149, out[149])
	require.Equal(t, 1, nextCalls)
}

func TestPagerStopsWithoutCursor(t *testing.T) {
	nextCalls := 0
	out, err := Pager[int]{
		Limit: 1000,
		First: func(context.Context) (media.Page[int], error) { return intPage(0, 10, "a"), nil },
		Next: func(_ context.Context, cursor string) (media.Page[int], error) {
			nextCalls++
			if cursor == "a" {
				return intPage(10, 10, "b"), nil
			}
			return intPage(20, 5, ""), nil
		},
	}.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 25)
	require.Equal(t, 2, nextCalls)
}

func TestPagerDeduplicates(t *testing.T) {
	out, err := Pager[media.Item]{
		Key:   itemKey,
		First: func(context.Context) (media.Page[media.Item], error) { return songPage([]media.Song{song("a"), song("b")}, "n"), nil },
		Next: func(context.Context, string) (media.Page[media.Item], error) {
			return songPage([]media.Song{song("b"), song("c")}, ""), nil
		},
	}.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)
}

func TestPagerPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := Pager[int]{
		First: func(context.Context) (media.Page[int], error) { return intPage(0, 1, "x"), nil },
		Next: func(context.Context, string) (media.Page[int], error) {
			return media.Page[int]{}, boom
		},
	}.Collect(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestPagerHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, err := Pager[int]{
		First: func(context.Context) (media.Page[int], error) {
			cancel()
			return intPage(0, 1, "x"), nil
		},
		Next: func(context.Context, string) (media.Page[int], error) {
			t.Fatal("next called after cancellation")
			return media.Page[int]{}, nil
		},
	}.Collect(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
