package watch

import (
	"context"
	"errors"
	"github.com/egaotan/solana-amm/amm"
	"github.com/stretchr/testify/require"
	"io"
	"log"
	"strings"
	"testing"
	"time"
)

type scriptedSource struct {
	pools []amm.Pool
	err   error
}

func (s *scriptedSource) Snapshot() (amm.Pool, error) {
	if s.err != nil {
		return amm.Pool{}, s.err
	}
	pool := s.pools[0]
	if len(s.pools) > 1 {
		s.pools = s.pools[1:]
	}
	return pool, nil
}

type recordNotifier struct {
	texts []string
}

func (n *recordNotifier) Notify(_ context.Context, text string) error {
	n.texts = append(n.texts, text)
	return nil
}

func TestWatcher_Observe(t *testing.T) {
	start := amm.Pool{ReserveX: 100_000, ReserveY: 11_000_000, LPSupply: 1_048_808, FeeBps: 30}
	swapped := amm.Pool{ReserveX: 101_000, ReserveY: 10_891_413, LPSupply: 1_048_808, FeeBps: 30}
	source := &scriptedSource{pools: []amm.Pool{start, start, swapped}}
	notifier := &recordNotifier{}
	w := NewWatcher("pool", source, time.Second, log.New(io.Discard, "", 0))
	w.SetNotifier(notifier)
	var changes int
	w.OnChange(func(before, after amm.Pool) {
		changes++
		require.Equal(t, start, before)
		require.Equal(t, swapped, after)
	})

	require.False(t, w.Observe(context.Background()))
	require.False(t, w.Observe(context.Background()))
	require.True(t, w.Observe(context.Background()))
	require.Equal(t, 1, changes)
	require.Len(t, notifier.texts, 1)
	require.Contains(t, notifier.texts[0], "x: 100000 -> 101000 (+1000);")
	require.Contains(t, notifier.texts[0], "y: 11000000 -> 10891413 (-108587);")
	require.Contains(t, notifier.texts[0], "lp: 1048808 -> 1048808 (0);")
}

func TestWatcher_SnapshotError(t *testing.T) {
	source := &scriptedSource{err: errors.New("rpc down")}
	w := NewWatcher("pool", source, 0, log.New(io.Discard, "", 0))
	require.Equal(t, DefaultInterval, w.interval)
	require.False(t, w.Observe(context.Background()))
	require.Nil(t, w.last)
}

func TestWatcher_StartStop(t *testing.T) {
	source := &scriptedSource{pools: []amm.Pool{{ReserveX: 1, ReserveY: 1, LPSupply: 1}}}
	w := NewWatcher("pool", source, time.Millisecond, log.New(io.Discard, "", 0))
	w.Start(context.Background())
	w.Stop()
	require.NotNil(t, w.last)
	require.True(t, strings.HasPrefix(Describe("pool", amm.Pool{}, amm.Pool{}), "amm pool pool update:"))
}
