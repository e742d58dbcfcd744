package watch

import (
	"context"
	"fmt"
	"github.com/egaotan/solana-amm/amm"
	"github.com/shopspring/decimal"
	"log"
	"math/big"
	"sync"
	"time"
)

const DefaultInterval = 10 * time.Second

type Source interface {
	Snapshot() (amm.Pool, error)
}

type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Watcher polls a pool and reports whenever its reserves or lp supply move.
type Watcher struct {
	name     string
	source   Source
	interval time.Duration
	logger   *log.Logger
	notifier Notifier
	onChange func(before, after amm.Pool)
	last     *amm.Pool
	wg       sync.WaitGroup
	cancel   context.CancelFunc
}

func NewWatcher(name string, source Source, interval time.Duration, logger *log.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		name:     name,
		source:   source,
		interval: interval,
		logger:   logger,
	}
}

func (w *Watcher) SetNotifier(notifier Notifier) {
	w.notifier = notifier
}

// OnChange registers fn to run on every observed change, after the first snapshot.
func (w *Watcher) OnChange(fn func(before, after amm.Pool)) {
	w.onChange = fn
}

func (w *Watcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.listen(ctx)
}

func (w *Watcher) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	w.wg.Wait()
}

// Wait blocks until the watcher exits, which happens once its context is done.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) listen(ctx context.Context) {
	defer w.wg.Done()
	w.Observe(ctx)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.Observe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Observe takes one snapshot and reports whether it differs from the previous one. The
// first snapshot only sets the baseline.
func (w *Watcher) Observe(ctx context.Context) bool {
	snapshot, err := w.source.Snapshot()
	if err != nil {
		w.logger.Printf("%s snapshot err: %s", w.name, err.Error())
		return false
	}
	w.logger.Printf("%s x: %d, y: %d, lp: %d", w.name, snapshot.ReserveX, snapshot.ReserveY, snapshot.LPSupply)
	last := w.last
	w.last = &snapshot
	if last == nil || sameState(*last, snapshot) {
		return false
	}
	if w.onChange != nil {
		w.onChange(*last, snapshot)
	}
	if w.notifier != nil {
		if err := w.notifier.Notify(ctx, Describe(w.name, *last, snapshot)); err != nil {
			w.logger.Printf("notify err: %s", err.Error())
		}
	}
	return true
}

func sameState(a, b amm.Pool) bool {
	return a.ReserveX == b.ReserveX && a.ReserveY == b.ReserveY && a.LPSupply == b.LPSupply
}

// Describe renders the move from before to after with signed differences, in raw units.
func Describe(name string, before, after amm.Pool) string {
	text := fmt.Sprintf("amm pool %s update:\n", name)
	text += fmt.Sprintf("x: %d -> %d (%s);\n", before.ReserveX, after.ReserveX, diff(before.ReserveX, after.ReserveX))
	text += fmt.Sprintf("y: %d -> %d (%s);\n", before.ReserveY, after.ReserveY, diff(before.ReserveY, after.ReserveY))
	text += fmt.Sprintf("lp: %d -> %d (%s);\n", before.LPSupply, after.LPSupply, diff(before.LPSupply, after.LPSupply))
	if ratio, err := after.Ratio(); err == nil {
		text += fmt.Sprintf("price: %s;\n", ratio.StringFixed(6))
	}
	text += fmt.Sprintf("time: %s;", time.Now().Format("2006-01-02 15:04:05"))
	return text
}

func diff(before, after uint64) string {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(after), 0).Sub(decimal.NewFromBigInt(new(big.Int).SetUint64(before), 0))
	if d.IsPositive() {
		return "+" + d.String()
	}
	return d.String()
}
