package networkdetect

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Monitor keeps probing one rpc host and notifies when the moving average latency stays
// above the threshold.
type Monitor struct {
	host      string
	probe     Prober
	interval  time.Duration
	threshold time.Duration
	window    int
	quiet     time.Duration
	avg       []time.Duration
	logger    *log.Logger
	notifier  Notifier
	wg        sync.WaitGroup
	cancel    context.CancelFunc
}

func NewMonitor(rpc string, probe Prober, threshold time.Duration, notifier Notifier, logger *log.Logger) (*Monitor, error) {
	host, err := Host(rpc)
	if err != nil {
		return nil, err
	}
	return &Monitor{
		host:      host,
		probe:     probe,
		interval:  10 * time.Second,
		threshold: threshold,
		window:    30,
		quiet:     5 * time.Minute,
		avg:       make([]time.Duration, 0, 30),
		logger:    logger,
		notifier:  notifier,
	}, nil
}

func (m *Monitor) Start(ctx context.Context) {
	if isLoopback(m.host) {
		m.logger.Printf("skip monitoring local rpc %s", m.host)
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.wg.Add(1)
	go m.run(ctx)
}

func (m *Monitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.wg.Wait()
}

func (m *Monitor) run(ctx context.Context) {
	defer m.wg.Done()
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	var notifyTime time.Time
	for {
		select {
		case <-ticker.C:
			if m.observe() && time.Since(notifyTime) > m.quiet {
				m.notify(ctx, m.avg[len(m.avg)-1])
				notifyTime = time.Now()
			}
		case <-ctx.Done():
			return
		}
	}
}

// observe records one probe and reports whether the whole window is above threshold.
func (m *Monitor) observe() bool {
	rtt, loss, err := m.probe(m.host)
	if err != nil || loss >= 100 {
		m.logger.Printf("ping %s failed: loss %.0f%%, err: %v", m.host, loss, err)
		rtt = m.threshold * 10
	}
	m.avg = append(m.avg, rtt)
	if len(m.avg) > m.window {
		m.avg = m.avg[len(m.avg)-m.window:]
	}
	m.logger.Printf("ping ttl: %d ms", rtt.Milliseconds())
	for _, avg := range m.avg {
		if avg < m.threshold {
			return false
		}
	}
	return true
}

func (m *Monitor) notify(ctx context.Context, rtt time.Duration) {
	m.logger.Printf("network latency is too large")
	if m.notifier == nil {
		return
	}
	text := fmt.Sprintf("amm rpc %s latency: %d ms;\ntime: %s;", m.host, rtt.Milliseconds(), time.Now().Format("2006-01-02 15:04:05"))
	if err := m.notifier.Notify(ctx, text); err != nil {
		m.logger.Printf("notify err: %s", err.Error())
	}
}
