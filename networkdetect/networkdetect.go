package networkdetect

import (
	"errors"
	"fmt"
	"github.com/go-ping/ping"
	"net"
	"net/url"
	"sort"
	"time"
)

var ErrNoPeer = errors.New("no reachable rpc node")

const (
	PingCount   = 3
	PingTimeout = 5 * time.Second
)

type Peer struct {
	Rpc    string
	Host   string
	AvgRtt time.Duration
	Loss   float64
	Err    error
}

func (p *Peer) Reachable() bool {
	return p.Err == nil && p.Loss < 100
}

// Prober measures the round trip time to a host.
type Prober func(host string) (avg time.Duration, loss float64, err error)

func PingProber(host string) (time.Duration, float64, error) {
	pinger, err := ping.NewPinger(host)
	if err != nil {
		return 0, 100, err
	}
	pinger.Count = PingCount
	pinger.Timeout = PingTimeout
	// udp ping, no raw socket needed
	pinger.SetPrivileged(false)
	err = pinger.Run() // blocks until finished
	if err != nil {
		return 0, 100, err
	}
	stats := pinger.Statistics()
	return stats.AvgRtt, stats.PacketLoss, nil
}

func Host(rpc string) (string, error) {
	u, err := url.Parse(rpc)
	if err != nil {
		return "", err
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("rpc %q has no host", rpc)
	}
	return host, nil
}

// DetectPeers probes every rpc and returns them fastest first; unreachable peers sort last.
func DetectPeers(rpcs []string, probe Prober) []*Peer {
	peers := make([]*Peer, 0, len(rpcs))
	for _, rpc := range rpcs {
		peer := &Peer{Rpc: rpc}
		peer.Host, peer.Err = Host(rpc)
		if peer.Err == nil {
			peer.AvgRtt, peer.Loss, peer.Err = probe(peer.Host)
		}
		peers = append(peers, peer)
	}
	sort.SliceStable(peers, func(i, j int) bool {
		if peers[i].Reachable() != peers[j].Reachable() {
			return peers[i].Reachable()
		}
		return peers[i].AvgRtt < peers[j].AvgRtt
	})
	return peers
}

func Fastest(rpcs []string, probe Prober) (*Peer, error) {
	peers := DetectPeers(rpcs, probe)
	if len(peers) == 0 || !peers[0].Reachable() {
		return nil, ErrNoPeer
	}
	return peers[0], nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
