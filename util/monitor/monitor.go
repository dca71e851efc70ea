package monitor

import (
	"context"
	"time"

	"github.com/tranvictor/payroll/common"
)

const (
	DefaultInterval  = 5 * time.Second
	DefaultLostAfter = 3 * time.Minute
)

// TxInfoReader is implemented by reader.EthReader.
type TxInfoReader interface {
	TxInfoFromHash(tx string) (common.TxInfo, error)
}

type TxMonitor struct {
	reader    TxInfoReader
	interval  time.Duration
	lostAfter time.Duration
}

func NewGenericTxMonitor(r TxInfoReader) *TxMonitor {
	return &TxMonitor{
		reader:    r,
		interval:  DefaultInterval,
		lostAfter: DefaultLostAfter,
	}
}

// WithInterval changes how often the monitor polls and how long a tx that
// was never seen by any node is waited for before it is reported lost.
func (tm *TxMonitor) WithInterval(interval, lostAfter time.Duration) *TxMonitor {
	tm.interval = interval
	tm.lostAfter = lostAfter
	return tm
}

func (tm *TxMonitor) periodicCheck(ctx context.Context, tx string, info chan<- common.TxInfo) {
	defer close(info)
	ticker := time.NewTicker(tm.interval)
	defer ticker.Stop()
	startTime := time.Now()
	isOnNode := false
	for {
		var t time.Time
		select {
		case <-ctx.Done():
			return
		case t = <-ticker.C:
		}
		txinfo, _ := tm.reader.TxInfoFromHash(tx)
		switch txinfo.Status {
		case common.TxStatusError:
			continue
		case common.TxStatusNotFound:
			if t.Sub(startTime) > tm.lostAfter && !isOnNode {
				info <- common.TxInfo{Status: common.TxStatusLost, Tx: txinfo.Tx}
				return
			}
			continue
		case common.TxStatusPending:
			isOnNode = true
			continue
		case common.TxStatusReverted, common.TxStatusDone:
			info <- txinfo
			return
		}
	}
}

// MakeWaitChannel returns a channel that receives the final state of tx. The
// channel is closed without a value when ctx ends first.
func (tm *TxMonitor) MakeWaitChannel(ctx context.Context, tx string) <-chan common.TxInfo {
	result := make(chan common.TxInfo, 1)
	go tm.periodicCheck(ctx, tx, result)
	return result
}

// BlockingWait waits until tx is mined, reverted or lost.
func (tm *TxMonitor) BlockingWait(ctx context.Context, tx string) (common.TxInfo, error) {
	info, ok := <-tm.MakeWaitChannel(ctx, tx)
	if !ok {
		return common.TxInfo{Status: common.TxStatusPending}, ctx.Err()
	}
	return info, nil
}
