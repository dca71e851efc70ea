package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/payroll/common"
)

type scriptedReader struct {
	mu       sync.Mutex
	statuses []string
}

func (r *scriptedReader) TxInfoFromHash(tx string) (common.TxInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.statuses[0]
	if len(r.statuses) > 1 {
		r.statuses = r.statuses[1:]
	}
	return common.TxInfo{Status: st}, nil
}

func newTestMonitor(statuses ...string) *TxMonitor {
	return NewGenericTxMonitor(&scriptedReader{statuses: statuses}).
		WithInterval(time.Millisecond, time.Hour)
}

func TestBlockingWaitDone(t *testing.T) {
	m := newTestMonitor(common.TxStatusNotFound, common.TxStatusPending, common.TxStatusDone)
	info, err := m.BlockingWait(context.Background(), "0x01")
	require.NoError(t, err)
	assert.Equal(t, common.TxStatusDone, info.Status)
}

func TestBlockingWaitReverted(t *testing.T) {
	m := newTestMonitor(common.TxStatusError, common.TxStatusReverted)
	info, err := m.BlockingWait(context.Background(), "0x01")
	require.NoError(t, err)
	assert.Equal(t, common.TxStatusReverted, info.Status)
}

func TestBlockingWaitLost(t *testing.T) {
	m := NewGenericTxMonitor(&scriptedReader{statuses: []string{common.TxStatusNotFound}}).
		WithInterval(time.Millisecond, 5*time.Millisecond)
	info, err := m.BlockingWait(context.Background(), "0x01")
	require.NoError(t, err)
	assert.Equal(t, common.TxStatusLost, info.Status)
}

func TestBlockingWaitHonoursContext(t *testing.T) {
	m := newTestMonitor(common.TxStatusPending)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := m.BlockingWait(ctx, "0x01")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
