package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	idle := Status{}
	assert.Equal(t, Idle, idle.Phase)

	pending, ok := idle.Begin("b1")
	assert.True(t, ok)
	assert.Equal(t, Status{Phase: Pending, BatchID: "b1"}, pending)

	_, ok = pending.Begin("b2")
	assert.False(t, ok, "no second batch while pending")

	done, ok := pending.Succeed("0xabc")
	assert.True(t, ok)
	assert.Equal(t, Status{Phase: Succeeded, BatchID: "b1", TxHash: "0xabc"}, done)
	assert.True(t, done.Terminal())

	failed, ok := pending.Fail("insufficient funds")
	assert.True(t, ok)
	assert.Equal(t, Failed, failed.Phase)
	assert.Equal(t, "insufficient funds", failed.Message)
	assert.Equal(t, "failed: insufficient funds", failed.String())
}

func TestStatusRefusesIllegalTransitions(t *testing.T) {
	idle := Status{}
	s, ok := idle.Succeed("0x1")
	assert.False(t, ok)
	assert.Equal(t, idle, s)

	_, ok = idle.Fail("x")
	assert.False(t, ok)

	done := Status{Phase: Succeeded}
	_, ok = done.Begin("b")
	assert.False(t, ok)
	_, ok = done.Fail("x")
	assert.False(t, ok)

	_, ok = Status{Phase: Pending}.Reset()
	assert.False(t, ok)
}

func TestStatusReset(t *testing.T) {
	for _, s := range []Status{
		{Phase: Succeeded, BatchID: "b", TxHash: "0x1"},
		{Phase: Failed, BatchID: "b", Message: "boom"},
		{},
	} {
		next, ok := s.Reset()
		assert.True(t, ok)
		assert.Equal(t, Status{}, next)
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
	assert.Equal(t, "succeeded", Status{Phase: Succeeded}.String())
}
