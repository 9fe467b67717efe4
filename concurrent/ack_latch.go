package concurrent

import "context"

// AckLatch is a one-shot rendezvous: one side calls Ack, the other blocks
// in Wait until that happens. It is a Slot[bool] specialised down to the
// two operations a handshake actually needs.
type AckLatch struct {
	slot *Slot[bool]
}

// NewAckLatch returns a fresh, un-acked latch.
func NewAckLatch() *AckLatch {
	return &AckLatch{slot: NewSlot[bool]()}
}

// Ack signals the latch.
func (a *AckLatch) Ack() {
	a.slot.Set(true)
}

// Wait blocks until Ack is called, ctx is done, or the latch is terminated.
func (a *AckLatch) Wait(ctx context.Context) error {
	_, err := a.slot.WaitGet(ctx)
	return err
}

// Terminate propagates to the underlying slot, causing Wait to fail with
// ErrTerminated.
func (a *AckLatch) Terminate(v bool) {
	a.slot.Terminate(v)
}
