package dgmenu

import (
	"context"
	"time"
)

// SendEphemeral sends a message that deletes itself after timeout.
func (m *Manager) SendEphemeral(ctx context.Context, channelID uint64, timeout time.Duration, content Content) (MessageRef, error) {
	ref, err := m.client.SendMessage(ctx, channelID, content)
	if err != nil {
		return MessageRef{}, err
	}
	m.DeleteAfter(ref.Identity, timeout)
	return ref, nil
}

// DeleteAfter schedules deletion of an existing message after timeout.
// The deletion is a one-shot background task: a failure is logged, and
// stopping the Manager cancels pending deletions.
func (m *Manager) DeleteAfter(id MessageIdentity, timeout time.Duration) {
	timer := time.NewTimer(timeout)
	go func() {
		defer timer.Stop()
		select {
		case <-m.stop:
			return
		case <-timer.C:
		}
		if err := m.client.DeleteMessage(m.ctx, id); err != nil {
			m.logger.Error("failed to delete ephemeral message", "message", id, "error", err)
		}
	}()
}
