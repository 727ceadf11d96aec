package dgmenu

import "context"

// registerDefaultRoutes wires the built-in notification handling:
// Ready starts the sweeper, reactions are forwarded to the listener of the
// affected message, deletions evict the entry and notify the listener.
func (m *Manager) registerDefaultRoutes() {
	On(m.dispatcher, func(ctx context.Context, _ Ready) error {
		m.StartSweeper()
		return nil
	})
	On(m.dispatcher, func(ctx context.Context, ev ReactionAdd) error {
		return m.routeReaction(ctx, ev.Reaction, true)
	})
	On(m.dispatcher, func(ctx context.Context, ev ReactionRemove) error {
		return m.routeReaction(ctx, ev.Reaction, false)
	})
	On(m.dispatcher, func(ctx context.Context, ev MessageDelete) error {
		return m.evictDeleted(ctx, ev.Identity)
	})
	On(m.dispatcher, func(ctx context.Context, ev MessageBulkDelete) error {
		// Remove every affected entry before notifying any listener: a
		// failing OnDeleted must not leave entries for confirmed-deleted
		// messages live in the registry.
		type evicted struct {
			id MessageIdentity
			h  *Handle
		}
		var affected []evicted
		for _, msgID := range ev.MessageIDs {
			id := NewMessageIdentity(ev.ChannelID, msgID)
			if h, ok := m.registry.Remove(id); ok {
				affected = append(affected, evicted{id: id, h: h})
			}
		}
		for _, e := range affected {
			err := e.h.Do(func(l Listener) error {
				return l.OnDeleted(ctx)
			})
			if err != nil {
				m.logger.Error("listener deletion callback failed", "message", e.id, "error", err)
			}
		}
		return nil
	})
}

func (m *Manager) routeReaction(ctx context.Context, r Reaction, added bool) error {
	h, ok := m.registry.Get(r.Identity)
	if !ok {
		return nil
	}
	return h.Do(func(l Listener) error {
		if added {
			return l.OnReactionAdd(ctx, r)
		}
		return l.OnReactionRemove(ctx, r)
	})
}

// evictDeleted removes the entry for a deleted message and notifies its
// listener. The registry lock is released before OnDeleted runs, so the
// listener is free to touch the registry itself.
func (m *Manager) evictDeleted(ctx context.Context, id MessageIdentity) error {
	h, ok := m.registry.Remove(id)
	if !ok {
		return nil
	}
	return h.Do(func(l Listener) error {
		return l.OnDeleted(ctx)
	})
}
