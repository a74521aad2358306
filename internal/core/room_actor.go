package core

import "context"

// enqueue appends env to the room inbox. It never blocks and fails only once the room
// has been retired.
func (r *Room) enqueue(env Envelope) bool {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return false
	}
	r.queue = append(r.queue, env)
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
	return true
}

func (r *Room) next(ctx context.Context) (Envelope, bool) {
	for {
		r.mu.Lock()
		if len(r.queue) > 0 {
			env := r.queue[0]
			r.queue[0] = Envelope{}
			r.queue = r.queue[1:]
			r.mu.Unlock()
			return env, true
		}
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return Envelope{}, false
		case <-r.wake:
		}
	}
}

// run processes the inbox in arrival order until ctx ends or the room is retired.
// retire is called whenever an event leaves the room empty: a removal took the last
// joined player, or the room holds no player record at all (e.g. it was reset with
// events still queued and none of them joined). It returns true when the room was
// deleted and the actor must stop.
func (r *Room) run(ctx context.Context, retire func(*Room) bool) {
	for {
		env, ok := r.next(ctx)
		if !ok {
			return
		}
		emptied := r.handle(env)
		if (emptied || r.players.Len() == 0) && retire(r) {
			return
		}
	}
}

// retireLocked deletes the room when nothing is queued, or resets it to a fresh empty
// room otherwise. The caller holds the manager lock, so no event can be routed to the
// room concurrently.
func (r *Room) retireLocked() (deleted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		r.closed = true
		return true
	}
	r.resetState()
	return false
}
