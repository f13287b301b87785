package local

import "sync"

// changeFeed fans out change signals per owner. Signals are coalesced: a subscriber
// that has not drained its channel yet receives a single pending signal.
type changeFeed struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func newChangeFeed() *changeFeed {
	return &changeFeed{subs: make(map[string]map[chan struct{}]struct{})}
}

func (f *changeFeed) subscribe(ownerUserID string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	f.mu.Lock()
	if f.subs[ownerUserID] == nil {
		f.subs[ownerUserID] = make(map[chan struct{}]struct{})
	}
	f.subs[ownerUserID][ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()

			delete(f.subs[ownerUserID], ch)
			if len(f.subs[ownerUserID]) == 0 {
				delete(f.subs, ownerUserID)
			}
			close(ch)
		})
	}

	return ch, cancel
}

func (f *changeFeed) notify(ownerUserIDs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, owner := range ownerUserIDs {
		for ch := range f.subs[owner] {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}
}
