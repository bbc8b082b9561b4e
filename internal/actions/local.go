package actions

import (
	"context"
	"sync"
)

// LocalNotifier diffuse en mémoire, pour une seule instance
type LocalNotifier struct {
	mu   sync.Mutex
	subs map[string]map[chan []byte]struct{}
}

func NewLocalNotifier() *LocalNotifier {
	return &LocalNotifier{subs: make(map[string]map[chan []byte]struct{})}
}

// Publish ne bloque pas : un abonné dont le tampon est plein perd le message
func (n *LocalNotifier) Publish(_ context.Context, channel string, payload []byte) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs[channel] {
		select {
		case ch <- payload:
		default:
		}
	}
	return nil
}

func (n *LocalNotifier) Subscribe(_ context.Context, channel string) (<-chan []byte, func()) {
	ch := make(chan []byte, 16)
	n.mu.Lock()
	if n.subs[channel] == nil {
		n.subs[channel] = make(map[chan []byte]struct{})
	}
	n.subs[channel][ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs[channel], ch)
			if len(n.subs[channel]) == 0 {
				delete(n.subs, channel)
			}
			n.mu.Unlock()
			close(ch)
		})
	}
}
