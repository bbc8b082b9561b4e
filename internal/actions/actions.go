// Package actions suit les actions utilisateur en vol : chacune est "pending"
// jusqu'à la réponse du serveur, puis "confirmed" ou "failed". Chaque action
// porte un contexte annulable, libéré quand la vue qui l'a lancée disparaît.
package actions

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type State string

const (
	StatePending   State = "pending"
	StateConfirmed State = "confirmed"
	StateFailed    State = "failed"
	StateCanceled  State = "canceled"
)

const (
	KindAddToCart = "cart.add"
)

type Action struct {
	ID         string     `json:"id"`
	Owner      string     `json:"-"`
	Kind       string     `json:"kind"`
	Target     int64      `json:"target"`
	State      State      `json:"state"`
	Message    string     `json:"message,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
}

// Event est ce qui part vers le navigateur (websocket)
type Event struct {
	Type   string  `json:"type"`
	Action *Action `json:"action,omitempty"`
	Count  *int    `json:"count,omitempty"`
}

const (
	EventAction = "action"
	EventCart   = "cart"
)

// Notifier transporte les événements d'un propriétaire (Redis ou en mémoire)
type Notifier interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, func())
}

type entry struct {
	Action
	cancel context.CancelFunc
}

type Registry struct {
	mu       sync.Mutex
	actions  map[string]*entry
	notifier Notifier
	now      func() time.Time
}

// NewRegistry utilise un notifier en mémoire si n est nil
func NewRegistry(n Notifier) *Registry {
	if n == nil {
		n = NewLocalNotifier()
	}
	return &Registry{
		actions:  make(map[string]*entry),
		notifier: n,
		now:      time.Now,
	}
}

func Channel(owner string) string {
	return "actions:" + owner
}

// Begin enregistre une action pending. Le contexte renvoyé dérive de parent
// et est annulé par Release ou ReleaseOwner.
func (r *Registry) Begin(parent context.Context, owner, kind string, target int64) (Action, context.Context) {
	ctx, cancel := context.WithCancel(parent)
	a := Action{
		ID:        uuid.NewString(),
		Owner:     owner,
		Kind:      kind,
		Target:    target,
		State:     StatePending,
		StartedAt: r.now(),
	}
	r.mu.Lock()
	r.actions[a.ID] = &entry{Action: a, cancel: cancel}
	r.mu.Unlock()

	r.publish(a)
	return a, ctx
}

// Confirm résout une action pending; sans effet si elle a été libérée
func (r *Registry) Confirm(id, message string) (Action, bool) {
	return r.resolve(id, StateConfirmed, message)
}

func (r *Registry) Fail(id, message string) (Action, bool) {
	return r.resolve(id, StateFailed, message)
}

func (r *Registry) resolve(id string, state State, message string) (Action, bool) {
	r.mu.Lock()
	e, ok := r.actions[id]
	if !ok || e.State != StatePending {
		r.mu.Unlock()
		return Action{}, false
	}
	now := r.now()
	e.State = state
	e.Message = message
	e.ResolvedAt = &now
	a := e.Action
	r.mu.Unlock()

	r.publish(a)
	return a, true
}

func (r *Registry) Get(id string) (Action, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.actions[id]
	if !ok {
		return Action{}, false
	}
	return e.Action, true
}

// List renvoie les actions d'un propriétaire, les plus anciennes d'abord
func (r *Registry) List(owner string) []Action {
	r.mu.Lock()
	out := []Action{}
	for _, e := range r.actions {
		if e.Owner == owner {
			out = append(out, e.Action)
		}
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out
}

// Release annule l'appel en cours s'il y en a un et oublie l'action
func (r *Registry) Release(id string) bool {
	r.mu.Lock()
	e, ok := r.actions[id]
	if ok {
		delete(r.actions, id)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}
	r.cancel(e)
	return true
}

// ReleaseOwner libère toutes les actions d'un propriétaire (fin de vue, logout)
func (r *Registry) ReleaseOwner(owner string) int {
	r.mu.Lock()
	var released []*entry
	for id, e := range r.actions {
		if e.Owner == owner {
			released = append(released, e)
			delete(r.actions, id)
		}
	}
	r.mu.Unlock()
	for _, e := range released {
		r.cancel(e)
	}
	return len(released)
}

func (r *Registry) cancel(e *entry) {
	e.cancel()
	if e.State == StatePending {
		now := r.now()
		e.State = StateCanceled
		e.ResolvedAt = &now
		r.publish(e.Action)
	}
}

// Prune oublie les actions résolues depuis plus de maxAge
func (r *Registry) Prune(maxAge time.Duration) int {
	limit := r.now().Add(-maxAge)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.actions {
		if e.ResolvedAt != nil && e.ResolvedAt.Before(limit) {
			e.cancel()
			delete(r.actions, id)
			n++
		}
	}
	return n
}

// PublishCartCount pousse le nombre d'articles confirmé par le serveur
func (r *Registry) PublishCartCount(owner string, count int) {
	r.send(owner, Event{Type: EventCart, Count: &count})
}

// Subscribe décode les événements d'un propriétaire
func (r *Registry) Subscribe(ctx context.Context, owner string) (<-chan Event, func()) {
	raw, stop := r.notifier.Subscribe(ctx, Channel(owner))
	out := make(chan Event, 16)
	go func() {
		defer close(out)
		for payload := range raw {
			var ev Event
			if err := json.Unmarshal(payload, &ev); err != nil {
				log.Printf("⚠️ Événement illisible sur %s: %v", Channel(owner), err)
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, stop
}

func (r *Registry) publish(a Action) {
	r.send(a.Owner, Event{Type: EventAction, Action: &a})
}

func (r *Registry) send(owner string, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("❌ Encodage événement: %v", err)
		return
	}
	if err := r.notifier.Publish(context.Background(), Channel(owner), payload); err != nil {
		log.Printf("⚠️ Publication sur %s échouée: %v", Channel(owner), err)
	}
}
