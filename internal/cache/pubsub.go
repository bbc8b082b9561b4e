package cache

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Notifier diffuse les résolutions d'actions via Redis pub/sub, pour que
// toutes les instances du storefront les voient
type Notifier struct {
	client *redis.Client
}

func NewNotifier(client *redis.Client) *Notifier {
	return &Notifier{client: client}
}

func (n *Notifier) Publish(ctx context.Context, channel string, payload []byte) error {
	return n.client.Publish(ctx, channel, payload).Err()
}

// Subscribe renvoie les messages du canal jusqu'à l'appel de la fonction d'arrêt
func (n *Notifier) Subscribe(ctx context.Context, channel string) (<-chan []byte, func()) {
	pubsub := n.client.Subscribe(ctx, channel)
	// attendre la confirmation pour ne rien perdre entre l'abonnement et le premier Publish
	if _, err := pubsub.Receive(ctx); err != nil {
		log.Printf("⚠️ Abonnement %s: %v", channel, err)
	}
	out := make(chan []byte, 16)
	done := make(chan struct{})

	go func() {
		defer close(out)
		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				default:
					log.Printf("⚠️ Abonné lent sur %s, message ignoré", channel)
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return out, func() {
		once.Do(func() {
			close(done)
			pubsub.Close()
		})
	}
}
