package cache

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// RedisStore garde les valeurs de session dans Redis; le cookie ne porte
// que l'identifiant signé
type RedisStore struct {
	client  *redis.Client
	Codecs  []securecookie.Codec
	Options *sessions.Options
	encoder securecookie.GobEncoder
}

func NewRedisStore(client *redis.Client, options *sessions.Options, keyPairs ...[]byte) *RedisStore {
	return &RedisStore{
		client:  client,
		Codecs:  securecookie.CodecsFromPairs(keyPairs...),
		Options: options,
	}
}

func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.Codecs...); err != nil {
		return session, err
	}
	found, err := s.load(r.Context(), session)
	if err != nil {
		return session, err
	}
	session.IsNew = !found
	return session, nil
}

// Save supprime la session quand MaxAge < 0
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	ctx := r.Context()
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.client.Del(ctx, sessionPrefix+session.ID).Err(); err != nil {
				return err
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if err := s.save(ctx, session); err != nil {
		return err
	}
	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *RedisStore) save(ctx context.Context, session *sessions.Session) error {
	data, err := s.encoder.Serialize(session.Values)
	if err != nil {
		return fmt.Errorf("encodage session: %w", err)
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	return s.client.Set(ctx, sessionPrefix+session.ID, data, ttl).Err()
}

func (s *RedisStore) load(ctx context.Context, session *sessions.Session) (bool, error) {
	data, err := s.client.Get(ctx, sessionPrefix+session.ID).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.encoder.Deserialize(data, &session.Values); err != nil {
		return false, fmt.Errorf("décodage session: %w", err)
	}
	return true, nil
}
