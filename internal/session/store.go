package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// InitialData is the entry-form payload held until the inquiry is created.
type InitialData struct {
	LotSize     float64 `json:"lot_size"`
	LotSizeUnit string  `json:"lot_size_unit"`
	Region      string  `json:"region"`
}

// Answers holds the four questionnaire answers, filled in step order.
type Answers struct {
	CurrentProperty     string `json:"current_property,omitempty"`
	PropertyGoals       string `json:"property_goals,omitempty"`
	InvestmentCapacity  string `json:"investment_capacity,omitempty"`
	PreferencesConcerns string `json:"preferences_concerns,omitempty"`
}

// State is one browser session's questionnaire progress. Concurrent requests
// for the same session are last-write-wins.
type State struct {
	Initial   *InitialData `json:"initial,omitempty"`
	Answers   Answers      `json:"answers"`
	InquiryID uint         `json:"inquiry_id,omitempty"`
}

// Store persists per-session questionnaire state.
type Store interface {
	Get(ctx context.Context, sessionID string) (*State, error)
	Save(ctx context.Context, sessionID string, state *State) error
	Clear(ctx context.Context, sessionID string) error
}

const stateKey = "session:questionnaire:%s"

// RedisStore keeps session state as JSON in Redis with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the stored state, or an empty state when none exists.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*State, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf(stateKey, sessionID)).Result()
	if err == redis.Nil {
		return &State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}

	var state State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).Warn("Discarding unreadable session state")
		return &State{}, nil
	}
	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}
	return s.client.Set(ctx, fmt.Sprintf(stateKey, sessionID), data, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, fmt.Sprintf(stateKey, sessionID)).Err()
}
