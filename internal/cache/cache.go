// Package cache keeps a short-lived redis copy of card records keyed by
// register number, in front of the Postgres lookup on the login path.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"idscan/internal/models"
)

var rdb *redis.Client

const cardTTL = 10 * time.Minute

// Init connects to redis. An empty URL disables the cache; every lookup
// then falls through to the database.
func Init(redisURL string) {
	if redisURL == "" {
		log.Info().Msg("redis not configured, card lookup cache disabled")
		return
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Error().Err(err).Msg("invalid REDIS_URL, card lookup cache disabled")
		return
	}
	rdb = redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Error().Err(err).Msg("redis unreachable, card lookup cache disabled")
		rdb = nil
		return
	}
	log.Info().Msg("connected to redis")
}

func cardKey(registerNumber string) string { return "card:reg:" + registerNumber }

// GetCard returns the cached record for a register number, if any.
func GetCard(ctx context.Context, registerNumber string) (*models.CardData, bool) {
	if rdb == nil || registerNumber == "" {
		return nil, false
	}
	raw, err := rdb.Get(ctx, cardKey(registerNumber)).Bytes()
	if err != nil {
		return nil, false
	}
	var card models.CardData
	if err := json.Unmarshal(raw, &card); err != nil {
		return nil, false
	}
	return &card, true
}

// SetCard caches a record under its register number. Best effort.
func SetCard(ctx context.Context, card *models.CardData) {
	if rdb == nil || card == nil || card.RegisterNumber == "" {
		return
	}
	raw, err := json.Marshal(card)
	if err != nil {
		return
	}
	if err := rdb.Set(ctx, cardKey(card.RegisterNumber), raw, cardTTL).Err(); err != nil {
		log.Debug().Err(err).Msg("failed to cache card record")
	}
}

// InvalidateCard drops the cached record after a write.
func InvalidateCard(ctx context.Context, registerNumber string) {
	if rdb == nil || registerNumber == "" {
		return
	}
	_ = rdb.Del(ctx, cardKey(registerNumber)).Err()
}
