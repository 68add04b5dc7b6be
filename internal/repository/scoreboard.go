package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

const (
	winsKey = "scoreboard:wins"
	tiesKey = "scoreboard:ties"
)

// Standings is a tally of finished games; game state itself is never stored.
type Standings struct {
	Wins map[string]int `json:"wins"`
	Ties int            `json:"ties"`
}

type Scoreboard interface {
	RecordWin(ctx context.Context, name string) error
	RecordTie(ctx context.Context) error
	Standings(ctx context.Context) (*Standings, error)
}

type dbScoreboard struct {
	client *redis.Client
}

func NewScoreboardRepository(client *redis.Client) Scoreboard {
	return &dbScoreboard{
		client: client,
	}
}

func (that *dbScoreboard) RecordWin(ctx context.Context, name string) error {
	if err := that.client.HIncrBy(ctx, winsKey, name, 1).Err(); err != nil {
		return fmt.Errorf("failed to record win: %w", err)
	}

	return nil
}

func (that *dbScoreboard) RecordTie(ctx context.Context) error {
	if err := that.client.Incr(ctx, tiesKey).Err(); err != nil {
		return fmt.Errorf("failed to record tie: %w", err)
	}

	return nil
}

func (that *dbScoreboard) Standings(ctx context.Context) (*Standings, error) {
	raw, err := that.client.HGetAll(ctx, winsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get wins: %w", err)
	}

	wins := make(map[string]int, len(raw))
	for name, value := range raw {
		count, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid win count for %q: %w", name, err)
		}
		wins[name] = count
	}

	ties, err := that.client.Get(ctx, tiesKey).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get ties: %w", err)
	}

	return &Standings{Wins: wins, Ties: ties}, nil
}

type memScoreboard struct {
	mu   sync.RWMutex
	wins map[string]int
	ties int
}

// NewMemoryScoreboard is used when Redis is disabled; it lives as long as the process.
func NewMemoryScoreboard() Scoreboard {
	return &memScoreboard{
		wins: make(map[string]int),
	}
}

func (that *memScoreboard) RecordWin(_ context.Context, name string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.wins[name]++

	return nil
}

func (that *memScoreboard) RecordTie(_ context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.ties++

	return nil
}

func (that *memScoreboard) Standings(_ context.Context) (*Standings, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	wins := make(map[string]int, len(that.wins))
	for name, count := range that.wins {
		wins[name] = count
	}

	return &Standings{Wins: wins, Ties: that.ties}, nil
}
