package adapter

import (
	"context"
	"fmt"

	"codezetta/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisLeaderboardStore keeps user points in a Redis sorted set. A marker
// key next to the set records that Replace has loaded every user.
type RedisLeaderboardStore struct {
	client    *redis.Client
	key       string
	seededKey string
}

func NewRedisLeaderboardStore(client *redis.Client, key string) domain.LeaderboardStore {
	return &RedisLeaderboardStore{client: client, key: key, seededKey: key + ":seeded"}
}

// SetScore only updates members loaded by Replace. Before the first Replace
// it writes nothing, so a partial set never looks complete.
func (s *RedisLeaderboardStore) SetScore(ctx context.Context, userID string, points int) error {
	if err := s.client.ZAddXX(ctx, s.key, redis.Z{Score: float64(points), Member: userID}).Err(); err != nil {
		return fmt.Errorf("failed to set leaderboard score: %w", err)
	}
	return nil
}

func (s *RedisLeaderboardStore) Seeded(ctx context.Context) (bool, error) {
	n, err := s.client.Exists(ctx, s.seededKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to read leaderboard marker: %w", err)
	}
	return n == 1, nil
}

// Top returns up to limit members, highest score first.
func (s *RedisLeaderboardStore) Top(ctx context.Context, limit int) ([]domain.LeaderboardScore, error) {
	if limit <= 0 {
		return []domain.LeaderboardScore{}, nil
	}
	zs, err := s.client.ZRevRangeWithScores(ctx, s.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	scores := make([]domain.LeaderboardScore, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		scores = append(scores, domain.LeaderboardScore{UserID: member, Points: int(z.Score)})
	}
	return scores, nil
}

func (s *RedisLeaderboardStore) Size(ctx context.Context) (int64, error) {
	n, err := s.client.ZCard(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read leaderboard size: %w", err)
	}
	return n, nil
}

// Replace swaps the whole set atomically and marks it seeded.
func (s *RedisLeaderboardStore) Replace(ctx context.Context, scores []domain.LeaderboardScore) error {
	members := make([]redis.Z, 0, len(scores))
	for _, sc := range scores {
		members = append(members, redis.Z{Score: float64(sc.Points), Member: sc.UserID})
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(members) > 0 {
			pipe.ZAdd(ctx, s.key, members...)
		}
		pipe.Set(ctx, s.seededKey, "1", 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to rebuild leaderboard: %w", err)
	}
	return nil
}
