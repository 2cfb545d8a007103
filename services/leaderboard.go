package services

import (
	"context"
	"fmt"
	"strings"

	appContext "github.com/alphabatem/common/context"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/econosfera/econ_api/dto"
)

// LeaderboardService keeps the XP ranking in a redis sorted set, with the
// accounts table as the cold-start fallback. Members are "userID|username"
// so rendering needs no extra lookup.
type LeaderboardService struct {
	appContext.DefaultService

	redisSvc *RedisService
	sqlSvc   *PostgresService
}

const LEADERBOARD_SVC = "leaderboard_svc"

const leaderboardKey = "leaderboard:xp"

func (svc LeaderboardService) Id() string {
	return LEADERBOARD_SVC
}

func (svc *LeaderboardService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *LeaderboardService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// RecordXP sets the member's score to its current cumulative XP. Failures
// only degrade the cached ranking, so they are logged and swallowed.
func (svc *LeaderboardService) RecordXP(userID, username string, totalXP int) {
	client := svc.redisSvc.GetClient()
	if client == nil {
		return
	}

	member := fmt.Sprintf("%s|%s", userID, username)
	if err := client.ZAdd(context.Background(), leaderboardKey, redis.Z{
		Score:  float64(totalXP),
		Member: member,
	}).Err(); err != nil {
		log.WithError(err).Warn("Failed to update leaderboard")
	}
}

func (svc *LeaderboardService) Top(limit int) (*dto.LeaderboardResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	entries, err := svc.topFromRedis(limit)
	if err != nil || len(entries) == 0 {
		return svc.topFromDB(limit)
	}

	return &dto.LeaderboardResponse{Entries: entries, Total: len(entries)}, nil
}

func (svc *LeaderboardService) topFromRedis(limit int) ([]dto.LeaderboardEntry, error) {
	client := svc.redisSvc.GetClient()
	if client == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	results, err := client.ZRevRangeWithScores(context.Background(), leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(results))
	for i, z := range results {
		member, _ := z.Member.(string)
		userID, username, ok := strings.Cut(member, "|")
		if !ok {
			continue
		}
		entries = append(entries, dto.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   userID,
			Username: username,
			XP:       int(z.Score),
		})
	}
	return entries, nil
}

func (svc *LeaderboardService) topFromDB(limit int) (*dto.LeaderboardResponse, error) {
	accounts, err := svc.sqlSvc.GetTopAccountsByXP(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, len(accounts))
	for i, a := range accounts {
		entries[i] = dto.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   a.ID,
			Username: a.Username,
			XP:       a.XP,
		}
	}

	return &dto.LeaderboardResponse{Entries: entries, Total: len(entries)}, nil
}
