package services

import (
  "context"
  "encoding/json"
  "fmt"
  "math"
  "time"

  "github.com/google/uuid"
  "github.com/redis/go-redis/v9"

  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/repos"
  "github.com/yungbote/studyos-backend/internal/types"
)

const (
  // DefaultDailyGoalTarget is the number of completions that counts as a
  // full day.
  DefaultDailyGoalTarget = 5

  statsCacheTTL = 30 * time.Second
)

type UserStats struct {
  Streak           int `json:"streak"`
  LessonsCompleted int `json:"lessonsCompleted"`
  DailyGoal        int `json:"dailyGoal"`
  CompletedToday   int `json:"completedToday"`
  DailyGoalTarget  int `json:"dailyGoalTarget"`
}

// ComputeStats derives streak and goal figures from a user's completion
// records. Each record contributes its completion date once; multiple
// completions on the same calendar day extend the streak by a single day.
// The streak is the run of consecutive days ending today, or ending
// yesterday when nothing has been completed yet today.
func ComputeStats(records []*types.Progress, now time.Time, goalTarget int) UserStats {
  if goalTarget <= 0 {
    goalTarget = DefaultDailyGoalTarget
  }

  days := make(map[string]int)
  total := 0
  for _, rec := range records {
    if rec == nil || rec.CompletedAt == nil {
      continue
    }
    total++
    days[rec.CompletedAt.Format("2006-01-02")]++
  }

  today := now.Format("2006-01-02")
  yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
  completedToday := days[today]

  streak := 0
  cursor := now
  if _, ok := days[today]; !ok {
    if _, ok := days[yesterday]; ok {
      cursor = now.AddDate(0, 0, -1)
    } else {
      cursor = time.Time{}
    }
  }
  for !cursor.IsZero() {
    if _, ok := days[cursor.Format("2006-01-02")]; !ok {
      break
    }
    streak++
    cursor = cursor.AddDate(0, 0, -1)
  }

  percent := int(math.Round(float64(completedToday) / float64(goalTarget) * 100))
  if percent > 100 {
    percent = 100
  }

  return UserStats{
    Streak:           streak,
    LessonsCompleted: total,
    DailyGoal:        percent,
    CompletedToday:   completedToday,
    DailyGoalTarget:  goalTarget,
  }
}

type AnalyticsService interface {
  GetUserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error)
  // InvalidateUser drops any cached stats so the next read recomputes.
  InvalidateUser(ctx context.Context, userID uuid.UUID)
}

type analyticsService struct {
  log          *logger.Logger
  progressRepo repos.ProgressRepo
  settingsRepo repos.UserSettingsRepo
  cache        *redis.Client
}

// NewAnalyticsService builds the stats reader. A nil cache client disables
// caching; every read then hits the store directly.
func NewAnalyticsService(log *logger.Logger, progressRepo repos.ProgressRepo, settingsRepo repos.UserSettingsRepo, cache *redis.Client) AnalyticsService {
  serviceLog := log.With("service", "AnalyticsService")
  return &analyticsService{log: serviceLog, progressRepo: progressRepo, settingsRepo: settingsRepo, cache: cache}
}

func statsCacheKey(userID uuid.UUID) string {
  return fmt.Sprintf("stats:%s", userID)
}

func (s *analyticsService) GetUserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }

  if s.cache != nil {
    raw, err := s.cache.Get(ctx, statsCacheKey(userID)).Bytes()
    if err == nil {
      var cached UserStats
      if err := json.Unmarshal(raw, &cached); err == nil {
        return &cached, nil
      }
    } else if err != redis.Nil {
      s.log.Warn("stats cache read failed", "error", err)
    }
  }

  records, err := s.progressRepo.GetCompletedByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load completion records: %w", err)
  }
  stats := ComputeStats(records, time.Now(), DefaultDailyGoalTarget)

  // The configured goal is display-only; percent keeps the default target.
  if s.settingsRepo != nil {
    if settings, err := s.settingsRepo.GetByUserID(ctx, nil, userID); err == nil && settings != nil {
      stats.DailyGoalTarget = settings.DailyGoal
    }
  }

  if s.cache != nil {
    if raw, err := json.Marshal(stats); err == nil {
      if err := s.cache.Set(ctx, statsCacheKey(userID), raw, statsCacheTTL).Err(); err != nil {
        s.log.Warn("stats cache write failed", "error", err)
      }
    }
  }

  return &stats, nil
}

func (s *analyticsService) InvalidateUser(ctx context.Context, userID uuid.UUID) {
  if s.cache == nil || userID == uuid.Nil {
    return
  }
  if err := s.cache.Del(ctx, statsCacheKey(userID)).Err(); err != nil {
    s.log.Warn("stats cache invalidation failed", "error", err)
  }
}
