package services

import (
  "context"
  "crypto/rand"
  "crypto/sha256"
  "encoding/hex"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/normalization"
  "github.com/yungbote/studyos-backend/internal/repos"
  "github.com/yungbote/studyos-backend/internal/types"
)

const (
  // APIKeyPrefix makes keys visually distinguishable from other secrets.
  APIKeyPrefix = "sos_"

  apiKeyRandomBytes = 32
  maxKeysPerUser    = 5
  maxKeyNameLen     = 100
)

// GenerateAPIKey returns a fresh plaintext key: the fixed prefix followed by
// 256 bits of randomness hex-encoded.
func GenerateAPIKey() (string, error) {
  raw := make([]byte, apiKeyRandomBytes)
  if _, err := rand.Read(raw); err != nil {
    return "", fmt.Errorf("Failed to read randomness for api key: %w", err)
  }
  return APIKeyPrefix + hex.EncodeToString(raw), nil
}

// HashAPIKey is the irreversible digest stored in place of the plaintext.
func HashAPIKey(plaintext string) string {
  sum := sha256.Sum256([]byte(plaintext))
  return hex.EncodeToString(sum[:])
}

// MaskAPIKey builds the display hint shown on key listings. It prefers the
// stored last-4 hint and falls back to the hash tail when the storage schema
// dropped that field.
func MaskAPIKey(key *types.ApiKey) string {
  last4 := key.KeyLast4
  if last4 == "" && len(key.KeyHash) >= 4 {
    last4 = key.KeyHash[len(key.KeyHash)-4:]
  }
  return APIKeyPrefix + "****" + last4
}

type ApiKeySummary struct {
  ID        uuid.UUID  `json:"id"`
  Name      string     `json:"name"`
  KeyHint   string     `json:"keyHint"`
  CreatedAt time.Time  `json:"createdAt"`
  LastUsed  *time.Time `json:"lastUsed"`
}

type ApiKeyService interface {
  // CreateKey returns the stored row and the plaintext key. The plaintext
  // is only ever available from this call.
  CreateKey(ctx context.Context, userID uuid.UUID, name string) (*types.ApiKey, string, error)
  ListKeys(ctx context.Context, userID uuid.UUID) ([]ApiKeySummary, error)
  DeleteKey(ctx context.Context, userID, keyID uuid.UUID) error
  // ValidateKey resolves a plaintext key to its owner. Prefix mismatch and
  // unknown keys both return ErrUnauthorized with no distinction.
  ValidateKey(ctx context.Context, plaintext string) (uuid.UUID, uuid.UUID, error)
}

type apiKeyService struct {
  db         *gorm.DB
  log        *logger.Logger
  apiKeyRepo repos.ApiKeyRepo
}

func NewApiKeyService(db *gorm.DB, log *logger.Logger, apiKeyRepo repos.ApiKeyRepo) ApiKeyService {
  serviceLog := log.With("service", "ApiKeyService")
  return &apiKeyService{db: db, log: serviceLog, apiKeyRepo: apiKeyRepo}
}

func (s *apiKeyService) CreateKey(ctx context.Context, userID uuid.UUID, name string) (*types.ApiKey, string, error) {
  name = normalization.TrimInputString(name)
  if userID == uuid.Nil {
    return nil, "", ErrUnauthorized
  }
  if name == "" {
    return nil, "", fmt.Errorf("%w: name is required", ErrInvalid)
  }
  name = normalization.ClampString(name, maxKeyNameLen)

  count, err := s.apiKeyRepo.CountByUserID(ctx, nil, userID)
  if err != nil {
    return nil, "", fmt.Errorf("Failed to count api keys: %w", err)
  }
  if count >= maxKeysPerUser {
    return nil, "", ErrKeyLimit
  }

  plaintext, err := GenerateAPIKey()
  if err != nil {
    return nil, "", err
  }
  key := &types.ApiKey{
    ID:       uuid.New(),
    UserID:   userID,
    KeyHash:  HashAPIKey(plaintext),
    KeyLast4: plaintext[len(plaintext)-4:],
    Name:     name,
  }
  created, err := s.apiKeyRepo.Create(ctx, nil, key)
  if err != nil {
    return nil, "", fmt.Errorf("Failed to create api key: %w", err)
  }
  return created, plaintext, nil
}

func (s *apiKeyService) ListKeys(ctx context.Context, userID uuid.UUID) ([]ApiKeySummary, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  keys, err := s.apiKeyRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to list api keys: %w", err)
  }
  summaries := make([]ApiKeySummary, 0, len(keys))
  for _, k := range keys {
    summaries = append(summaries, ApiKeySummary{
      ID:        k.ID,
      Name:      k.Name,
      KeyHint:   MaskAPIKey(k),
      CreatedAt: k.CreatedAt,
      LastUsed:  k.LastUsed,
    })
  }
  return summaries, nil
}

func (s *apiKeyService) DeleteKey(ctx context.Context, userID, keyID uuid.UUID) error {
  if userID == uuid.Nil {
    return ErrUnauthorized
  }
  keys, err := s.apiKeyRepo.GetByIDs(ctx, nil, []uuid.UUID{keyID})
  if err != nil {
    return fmt.Errorf("Failed to load api key: %w", err)
  }
  if len(keys) == 0 || keys[0] == nil {
    return ErrNotFound
  }
  if keys[0].UserID != userID {
    return ErrForbidden
  }
  if err := s.apiKeyRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{keyID}); err != nil {
    return fmt.Errorf("Failed to delete api key: %w", err)
  }
  return nil
}

func (s *apiKeyService) ValidateKey(ctx context.Context, plaintext string) (uuid.UUID, uuid.UUID, error) {
  // Fast-reject without a store lookup when the prefix is wrong. Callers
  // see the same outcome as an unknown key.
  if len(plaintext) <= len(APIKeyPrefix) || plaintext[:len(APIKeyPrefix)] != APIKeyPrefix {
    return uuid.Nil, uuid.Nil, ErrUnauthorized
  }
  key, err := s.apiKeyRepo.GetByHash(ctx, nil, HashAPIKey(plaintext))
  if err != nil {
    s.log.Error("api key lookup failed", "error", err)
    return uuid.Nil, uuid.Nil, ErrUnauthorized
  }
  if key == nil {
    return uuid.Nil, uuid.Nil, ErrUnauthorized
  }

  // Best-effort last-used stamp; never blocks or fails the request.
  keyID := key.ID
  go func() {
    bgCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := s.apiKeyRepo.UpdateLastUsed(bgCtx, nil, keyID, time.Now()); err != nil {
      s.log.Warn("Failed to update api key last_used", "error", err)
    }
  }()

  return key.UserID, key.ID, nil
}
