package services

import (
  "context"
  "errors"
  "strings"
  "testing"

  "github.com/google/uuid"
)

func TestGenerateAPIKeyFormat(t *testing.T) {
  key, err := GenerateAPIKey()
  if err != nil {
    t.Fatalf("GenerateAPIKey failed: %v", err)
  }
  if !strings.HasPrefix(key, APIKeyPrefix) {
    t.Fatalf("expected %q prefix, got %q", APIKeyPrefix, key)
  }
  if len(key) != len(APIKeyPrefix)+64 {
    t.Fatalf("expected %d chars after prefix, got %d", 64, len(key)-len(APIKeyPrefix))
  }
  other, err := GenerateAPIKey()
  if err != nil {
    t.Fatalf("GenerateAPIKey failed: %v", err)
  }
  if key == other {
    t.Fatal("two generated keys collided")
  }
}

func TestCreateAndValidateKey(t *testing.T) {
  svc := NewApiKeyService(nil, newTestLogger(t), newFakeApiKeyRepo())
  userID := uuid.New()

  created, plaintext, err := svc.CreateKey(context.Background(), userID, "gpt access")
  if err != nil {
    t.Fatalf("CreateKey failed: %v", err)
  }
  if created.KeyHash == plaintext || created.KeyHash == "" {
    t.Fatal("stored hash must not be the plaintext")
  }
  if created.KeyLast4 != plaintext[len(plaintext)-4:] {
    t.Fatalf("expected last4 %q, got %q", plaintext[len(plaintext)-4:], created.KeyLast4)
  }

  gotUser, gotKey, err := svc.ValidateKey(context.Background(), plaintext)
  if err != nil {
    t.Fatalf("ValidateKey failed: %v", err)
  }
  if gotUser != userID || gotKey != created.ID {
    t.Fatalf("validate returned wrong principal: user %s key %s", gotUser, gotKey)
  }
}

func TestValidateKeyRejectsUnknown(t *testing.T) {
  svc := NewApiKeyService(nil, newTestLogger(t), newFakeApiKeyRepo())

  if _, _, err := svc.ValidateKey(context.Background(), "sos_"+strings.Repeat("ab", 32)); !errors.Is(err, ErrUnauthorized) {
    t.Fatalf("unknown key should be unauthorized, got %v", err)
  }
  if _, _, err := svc.ValidateKey(context.Background(), "totally-wrong"); !errors.Is(err, ErrUnauthorized) {
    t.Fatalf("bad prefix should be unauthorized, got %v", err)
  }
  if _, _, err := svc.ValidateKey(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
    t.Fatalf("empty key should be unauthorized, got %v", err)
  }
}

func TestCreateKeyEnforcesCap(t *testing.T) {
  svc := NewApiKeyService(nil, newTestLogger(t), newFakeApiKeyRepo())
  userID := uuid.New()

  for i := 0; i < maxKeysPerUser; i++ {
    if _, _, err := svc.CreateKey(context.Background(), userID, "key"); err != nil {
      t.Fatalf("key %d should be allowed: %v", i+1, err)
    }
  }
  if _, _, err := svc.CreateKey(context.Background(), userID, "one too many"); !errors.Is(err, ErrKeyLimit) {
    t.Fatalf("expected ErrKeyLimit, got %v", err)
  }

  // The cap is per user, not global.
  if _, _, err := svc.CreateKey(context.Background(), uuid.New(), "other user"); err != nil {
    t.Fatalf("another user's first key should be allowed: %v", err)
  }
}

func TestListKeysMasksPlaintext(t *testing.T) {
  svc := NewApiKeyService(nil, newTestLogger(t), newFakeApiKeyRepo())
  userID := uuid.New()

  _, plaintext, err := svc.CreateKey(context.Background(), userID, "masked")
  if err != nil {
    t.Fatalf("CreateKey failed: %v", err)
  }
  keys, err := svc.ListKeys(context.Background(), userID)
  if err != nil {
    t.Fatalf("ListKeys failed: %v", err)
  }
  if len(keys) != 1 {
    t.Fatalf("expected 1 key, got %d", len(keys))
  }
  wantHint := APIKeyPrefix + "****" + plaintext[len(plaintext)-4:]
  if keys[0].KeyHint != wantHint {
    t.Fatalf("expected hint %q, got %q", wantHint, keys[0].KeyHint)
  }
  if strings.Contains(keys[0].KeyHint, plaintext[len(APIKeyPrefix):len(plaintext)-4]) {
    t.Fatal("hint leaks key material")
  }
}

func TestDeleteKeyOwnership(t *testing.T) {
  svc := NewApiKeyService(nil, newTestLogger(t), newFakeApiKeyRepo())
  owner := uuid.New()
  stranger := uuid.New()

  created, _, err := svc.CreateKey(context.Background(), owner, "mine")
  if err != nil {
    t.Fatalf("CreateKey failed: %v", err)
  }

  if err := svc.DeleteKey(context.Background(), stranger, created.ID); !errors.Is(err, ErrForbidden) {
    t.Fatalf("foreign delete should be forbidden, got %v", err)
  }
  if err := svc.DeleteKey(context.Background(), owner, uuid.New()); !errors.Is(err, ErrNotFound) {
    t.Fatalf("missing key should be not found, got %v", err)
  }
  if err := svc.DeleteKey(context.Background(), owner, created.ID); err != nil {
    t.Fatalf("owner delete failed: %v", err)
  }
  keys, err := svc.ListKeys(context.Background(), owner)
  if err != nil {
    t.Fatalf("ListKeys failed: %v", err)
  }
  if len(keys) != 0 {
    t.Fatalf("expected no keys after delete, got %d", len(keys))
  }
}

func TestCreateKeyRequiresName(t *testing.T) {
  svc := NewApiKeyService(nil, newTestLogger(t), newFakeApiKeyRepo())
  if _, _, err := svc.CreateKey(context.Background(), uuid.New(), "   "); !errors.Is(err, ErrInvalid) {
    t.Fatalf("blank name should be invalid, got %v", err)
  }
}
