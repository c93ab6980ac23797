package repos

import (
  "errors"
  "testing"

  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("Failed to init logger: %v", err)
  }
  return log
}

func TestCreateKeyRowRetriesWithoutHintColumn(t *testing.T) {
  log := newTestLogger(t)
  key := &types.ApiKey{KeyLast4: "abcd"}

  var calls []bool
  err := createKeyRow(log, key, func(omitHint bool) error {
    calls = append(calls, omitHint)
    if !omitHint {
      return errors.New(`ERROR: column "key_last4" of relation "api_key" does not exist (SQLSTATE 42703)`)
    }
    return nil
  })
  if err != nil {
    t.Fatalf("createKeyRow failed: %v", err)
  }
  if len(calls) != 2 || calls[0] || !calls[1] {
    t.Fatalf("expected plain insert then omit-hint retry, got %v", calls)
  }
  if key.KeyLast4 != "" {
    t.Fatalf("hint not cleared before retry: %q", key.KeyLast4)
  }
}

func TestCreateKeyRowPassesThroughOtherErrors(t *testing.T) {
  log := newTestLogger(t)
  key := &types.ApiKey{KeyLast4: "abcd"}
  dup := errors.New(`ERROR: duplicate key value violates unique constraint "api_key_pkey" (SQLSTATE 23505)`)

  calls := 0
  err := createKeyRow(log, key, func(omitHint bool) error {
    calls++
    return dup
  })
  if !errors.Is(err, dup) {
    t.Fatalf("expected the insert error back, got %v", err)
  }
  if calls != 1 {
    t.Fatalf("non-column errors must not be retried, got %d attempts", calls)
  }
  if key.KeyLast4 != "abcd" {
    t.Fatalf("hint must survive a failed insert: %q", key.KeyLast4)
  }
}

func TestCreateKeyRowNoRetryOnSuccess(t *testing.T) {
  log := newTestLogger(t)
  key := &types.ApiKey{KeyLast4: "abcd"}

  calls := 0
  if err := createKeyRow(log, key, func(omitHint bool) error {
    calls++
    return nil
  }); err != nil {
    t.Fatalf("createKeyRow failed: %v", err)
  }
  if calls != 1 || key.KeyLast4 != "abcd" {
    t.Fatalf("clean insert must run once and keep the hint, calls=%d last4=%q", calls, key.KeyLast4)
  }
}

func TestIsUnknownColumnErr(t *testing.T) {
  cases := []struct {
    err  error
    want bool
  }{
    {nil, false},
    {errors.New("SQLSTATE 42703"), true},
    {errors.New(`column "key_last4" does not exist`), true},
    {errors.New("Unknown column 'key_last4' in 'field list'"), true},
    {errors.New("connection refused"), false},
    {errors.New(`relation "api_key" does not exist`), false},
  }
  for _, tc := range cases {
    if got := isUnknownColumnErr(tc.err); got != tc.want {
      t.Fatalf("isUnknownColumnErr(%v) = %v, want %v", tc.err, got, tc.want)
    }
  }
}
