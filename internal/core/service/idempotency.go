package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/rafaelleal24/smartpantry/internal/core/logger"
	"github.com/rafaelleal24/smartpantry/internal/core/port"
	"github.com/rafaelleal24/smartpantry/internal/core/serviceerrors"
)

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

type IdempotencyEntry[T any] struct {
	Status      IdempotencyStatus `json:"status"`
	PayloadHash string            `json:"payload_hash"`
	Result      *T                `json:"result,omitempty"`
	ClaimedAt   time.Time         `json:"claimed_at"`
}

// IdempotencyService lets a retried request observe the outcome of the first
// attempt instead of repeating its side effects.
type IdempotencyService[T any] struct {
	cache        port.CachePort[IdempotencyEntry[T]]
	ttl          time.Duration
	pollInterval time.Duration
	pollTimeout  time.Duration
}

func NewIdempotencyService[T any](
	cache port.CachePort[IdempotencyEntry[T]],
	ttl time.Duration,
	pollInterval time.Duration,
	pollTimeout time.Duration,
) *IdempotencyService[T] {
	return &IdempotencyService[T]{
		cache:        cache,
		ttl:          ttl,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}
}

// Do runs fn at most once per key while the entry lives. A repeated call with
// the same payload gets the first result back and replayed is true.
func (s *IdempotencyService[T]) Do(ctx context.Context, key string, payload any, fn func(ctx context.Context) (*T, error)) (result *T, replayed bool, err error) {
	payloadHash := hashPayload(payload)

	existing, err := s.Claim(ctx, key, payloadHash)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, true, nil
	}

	result, err = fn(ctx)
	if err != nil {
		s.Release(ctx, key)
		return nil, false, err
	}

	s.Complete(ctx, key, payloadHash, result)
	return result, false, nil
}

// Claim returns (nil, nil) when the caller owns the key and must do the work,
// or the stored result of an earlier request with the same key and payload.
func (s *IdempotencyService[T]) Claim(ctx context.Context, key, payloadHash string) (*T, error) {
	claimed, err := s.cache.SetNX(ctx, key, &IdempotencyEntry[T]{
		Status:      IdempotencyProcessing,
		PayloadHash: payloadHash,
		ClaimedAt:   time.Now(),
	}, s.ttl)
	if err != nil {
		return nil, serviceerrors.NewStoreFailureError("idempotency claim failed", err)
	}
	if claimed {
		return nil, nil
	}

	return s.waitForCompletion(ctx, key, payloadHash)
}

// Complete and Release run after the work is done; a cache failure there only
// costs the ability to replay, so it is logged and swallowed.
func (s *IdempotencyService[T]) Complete(ctx context.Context, key, payloadHash string, result *T) {
	err := s.cache.Set(ctx, key, &IdempotencyEntry[T]{
		Status:      IdempotencyCompleted,
		PayloadHash: payloadHash,
		Result:      result,
		ClaimedAt:   time.Now(),
	}, s.ttl)
	if err != nil {
		logger.Error(ctx, "idempotency: complete failed", err, map[string]any{
			"idempotency_key": key,
			"payload_hash":    payloadHash,
		})
	}
}

func (s *IdempotencyService[T]) Release(ctx context.Context, key string) {
	if err := s.cache.Del(ctx, key); err != nil {
		logger.Error(ctx, "idempotency: release failed", err, map[string]any{
			"idempotency_key": key,
		})
	}
}

// lookup reports done=true once the entry settles into a result or an error.
func (s *IdempotencyService[T]) lookup(ctx context.Context, key, payloadHash string) (result *T, done bool, err error) {
	entry, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		return nil, true, serviceerrors.NewStoreFailureError("idempotency lookup failed", err)
	case entry == nil:
		return nil, true, serviceerrors.NewConflictError("previous request failed, retry with the same key")
	case entry.PayloadHash != payloadHash:
		return nil, true, serviceerrors.NewUnprocessableEntityError("idempotency key already used with a different payload")
	case entry.Status == IdempotencyCompleted:
		return entry.Result, true, nil
	default:
		return nil, false, nil
	}
}

func (s *IdempotencyService[T]) waitForCompletion(ctx context.Context, key, payloadHash string) (*T, error) {
	if result, done, err := s.lookup(ctx, key, payloadHash); done {
		return result, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-waitCtx.Done():
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return nil, serviceerrors.NewConflictError("idempotency key still being processed, timed out")
		case <-ticker.C:
			if result, done, err := s.lookup(waitCtx, key, payloadHash); done {
				return result, err
			}
		}
	}
}

func hashPayload(payload any) string {
	data, _ := json.Marshal(payload)
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
