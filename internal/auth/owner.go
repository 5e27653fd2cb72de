package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "gymlog-session||"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrSessionExpired = errors.New("session expired")
)

// OwnerResolver maps bearer tokens to owner (user) ids.
// Sessions are written by the login service as "<ownerID>|<createdAtUnix>".
type OwnerResolver struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewOwnerResolver(ttl time.Duration, redisClient *redis.Client) *OwnerResolver {
	return &OwnerResolver{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

func SessionKey(token string) string {
	return sessionKeyPrefix + token
}

func SessionValue(ownerID int, createdAt time.Time) string {
	return fmt.Sprintf("%d|%d", ownerID, createdAt.Unix())
}

func (r *OwnerResolver) ResolveOwner(ctx context.Context, token string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.resolveOwner")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	val, err := r.redisClient.Get(ctx, SessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, fmt.Errorf("get session: %w", err)
	}

	ownerRaw, createdAtRaw, ok := strings.Cut(val, "|")
	if !ok {
		return 0, fmt.Errorf("malformed session value: %s", val)
	}
	ownerID, err := strconv.Atoi(ownerRaw)
	if err != nil || ownerID <= 0 {
		return 0, fmt.Errorf("malformed session owner: %s", ownerRaw)
	}
	createdAtUnix, err := strconv.ParseInt(createdAtRaw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed session timestamp: %w", err)
	}

	if time.Since(time.Unix(createdAtUnix, 0)) > r.ttl {
		return 0, ErrSessionExpired
	}

	return ownerID, nil
}

type ownerCtxKey struct{}

func WithOwner(ctx context.Context, ownerID int) context.Context {
	return context.WithValue(ctx, ownerCtxKey{}, ownerID)
}

// OwnerFromContext returns the owner id stored by the auth middleware.
func OwnerFromContext(ctx context.Context) (int, bool) {
	ownerID, ok := ctx.Value(ownerCtxKey{}).(int)
	return ownerID, ok && ownerID > 0
}
