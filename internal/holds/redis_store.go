package holds

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore holds seats with Lua scripts so the check-and-set across all
// requested seats happens in one atomic step on the Redis side.
type RedisStore struct {
	redis *redis.Client
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{redis: redisClient}
}

// Seat keys are scoped per event so the same label in two halls never
// collides.
const luaHoldSeats = `
-- KEYS[1] = hold_id
-- ARGV[1] = customer_key
-- ARGV[2] = event_id
-- ARGV[3] = ttl_seconds
-- ARGV[4..N] = seat_labels

local hold_id = KEYS[1]
local customer_key = ARGV[1]
local event_id = ARGV[2]
local ttl = tonumber(ARGV[3])

for i = 4, #ARGV do
    local seat_key = "seat_hold:" .. event_id .. ":" .. ARGV[i]
    if redis.call("EXISTS", seat_key) == 1 then
        return {0, ARGV[i]}
    end
end

local hold_key = "hold:" .. hold_id
local hold_seats_key = "hold_seats:" .. hold_id

redis.call("HMSET", hold_key,
    "customer_key", customer_key,
    "event_id", event_id,
    "seat_count", #ARGV - 3
)
redis.call("EXPIRE", hold_key, ttl)

for i = 4, #ARGV do
    local seat_key = "seat_hold:" .. event_id .. ":" .. ARGV[i]
    redis.call("SETEX", seat_key, ttl, customer_key .. ":" .. hold_id)
    redis.call("SADD", hold_seats_key, ARGV[i])
end
redis.call("EXPIRE", hold_seats_key, ttl)

return {1, "success"}
`

const luaReleaseHold = `
-- KEYS[1] = hold_id
local hold_id = KEYS[1]

local hold_key = "hold:" .. hold_id
local hold_seats_key = "hold_seats:" .. hold_id

local event_id = redis.call("HGET", hold_key, "event_id")
if not event_id then
    return {0, "hold_not_found"}
end

local seats = redis.call("SMEMBERS", hold_seats_key)
for i = 1, #seats do
    redis.call("DEL", "seat_hold:" .. event_id .. ":" .. seats[i])
end

redis.call("DEL", hold_key)
redis.call("DEL", hold_seats_key)

return {1, #seats}
`

func (s *RedisStore) Hold(ctx context.Context, holdID, eventID, customerKey string, seats []string, ttl time.Duration) error {
	if s.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := []string{holdID}
	args := []interface{}{customerKey, eventID, strconv.Itoa(int(ttl.Seconds()))}
	for _, seat := range seats {
		args = append(args, seat)
	}

	result, err := s.redis.EvalSha(ctx, luaHoldSeats, keys, args...).Result()
	if err != nil {
		result, err = s.redis.Eval(ctx, luaHoldSeats, keys, args...).Result()
		if err != nil {
			return fmt.Errorf("failed to execute seat hold script: %w", err)
		}
	}

	success, detail, err := parseScriptResult(result)
	if err != nil {
		return err
	}
	if !success {
		return fmt.Errorf("%w: %s", ErrSeatHeld, detail)
	}
	return nil
}

func (s *RedisStore) Release(ctx context.Context, holdID string) (int, error) {
	if s.redis == nil {
		return 0, fmt.Errorf("redis client not available")
	}

	result, err := s.redis.EvalSha(ctx, luaReleaseHold, []string{holdID}).Result()
	if err != nil {
		result, err = s.redis.Eval(ctx, luaReleaseHold, []string{holdID}).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to execute hold release script: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return 0, fmt.Errorf("unexpected result format from release script")
	}
	success, ok := resultArray[0].(int64)
	if !ok {
		return 0, fmt.Errorf("invalid success flag in release script result")
	}
	if success == 0 {
		return 0, ErrHoldNotFound
	}
	released, ok := resultArray[1].(int64)
	if !ok {
		return 0, fmt.Errorf("invalid released count in release script result")
	}
	return int(released), nil
}

func (s *RedisStore) Get(ctx context.Context, holdID string) (*Hold, error) {
	if s.redis == nil {
		return nil, fmt.Errorf("redis client not available")
	}

	holdKey := "hold:" + holdID
	meta, err := s.redis.HGetAll(ctx, holdKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read hold: %w", err)
	}
	if len(meta) == 0 {
		return nil, ErrHoldNotFound
	}

	seats, err := s.redis.SMembers(ctx, "hold_seats:"+holdID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read hold seats: %w", err)
	}

	ttl, err := s.redis.TTL(ctx, holdKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read hold TTL: %w", err)
	}

	return &Hold{
		ID:          holdID,
		EventID:     meta["event_id"],
		CustomerKey: meta["customer_key"],
		Seats:       seats,
		ExpiresAt:   time.Now().Add(ttl),
	}, nil
}

// PreloadScripts loads the Lua scripts so EvalSha hits on the first call.
func (s *RedisStore) PreloadScripts(ctx context.Context) error {
	if s.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	for _, script := range []string{luaHoldSeats, luaReleaseHold} {
		if _, err := s.redis.ScriptLoad(ctx, script).Result(); err != nil {
			return fmt.Errorf("failed to load hold script: %w", err)
		}
	}
	return nil
}

func parseScriptResult(result interface{}) (bool, string, error) {
	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return false, "", fmt.Errorf("unexpected result format from Lua script")
	}
	success, ok := resultArray[0].(int64)
	if !ok {
		return false, "", fmt.Errorf("invalid success flag in Lua script result")
	}
	detail, _ := resultArray[1].(string)
	return success == 1, detail, nil
}
