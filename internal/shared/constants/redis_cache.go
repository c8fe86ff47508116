package constants

import "time"

// Redis cache keys and TTL values.
// Pattern: dexview:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG  = 24 * time.Hour // very stable data (hall records)
	TTL_STATIC_SHORT = 6 * time.Hour  // user profiles
)

const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // event details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // event listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // upcoming events
)

const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // analytics
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // seat maps with booked flags
	TTL_DYNAMIC_QUICK  = 2 * time.Minute  // booking availability
)

// ================== REDIS KEY PREFIXES ==================

const CACHE_PREFIX = "dexview"

// Halls
const (
	CACHE_KEY_HALLS_LIST  = CACHE_PREFIX + ":halls:list"
	CACHE_KEY_HALL_DETAIL = CACHE_PREFIX + ":halls:detail:uuid:" // + hall-id
	PATTERN_HALLS_ALL     = CACHE_PREFIX + ":halls:*"
)

// Events
const (
	CACHE_KEY_EVENTS_LIST     = CACHE_PREFIX + ":events:list" // + :page:X:limit:Y:status:Z
	CACHE_KEY_EVENTS_UPCOMING = CACHE_PREFIX + ":events:upcoming"
	CACHE_KEY_EVENT_DETAIL    = CACHE_PREFIX + ":events:detail:uuid:"  // + event-id
	CACHE_KEY_EVENT_SEATMAP   = CACHE_PREFIX + ":events:seatmap:uuid:" // + event-id
	PATTERN_EVENTS_ALL        = CACHE_PREFIX + ":events:*"
)

// Analytics
const (
	CACHE_KEY_ANALYTICS_DASHBOARD = CACHE_PREFIX + ":analytics:dashboard"
	CACHE_KEY_ANALYTICS_REVENUE   = CACHE_PREFIX + ":analytics:revenue"
	CACHE_KEY_ANALYTICS_OCCUPANCY = CACHE_PREFIX + ":analytics:occupancy"
	PATTERN_ANALYTICS_ALL         = CACHE_PREFIX + ":analytics:*"
)

// Seat holds (values managed by the holds Lua scripts, listed here for visibility)
const (
	KEY_SEAT_HOLD_PREFIX  = "seat_hold:"  // + {event-id}:{seat-label}
	KEY_HOLD_PREFIX       = "hold:"       // + {hold-id}
	KEY_HOLD_SEATS_PREFIX = "hold_seats:" // + {hold-id}
)

// BuildEventSeatmapKey returns the cache key for a generated event seat map
func BuildEventSeatmapKey(eventID string) string {
	return CACHE_KEY_EVENT_SEATMAP + eventID
}

// BuildEventDetailKey returns the cache key for an event detail payload
func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

// BuildHallDetailKey returns the cache key for a hall detail payload
func BuildHallDetailKey(hallID string) string {
	return CACHE_KEY_HALL_DETAIL + hallID
}
