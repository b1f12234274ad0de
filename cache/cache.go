package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const FilterTreeKey = "filter_tree"

// FilterTreeCache holds the sorted filter forest. Admin edits flush it.
var FilterTreeCache = cache.New(5*time.Minute, 10*time.Minute)

// RateLimiterCache holds one *rate.Limiter per client IP.
var RateLimiterCache = cache.New(10*time.Minute, 15*time.Minute)

// PlaySpecCache backs the in-process play spec store.
var PlaySpecCache = cache.New(6*time.Hour, 30*time.Minute)
