package funkos

import (
	"fmt"
	"time"
)

// DefaultCacheTTL bounds the staleness window of cached snapshots
const DefaultCacheTTL = 5 * time.Minute

const (
	funkoCachePrefix    = "funko"
	categoryCachePrefix = "category"
)

// cacheKey builds the {entity-type-prefix}:{entity-id} key scheme
func cacheKey(prefix string, id any) string {
	return fmt.Sprintf("%s:%v", prefix, id)
}
