package timezone

import (
	"sync"
	"time"
)

// Reset forgets the resolved zone so the next call loads it from the environment again.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	once = sync.Once{}
	appLocation = time.UTC
}
