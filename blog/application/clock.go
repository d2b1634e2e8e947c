package application

import "time"

// Clock supplies the current instant. Production code uses time.Now; tests
// pin it to make "today" boundaries deterministic.
type Clock func() time.Time
