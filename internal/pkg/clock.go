package pkg

import "time"

// Clock is the time source used for token expiry, swapped in tests.
type Clock interface {
	Now() time.Time
}

type NormalClock struct{}

func (NormalClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant until moved with Advance.
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.T
}

func (c *FixedClock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}
