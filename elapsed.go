package scouter

import "time"

// reduceElapsed folds elapsed modulo one hour, then modulo one minute. The hour fold
// is redundant once the minute fold runs; both steps stay.
//
// A negative input (base in the future) stays negative and never crosses a threshold.
func reduceElapsed(elapsed time.Duration) time.Duration {
	elapsed %= time.Hour
	elapsed %= time.Minute
	return elapsed
}

// elapsedSince measures now-base in whole milliseconds on the scheduler's clock.
func elapsedSince(now time.Duration, baseMillis int64) time.Duration {
	return time.Duration(now.Milliseconds()-baseMillis) * time.Millisecond
}
