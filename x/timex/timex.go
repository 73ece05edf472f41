package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// SinceMs returns elapsed milliseconds since t.
func SinceMs(t time.Time) int64 { return time.Since(t).Milliseconds() }
