package utils

import "time"

// Use explicit "seconds" variant for DB storage
func NowUnixSeconds() int64 { return time.Now().Unix() }

func UnixPtr(t time.Time) *int64 {
	v := t.Unix()
	return &v
}
