package models

import "time"

// ClickStat is the outbound click count for one merchant host.
type ClickStat struct {
	Host       string
	Count      int64
	LastSeenAt time.Time
}
