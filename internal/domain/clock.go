package domain

import "time"

// KST is the Korea Standard Time zone. Broker APIs express token expiry
// and query dates in KST regardless of where the process runs.
var KST = time.FixedZone("KST", 9*60*60)

// NowKST returns the current time in KST.
func NowKST() time.Time {
	return time.Now().In(KST)
}

// TodayKST returns today's date in KST as YYYYMMDD, the query-date format
// broker endpoints expect.
func TodayKST() string {
	return NowKST().Format("20060102")
}
