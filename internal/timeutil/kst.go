package timeutil

import (
	"time"
)

// KST is the Korea Standard Time location (UTC+9)
var KST *time.Location

func init() {
	var err error
	KST, err = time.LoadLocation("Asia/Seoul")
	if err != nil {
		// Fallback: create fixed zone if Asia/Seoul not available
		KST = time.FixedZone("KST", 9*60*60) // UTC+9
	}
}

// Now returns the current time in KST
func Now() time.Time {
	return time.Now().In(KST)
}

// ToKST converts any time to KST
func ToKST(t time.Time) time.Time {
	return t.In(KST)
}

// FormatKST formats a time in KST using the given layout
func FormatKST(t time.Time, layout string) string {
	return ToKST(t).Format(layout)
}
