package tracker

import (
	"fmt"
	"math"
)

// FormatTimeSpent renders minutes as "M min S sec".
// Minutes wrap at 60 and seconds come from the fractional part of the input,
// so whole-minute values always show 0 sec.
func FormatTimeSpent(totalMinutes float64) string {
	minutes := math.Floor(math.Mod(totalMinutes, 60))
	seconds := math.Floor(math.Mod(totalMinutes*60, 60))
	return fmt.Sprintf("%d min %d sec", int(minutes), int(seconds))
}
