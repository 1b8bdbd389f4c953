package profile

import "github.com/kudilabs/kudi-client/internal/client/api"

// tier thresholds in lifetime EP
const (
	tierK1Threshold int64 = 1000
	tierK2Threshold int64 = 5000
	tierK3Threshold int64 = 10000
)

// TierProgress describes where the user stands on the K0→K3 career
// ladder. Progress is in [0,1]; at the top tier it is pinned to 1 and
// NextTier is empty.
type TierProgress struct {
	Tier      string
	NextTier  string
	Remaining int64
	Progress  float64
}

// ComputeTierProgress derives the ladder position from the summary's
// careerTier and EP. The server-assigned tier is trusted as-is; EP only
// drives the progress bar toward the next threshold.
func ComputeTierProgress(s *api.DailySummary) TierProgress {
	tier := "K0"
	var ep int64
	if s != nil {
		if s.CareerTier != "" {
			tier = s.CareerTier
		}
		ep = s.EP
	}

	var next string
	var prevTarget, nextTarget int64
	switch tier {
	case "K0":
		next, prevTarget, nextTarget = "K1", 0, tierK1Threshold
	case "K1":
		next, prevTarget, nextTarget = "K2", tierK1Threshold, tierK2Threshold
	case "K2":
		next, prevTarget, nextTarget = "K3", tierK2Threshold, tierK3Threshold
	default:
		return TierProgress{Tier: tier, Progress: 1}
	}

	remaining := nextTarget - ep
	if remaining < 0 {
		remaining = 0
	}

	span := nextTarget - prevTarget
	if span < 1 {
		span = 1
	}
	progress := float64(ep-prevTarget) / float64(span)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	return TierProgress{Tier: tier, NextTier: next, Remaining: remaining, Progress: progress}
}
