package entity

// Visual is the color bucket of a lead card.
type Visual string

const (
	VisualHot  Visual = "hot-visual"
	VisualWarm Visual = "warm-visual"
	VisualCold Visual = "cold-visual"
)

// Thresholds splits the 0-100 score range into three buckets:
// score >= Hot, Warm <= score < Hot, score < Warm.
type Thresholds struct {
	Hot  int
	Warm int
}

// The card and promotion call sites use different cut points.
// They are kept apart on purpose and configured independently.
var (
	DefaultCardThresholds      = Thresholds{Hot: 80, Warm: 60}
	DefaultPromotionThresholds = Thresholds{Hot: 70, Warm: 40}
)

func (t Thresholds) bucket(score int) int {
	switch {
	case score >= t.Hot:
		return 2
	case score >= t.Warm:
		return 1
	default:
		return 0
	}
}

// CardVisual maps a score to the lead-card color bucket.
func CardVisual(score int, t Thresholds) Visual {
	switch t.bucket(score) {
	case 2:
		return VisualHot
	case 1:
		return VisualWarm
	default:
		return VisualCold
	}
}

// PromotionStatus maps a prospected candidate score to the status it gets
// when promoted into the lead list.
func PromotionStatus(score int, t Thresholds) Status {
	switch t.bucket(score) {
	case 2:
		return StatusHot
	case 1:
		return StatusWarm
	default:
		return StatusCold
	}
}

// DefaultScore is the score given to a manually created lead that has no score.
func DefaultScore(s Status) int {
	switch s {
	case StatusHot:
		return 85
	case StatusWarm:
		return 60
	default:
		return 35
	}
}
