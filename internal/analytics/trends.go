package analytics

import (
	"sort"

	"github.com/pathwayhq/pathway/internal/domain"
)

// Trend classifies the direction of recent assessment scores.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// trendBand is the points margin the recent mean must clear against the
// older mean before a trend counts as non-stable.
const trendBand = 5.0

// SkillTrend is the classified trend for one technology.
type SkillTrend struct {
	Technology string  `json:"technology"`
	Trend      Trend   `json:"trend"`
	RecentAvg  float64 `json:"recent_avg"`
	OlderAvg   float64 `json:"older_avg"`
	Samples    int     `json:"samples"`
}

// SkillTrends groups assessment records by technology and classifies each
// group. Within a group scores are ordered by completion time; "recent" is
// the last three scores and "older" everything before. A non-stable trend
// needs at least two recent scores and at least one older score, so fewer
// than four total scores always classifies as stable.
func SkillTrends(records []domain.AssessmentRecord) []SkillTrend {
	groups := make(map[string][]domain.AssessmentRecord)
	for _, r := range records {
		groups[r.Technology] = append(groups[r.Technology], r)
	}

	trends := make([]SkillTrend, 0, len(groups))
	for tech, recs := range groups {
		sort.Slice(recs, func(i, j int) bool {
			return recs[i].CompletedAt.Before(recs[j].CompletedAt)
		})

		scores := make([]float64, len(recs))
		for i, r := range recs {
			scores[i] = float64(r.Score)
		}

		trend := SkillTrend{
			Technology: tech,
			Trend:      TrendStable,
			Samples:    len(scores),
		}

		if len(scores) >= 2 {
			split := len(scores) - 3
			if split < 0 {
				split = 0
			}
			older, recent := scores[:split], scores[split:]

			if len(recent) >= 2 && len(older) >= 1 {
				trend.RecentAvg = mean(recent)
				trend.OlderAvg = mean(older)
				switch {
				case trend.RecentAvg > trend.OlderAvg+trendBand:
					trend.Trend = TrendImproving
				case trend.RecentAvg < trend.OlderAvg-trendBand:
					trend.Trend = TrendDeclining
				}
			}
		}

		trends = append(trends, trend)
	}

	sort.Slice(trends, func(i, j int) bool {
		return trends[i].Technology < trends[j].Technology
	})

	return trends
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
