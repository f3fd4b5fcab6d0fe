// Package risk scores sea kayaking conditions. Five condition factors are
// turned into points, optional hazardous activities add a flat surcharge,
// and the total maps to one of six named categories.
package risk

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
)

const (
	// PointsPerCategory converts total points into the score.
	PointsPerCategory = 20.0
	// ActivitySurcharge is added once per selected activity.
	ActivitySurcharge = 20.0
)

var activityText = map[models.Activity]struct {
	name    string
	warning string
}{
	models.ActivityRockHopping: {
		name:    "rockhopping",
		warning: "Rockhopping demands precise maneuvering near rocks with hazards from waves, surge, and submerged obstacles.",
	},
	models.ActivitySeaCaves: {
		name:    "sea caves",
		warning: "Sea caves require careful assessment of swell, tide levels, and exit routes. Never enter alone.",
	},
	models.ActivitySurfing: {
		name:    "surfing",
		warning: "Surf zone kayaking demands strong bracing skills, roll ability, and understanding of wave dynamics.",
	},
	models.ActivityNightTime: {
		name:    "night time",
		warning: "Night kayaking requires navigation lights, headlamp, reflective gear, and excellent knowledge of the area. Disorientation and limited visibility create serious hazards.",
	},
}

// Assess extracts the worst-case bundle from the series and scores it.
func Assess(weather, marine *models.HourlySeries, start time.Time, seaSummary *models.ScalarStat, activities []models.Activity) models.RiskAssessment {
	return Score(ExtractBundle(weather, marine, start, seaSummary), activities)
}

// Score is a pure function of the bundle and the selected activities.
// Repeated activities count once.
func Score(bundle models.ConditionBundle, activities []models.Activity) models.RiskAssessment {
	factors := []models.RiskFactor{
		WaterTemperature(bundle.SeaTemperatureC),
		WindSpeed(bundle.WindSpeedKnots),
		WindGust(bundle.WindGustKnots, bundle.WindSpeedKnots),
		WaveHeight(bundle.WaveHeightM),
		WavePeriod(bundle.WavePeriodS),
	}

	total := 0.0
	concerns := []string{}
	for _, f := range factors {
		total += f.Points
		if f.Severity == models.SeverityRed {
			concerns = append(concerns, strings.ToLower(f.Name))
		}
	}

	selected := dedupe(activities)
	total += ActivitySurcharge * float64(len(selected))

	score := total / PointsPerCategory
	tier := TierFor(Category(score))

	assessment := models.RiskAssessment{
		TotalPoints: total,
		Score:       score,
		Category:    tier.Category,
		Label:       tier.Label,
		Title:       tier.Title(),
		Factors:     factors,
		Activities:  selected,
		Concerns:    concerns,
	}
	assessment.Narrative = narrative(assessment, tier)
	return assessment
}

// Category rounds the score to the nearest category, at least 1 and at
// most 6.
func Category(score float64) int {
	c := int(math.Round(score))
	if c < 1 {
		return 1
	}
	if c > len(tiers) {
		return len(tiers)
	}
	return c
}

func dedupe(activities []models.Activity) []models.Activity {
	seen := make(map[models.Activity]bool, len(activities))
	out := make([]models.Activity, 0, len(activities))
	for _, a := range activities {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

func narrative(a models.RiskAssessment, tier Tier) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Risk Score: %s. %s %s.", a.ScoreDisplay(), tier.Summary, tier.Description)
	if tier.Advice != "" {
		b.WriteString(" " + tier.Advice)
	}

	if len(a.Concerns) > 0 {
		fmt.Fprintf(&b, " Key concerns: %s.", strings.Join(a.Concerns, ", "))
	}

	if len(a.Activities) == 0 {
		return b.String()
	}

	names := make([]string, 0, len(a.Activities))
	for _, act := range a.Activities {
		if text, ok := activityText[act]; ok {
			names = append(names, text.name)
		} else {
			names = append(names, strings.ToLower(act.Label()))
		}
	}
	surcharge := ActivitySurcharge * float64(len(a.Activities)) / PointsPerCategory
	fmt.Fprintf(&b, " Selected Activities: You have selected %s which adds %.1f risk to your score.",
		strings.Join(names, ", "), surcharge)

	if len(a.Activities) >= 2 {
		b.WriteString(" These activities significantly increase risk and require advanced skills, proper equipment, and thorough knowledge of the area.")
	} else {
		b.WriteString(" This activity increases risk and requires good judgment, experience, and proper safety precautions.")
	}

	for _, act := range a.Activities {
		if text, ok := activityText[act]; ok {
			b.WriteString(" " + text.warning)
		}
	}
	return b.String()
}
