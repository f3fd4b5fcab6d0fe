package risk

import "fmt"

// Tier is one of the six fixed risk categories.
type Tier struct {
	Category    int
	Label       string
	Description string
	// Summary opens the narrative; the description is appended to it.
	Summary string
	Advice  string
}

var tiers = []Tier{
	{Category: 1, Label: "Easy", Description: "Little Danger",
		Summary: "Excellent conditions for sea kayaking."},
	{Category: 2, Label: "Moderate", Description: "Small Sea, very easy terrain",
		Summary: "Moderate conditions for sea kayaking."},
	{Category: 3, Label: "Intermediate", Description: "Regular seas, easy landing areas",
		Summary: "Intermediate conditions for sea kayaking."},
	{Category: 4, Label: "Advanced", Description: "Confused Seas, difficult landing areas",
		Summary: "Challenging conditions for sea kayaking.",
		Advice:  "Only suitable for experienced kayakers with proper skills and equipment."},
	{Category: 5, Label: "Extreme", Description: "Heavy Water, very confused sea",
		Summary: "Extreme conditions for sea kayaking.",
		Advice:  "Only expert paddlers should consider venturing out."},
	{Category: 6, Label: "Very Extreme", Description: "V heavy water, completely unpredictable",
		Summary: "Very dangerous conditions for sea kayaking.",
		Advice:  "Conditions are severe and not recommended."},
}

// TierFor returns the tier of a category, clamped to 1..6.
func TierFor(category int) Tier {
	if category < 1 {
		category = 1
	}
	if category > len(tiers) {
		category = len(tiers)
	}
	return tiers[category-1]
}

// Title is the heading shown above the narrative, e.g. "2 - Moderate".
func (t Tier) Title() string {
	return fmt.Sprintf("%d - %s", t.Category, t.Label)
}
