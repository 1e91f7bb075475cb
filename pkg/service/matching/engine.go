package matching

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

// DefaultLimit is the number of recommendations returned when the caller
// does not specify one.
const DefaultLimit = 5

// Engine scores advocates against case profiles. It is stateless; every
// call works on the directory snapshot the caller passes in.
type Engine struct{}

// New creates a new matching engine
func New() *Engine {
	return &Engine{}
}

// Score computes the match score between one advocate and a case profile.
// It returns a score in [0,100] and an ordered list of human-readable
// reasons, one per contributing clause. A hard filter returns 0 with a
// single explanatory reason and skips all scoring.
func (e *Engine) Score(advocate *model.Advocate, profile model.CaseProfile) (float64, []string) {
	// Hard filters. Jurisdiction first, then the availability flag.
	if profile.State != "" && len(advocate.States) > 0 && !containsString(advocate.States, profile.State) {
		return 0, []string{fmt.Sprintf("Not available in %s", profile.State)}
	}
	if !advocate.IsAvailable {
		return 0, []string{"Currently not accepting new cases"}
	}

	score := 0.0
	var reasons []string

	score, reasons = e.scoreSpecialization(advocate, profile, score, reasons)
	score, reasons = e.scoreGeography(advocate, profile, score, reasons)
	score, reasons = e.scoreExperience(advocate, profile, score, reasons)
	score, reasons = e.scoreAvailability(advocate, profile, score, reasons)
	score, reasons = e.scoreFee(advocate, profile, score, reasons)
	score, reasons = e.scoreLanguages(advocate, profile, score, reasons)
	score, reasons = e.scoreRating(advocate, score, reasons)
	score = e.scoreSuccessRate(advocate, score)

	if score > 100 {
		score = 100
	}
	return score, reasons
}

// Recommend scores the whole directory snapshot against the profile,
// drops non-positive scores, and returns the top limit candidates sorted
// by score descending. Ties break by rating, then review count, then
// advocate ID.
func (e *Engine) Recommend(advocates []*model.Advocate, profile model.CaseProfile, limit int) []*model.Candidate {
	if limit <= 0 {
		limit = DefaultLimit
	}

	candidates := []*model.Candidate{}
	for _, advocate := range advocates {
		score, reasons := e.Score(advocate, profile)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, &model.Candidate{
			Advocate: advocate,
			Score:    score,
			Reasons:  reasons,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Advocate.Rating != b.Advocate.Rating {
			return a.Advocate.Rating > b.Advocate.Rating
		}
		if a.Advocate.ReviewCount != b.Advocate.ReviewCount {
			return a.Advocate.ReviewCount > b.Advocate.ReviewCount
		}
		return a.Advocate.ID < b.Advocate.ID
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// scoreSpecialization awards up to 30 points. A matter-type match earns 20
// plus sub-match bonuses; without it, an expertise overlap alone earns 10.
func (e *Engine) scoreSpecialization(advocate *model.Advocate, profile model.CaseProfile, score float64, reasons []string) (float64, []string) {
	if profile.MatterType != "" && advocate.Specializes(profile.MatterType) {
		score += 20
		reasons = append(reasons, fmt.Sprintf("Specializes in %s matters", profile.MatterType))

		// First matching expertise tag wins, in the requested order.
		for _, expertise := range profile.ExpertiseTags {
			if overlapsAny(expertise, advocate.SubSpecializations) {
				score += 5
				reasons = append(reasons, fmt.Sprintf("Expert in %s", expertise))
				break
			}
		}

		if profile.SubCategory != "" {
			for _, sub := range advocate.SubSpecializations {
				if containsFold(sub, profile.SubCategory) || containsFold(profile.SubCategory, sub) {
					score += 5
					reasons = append(reasons, fmt.Sprintf("Handles %s cases regularly", profile.SubCategory))
					break
				}
			}
		}
		return score, reasons
	}

	for _, expertise := range profile.ExpertiseTags {
		if overlapsAny(expertise, advocate.SubSpecializations) {
			score += 10
			reasons = append(reasons, fmt.Sprintf("Has experience with %s", expertise))
			break
		}
	}
	return score, reasons
}

// scoreGeography awards up to 25 points for jurisdiction, district, and
// home-court familiarity.
func (e *Engine) scoreGeography(advocate *model.Advocate, profile model.CaseProfile, score float64, reasons []string) (float64, []string) {
	if profile.State != "" && containsString(advocate.States, profile.State) {
		score += 10
		reasons = append(reasons, fmt.Sprintf("Practices in %s", profile.State))
	}

	if profile.District != "" && containsString(advocate.Districts, profile.District) {
		score += 10
		reasons = append(reasons, fmt.Sprintf("Familiar with %s courts", profile.District))
	}

	if profile.CourtLevel == types.CourtHigh && advocate.HomeCourt != "" {
		if containsFold(advocate.HomeCourt, profile.State) {
			score += 5
			reasons = append(reasons, fmt.Sprintf("Home court is %s", advocate.HomeCourt))
		}
	}
	return score, reasons
}

// scoreExperience awards up to 15 points against the complexity minimum,
// plus separately tracked senior-counsel and landmark bonuses.
func (e *Engine) scoreExperience(advocate *model.Advocate, profile model.CaseProfile, score float64, reasons []string) (float64, []string) {
	minYears := profile.Complexity.Normalize().MinimumYears()
	years := advocate.ExperienceYears

	if years >= minYears {
		experience := 8 + float64(years-minYears)*0.5
		if experience > 15 {
			experience = 15
		}
		score += experience
		reasons = append(reasons, fmt.Sprintf("%d years of practice", years))
	} else {
		score += 5
	}

	if profile.RequiresSeniorCounsel && years >= 15 {
		score += 5
		reasons = append(reasons, "Eligible senior counsel")
	}

	if profile.CourtLevel == types.CourtHigh && advocate.LandmarkCaseCount() > 5 {
		score += 3
		reasons = append(reasons, "Experience with High Court matters")
	}
	return score, reasons
}

// scoreAvailability awards up to 10 points by workload ratio. A saturated
// advocate on an urgent case nets -3 from this clause.
func (e *Engine) scoreAvailability(advocate *model.Advocate, profile model.CaseProfile, score float64, reasons []string) (float64, []string) {
	ratio := advocate.LoadRatio()

	switch {
	case ratio < 0.5:
		score += 10
		reasons = append(reasons, "Excellent availability")
	case ratio < 0.7:
		score += 7
		reasons = append(reasons, "Good availability")
	case ratio < 0.9:
		score += 4
		reasons = append(reasons, "Moderate availability")
	default:
		score += 2
		if profile.Urgency == types.UrgencyUrgent {
			score -= 5
		}
	}
	return score, reasons
}

// acceptableFeeTiers maps a budget tier to the advocate fee tiers the
// client can work with.
var acceptableFeeTiers = map[types.FeeTier][]types.FeeTier{
	types.FeeProBono:    {types.FeeAffordable, types.FeeProBono},
	types.FeeAffordable: {types.FeeAffordable, types.FeeStandard},
	types.FeeStandard:   {types.FeeStandard, types.FeeAffordable, types.FeePremium},
	types.FeePremium:    {types.FeePremium, types.FeeStandard},
}

// scoreFee awards up to 10 points for budget alignment.
func (e *Engine) scoreFee(advocate *model.Advocate, profile model.CaseProfile, score float64, reasons []string) (float64, []string) {
	budget := profile.BudgetTier.Normalize()
	advocateFee := advocate.FeeTier.Normalize()

	acceptable := acceptableFeeTiers[budget]
	found := false
	for _, tier := range acceptable {
		if tier == advocateFee {
			found = true
			break
		}
	}

	switch {
	case found && advocateFee == budget:
		score += 10
		reasons = append(reasons, fmt.Sprintf("Fee structure matches budget (%s)", advocateFee))
	case found:
		score += 6
		reasons = append(reasons, fmt.Sprintf("Fee structure compatible (%s)", advocateFee))
	default:
		score += 2
	}
	return score, reasons
}

// scoreLanguages awards 2 points per shared language, capped at 5. A case
// with no stated preference earns nothing here.
func (e *Engine) scoreLanguages(advocate *model.Advocate, profile model.CaseProfile, score float64, reasons []string) (float64, []string) {
	var matched []string
	for _, lang := range profile.PreferredLanguages {
		if containsString(advocate.Languages, lang) {
			matched = append(matched, lang)
		}
	}

	if len(matched) > 0 {
		points := float64(len(matched) * 2)
		if points > 5 {
			points = 5
		}
		score += points
		reasons = append(reasons, fmt.Sprintf("Speaks %s", strings.Join(matched, ", ")))
	}
	return score, reasons
}

// scoreRating awards up to 5 points for a strong rating.
func (e *Engine) scoreRating(advocate *model.Advocate, score float64, reasons []string) (float64, []string) {
	rating := advocate.Rating
	switch {
	case rating >= 4.5:
		score += 5
		reasons = append(reasons, fmt.Sprintf("Highly rated (%s/5, %d reviews)",
			formatRating(rating), advocate.ReviewCount))
	case rating >= 4.0:
		score += 3
		reasons = append(reasons, fmt.Sprintf("Well rated (%s/5)", formatRating(rating)))
	}
	return score, reasons
}

// scoreSuccessRate awards a small silent bonus for a strong track record.
func (e *Engine) scoreSuccessRate(advocate *model.Advocate, score float64) float64 {
	switch {
	case advocate.SuccessRate >= 80:
		score += 3
	case advocate.SuccessRate >= 60:
		score += 1
	}
	return score
}

func formatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'g', -1, 64)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// containsFold reports whether needle appears in haystack, ignoring case.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// overlapsAny reports whether the tag appears inside any of the
// sub-specializations, ignoring case.
func overlapsAny(tag string, subSpecs []string) bool {
	for _, sub := range subSpecs {
		if containsFold(sub, tag) {
			return true
		}
	}
	return false
}
