package matching_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/nyaya-lab/nyayasetu/pkg/service/matching"
)

func delhiCivilAdvocate() *model.Advocate {
	return &model.Advocate{
		ID:                     types.UserID("adv-delhi-civil"),
		Name:                   "Vikram Sethi",
		States:                 []string{"Delhi"},
		Districts:              []string{"South Delhi"},
		PrimarySpecializations: []types.MatterType{types.MatterCivil},
		ExperienceYears:        19,
		CurrentCaseLoad:        28,
		MaxCaseCapacity:        40,
		FeeTier:                types.FeePremium,
		Rating:                 4.8,
		ReviewCount:            120,
		IsAvailable:            true,
	}
}

func delhiCivilProfile() model.CaseProfile {
	return model.CaseProfile{
		MatterType: types.MatterCivil,
		State:      "Delhi",
		District:   "South Delhi",
		CourtLevel: types.CourtDistrict,
		Complexity: types.ComplexityModerate,
		BudgetTier: types.FeePremium,
	}
}

func TestEngine_Score_Breakdown(t *testing.T) {
	engine := matching.New()

	// Specialization 20, geography 10 (state) + 10 (district), experience
	// min(15, 8+0.5*14)=15, availability 28/40=0.70 exactly -> moderate
	// bucket +4, fee exact +10, rating >=4.5 +5. Total 74.
	t.Run("delhi civil scenario totals 74", func(t *testing.T) {
		score, reasons := engine.Score(delhiCivilAdvocate(), delhiCivilProfile())

		gt.Value(t, score).Equal(74.0)
		gt.A(t, reasons).
			Has("Specializes in civil matters").
			Has("Practices in Delhi").
			Has("Familiar with South Delhi courts").
			Has("19 years of practice").
			Has("Moderate availability").
			Has("Fee structure matches budget (premium)").
			Has("Highly rated (4.8/5, 120 reviews)")
	})

	t.Run("district match adds 10", func(t *testing.T) {
		outOfDistrict := delhiCivilAdvocate()
		outOfDistrict.Districts = nil

		score, reasons := engine.Score(outOfDistrict, delhiCivilProfile())
		gt.Value(t, score).Equal(64.0)
		gt.A(t, reasons).NotHas("Familiar with South Delhi courts")

		full, _ := engine.Score(delhiCivilAdvocate(), delhiCivilProfile())
		gt.Value(t, full - score).Equal(10.0)
	})

	t.Run("workload ratio 0.70 lands in the moderate bucket", func(t *testing.T) {
		tight := delhiCivilAdvocate()
		tight.CurrentCaseLoad = 28
		tight.MaxCaseCapacity = 40
		scoreAt70, _ := engine.Score(tight, delhiCivilProfile())

		lighter := delhiCivilAdvocate()
		lighter.CurrentCaseLoad = 27
		scoreBelow70, _ := engine.Score(lighter, delhiCivilProfile())

		gt.Value(t, scoreBelow70 - scoreAt70).Equal(3.0)
	})

	t.Run("saturated advocate on urgent case loses 3 net", func(t *testing.T) {
		advocate := delhiCivilAdvocate()
		advocate.CurrentCaseLoad = 40

		normal := delhiCivilProfile()
		scoreNormal, _ := engine.Score(advocate, normal)

		urgent := delhiCivilProfile()
		urgent.Urgency = types.UrgencyUrgent
		scoreUrgent, _ := engine.Score(advocate, urgent)

		gt.Value(t, scoreNormal - scoreUrgent).Equal(5.0)
	})
}

func TestEngine_Score_HardFilters(t *testing.T) {
	engine := matching.New()

	t.Run("wrong jurisdiction zeroes the score", func(t *testing.T) {
		advocate := delhiCivilAdvocate()
		profile := delhiCivilProfile()
		profile.State = "Kerala"

		score, reasons := engine.Score(advocate, profile)
		gt.Value(t, score).Equal(0.0)
		gt.A(t, reasons).Length(1).Has("Not available in Kerala")
	})

	t.Run("unavailable advocate zeroes the score", func(t *testing.T) {
		advocate := delhiCivilAdvocate()
		advocate.IsAvailable = false

		score, reasons := engine.Score(advocate, delhiCivilProfile())
		gt.Value(t, score).Equal(0.0)
		gt.A(t, reasons).Length(1).Has("Currently not accepting new cases")
	})

	t.Run("empty jurisdiction list passes the filter", func(t *testing.T) {
		advocate := delhiCivilAdvocate()
		advocate.States = nil

		score, reasons := engine.Score(advocate, delhiCivilProfile())
		// No geography points without a listed state, but no zeroing
		// either.
		gt.Number(t, score).Greater(0)
		gt.A(t, reasons).NotHas("Practices in Delhi")
	})

	t.Run("case without jurisdiction skips the filter", func(t *testing.T) {
		advocate := delhiCivilAdvocate()
		profile := delhiCivilProfile()
		profile.State = ""

		score, _ := engine.Score(advocate, profile)
		gt.Number(t, score).Greater(0)
	})
}

func TestEngine_Score_Specialization(t *testing.T) {
	engine := matching.New()

	t.Run("expertise tag substring match, first hit only", func(t *testing.T) {
		advocate := delhiCivilAdvocate()
		advocate.SubSpecializations = []string{"Land Acquisition Disputes", "Tenancy Law"}

		profile := delhiCivilProfile()
		profile.ExpertiseTags = []string{"land acquisition", "tenancy"}

		score, reasons := engine.Score(advocate, profile)
		gt.Value(t, score).Equal(79.0)
		gt.A(t, reasons).
			Has("Expert in land acquisition").
			NotHas("Expert in tenancy")
	})

	t.Run("sub-category bidirectional substring match", func(t *testing.T) {
		advocate := delhiCivilAdvocate()
		advocate.SubSpecializations = []string{"eviction"}

		profile := delhiCivilProfile()
		profile.SubCategory = "Eviction and Tenancy"

		_, reasons := engine.Score(advocate, profile)
		gt.A(t, reasons).Has("Handles Eviction and Tenancy cases regularly")
	})

	t.Run("no matter match but expertise overlap gives 10", func(t *testing.T) {
		advocate := delhiCivilAdvocate()
		advocate.PrimarySpecializations = []types.MatterType{types.MatterCriminal}
		advocate.SubSpecializations = []string{"Consumer Protection"}

		profile := delhiCivilProfile()
		profile.ExpertiseTags = []string{"consumer protection"}

		_, reasons := engine.Score(advocate, profile)
		gt.A(t, reasons).
			Has("Has experience with consumer protection").
			NotHas("Specializes in civil matters")
	})
}

func TestEngine_Score_ExperienceAndBonuses(t *testing.T) {
	engine := matching.New()

	t.Run("below minimum years gives flat 5", func(t *testing.T) {
		junior := delhiCivilAdvocate()
		junior.ExperienceYears = 2

		profile := delhiCivilProfile()
		profile.Complexity = types.ComplexityComplex

		_, reasons := engine.Score(junior, profile)
		gt.A(t, reasons).NotHas("2 years of practice")
	})

	t.Run("senior counsel bonus needs 15 years", func(t *testing.T) {
		profile := delhiCivilProfile()
		profile.RequiresSeniorCounsel = true

		senior := delhiCivilAdvocate()
		scoreSenior, reasons := engine.Score(senior, profile)
		gt.A(t, reasons).Has("Eligible senior counsel")

		junior := delhiCivilAdvocate()
		junior.ExperienceYears = 14
		scoreJunior, _ := engine.Score(junior, profile)

		// 19y vs 14y: base experience differs by 2.5, senior bonus by 5.
		gt.Value(t, scoreSenior - scoreJunior).Equal(7.5)
	})

	t.Run("landmark bonus only for high court with more than 5 cases", func(t *testing.T) {
		advocate := delhiCivilAdvocate()
		advocate.LandmarkCases = "a, b, c, d, e, f"
		advocate.HomeCourt = "Delhi High Court"

		profile := delhiCivilProfile()
		profile.CourtLevel = types.CourtHigh

		_, reasons := engine.Score(advocate, profile)
		gt.A(t, reasons).
			Has("Experience with High Court matters").
			Has("Home court is Delhi High Court")

		fewer := delhiCivilAdvocate()
		fewer.LandmarkCases = "a, b"
		_, reasons = engine.Score(fewer, profile)
		gt.A(t, reasons).NotHas("Experience with High Court matters")
	})
}

func TestEngine_Score_FeeAndLanguage(t *testing.T) {
	engine := matching.New()

	t.Run("compatible but not exact fee gives 6", func(t *testing.T) {
		advocate := delhiCivilAdvocate()
		advocate.FeeTier = types.FeeStandard

		score, reasons := engine.Score(advocate, delhiCivilProfile())
		gt.Value(t, score).Equal(70.0)
		gt.A(t, reasons).Has("Fee structure compatible (standard)")
	})

	t.Run("incompatible fee gives 2", func(t *testing.T) {
		advocate := delhiCivilAdvocate()
		advocate.FeeTier = types.FeePremium

		profile := delhiCivilProfile()
		profile.BudgetTier = types.FeeProBono

		score, _ := engine.Score(advocate, profile)
		gt.Value(t, score).Equal(66.0)
	})

	t.Run("no preferred languages means no language points", func(t *testing.T) {
		advocate := delhiCivilAdvocate()
		advocate.Languages = []string{"Hindi", "English"}

		score, reasons := engine.Score(advocate, delhiCivilProfile())
		gt.Value(t, score).Equal(74.0)
		for _, r := range reasons {
			gt.B(t, len(r) > 6 && r[:6] == "Speaks").False()
		}
	})

	t.Run("language intersection capped at 5", func(t *testing.T) {
		advocate := delhiCivilAdvocate()
		advocate.Languages = []string{"Hindi", "English", "Punjabi"}

		profile := delhiCivilProfile()
		profile.PreferredLanguages = []string{"Hindi", "English", "Punjabi"}

		score, reasons := engine.Score(advocate, profile)
		gt.Value(t, score).Equal(79.0)
		gt.A(t, reasons).Has("Speaks Hindi, English, Punjabi")
	})
}

func TestEngine_Score_Monotonicity(t *testing.T) {
	engine := matching.New()

	// Adding a qualifying fact never lowers the score (outside the
	// saturated-urgent branch).
	base, _ := engine.Score(delhiCivilAdvocate(), delhiCivilProfile())

	better := delhiCivilAdvocate()
	better.SuccessRate = 85
	withMore, _ := engine.Score(better, delhiCivilProfile())

	gt.Number(t, withMore).GreaterOrEqual(base)
}

func TestEngine_Recommend(t *testing.T) {
	engine := matching.New()

	t.Run("filters zero scores and sorts descending", func(t *testing.T) {
		strong := delhiCivilAdvocate()
		strong.ID = types.UserID("adv-strong")

		weak := delhiCivilAdvocate()
		weak.ID = types.UserID("adv-weak")
		weak.PrimarySpecializations = []types.MatterType{types.MatterCriminal}
		weak.Rating = 3.0

		excluded := delhiCivilAdvocate()
		excluded.ID = types.UserID("adv-kerala")
		excluded.States = []string{"Kerala"}

		got := engine.Recommend([]*model.Advocate{weak, excluded, strong}, delhiCivilProfile(), 0)
		gt.A(t, got).Length(2)
		gt.Value(t, got[0].Advocate.ID).Equal(types.UserID("adv-strong"))
		gt.Value(t, got[1].Advocate.ID).Equal(types.UserID("adv-weak"))
	})

	t.Run("ties break by rating then reviews then ID", func(t *testing.T) {
		a := delhiCivilAdvocate()
		a.ID = types.UserID("adv-b")
		b := delhiCivilAdvocate()
		b.ID = types.UserID("adv-a")

		got := engine.Recommend([]*model.Advocate{a, b}, delhiCivilProfile(), 0)
		gt.A(t, got).Length(2)
		gt.Value(t, got[0].Advocate.ID).Equal(types.UserID("adv-a"))

		c := delhiCivilAdvocate()
		c.ID = types.UserID("adv-c")
		c.ReviewCount = 500

		got = engine.Recommend([]*model.Advocate{a, b, c}, delhiCivilProfile(), 0)
		gt.Value(t, got[0].Advocate.ID).Equal(types.UserID("adv-c"))
	})

	t.Run("limit defaults to 5", func(t *testing.T) {
		var advocates []*model.Advocate
		for i := 0; i < 8; i++ {
			a := delhiCivilAdvocate()
			a.ID = types.UserID(string(rune('a'+i)) + "-adv")
			advocates = append(advocates, a)
		}

		got := engine.Recommend(advocates, delhiCivilProfile(), 0)
		gt.A(t, got).Length(5)

		got = engine.Recommend(advocates, delhiCivilProfile(), 7)
		gt.A(t, got).Length(7)
	})
}
