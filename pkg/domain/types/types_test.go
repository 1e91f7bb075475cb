package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

func TestNewIDs(t *testing.T) {
	caseID := types.NewCaseID()
	gt.B(t, caseID != "").True()
	gt.Value(t, caseID).NotEqual(types.NewCaseID())

	convID := types.NewConversationID()
	gt.B(t, convID != "").True()

	reqID := types.NewRequestID()
	gt.B(t, reqID != "").True()
}

func TestComplexity_MinimumYears(t *testing.T) {
	tests := []struct {
		name       string
		complexity types.Complexity
		want       int
	}{
		{
			name:       "simple",
			complexity: types.ComplexitySimple,
			want:       3,
		},
		{
			name:       "moderate",
			complexity: types.ComplexityModerate,
			want:       5,
		},
		{
			name:       "complex",
			complexity: types.ComplexityComplex,
			want:       10,
		},
		{
			name:       "highly complex",
			complexity: types.ComplexityHighlyComplex,
			want:       15,
		},
		{
			name:       "unknown falls back to moderate",
			complexity: types.Complexity("unheard_of"),
			want:       5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.complexity.MinimumYears()).Equal(tt.want)
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	gt.Value(t, types.Complexity("").Normalize()).Equal(types.ComplexityModerate)
	gt.Value(t, types.Urgency("").Normalize()).Equal(types.UrgencyNormal)
	gt.Value(t, types.FeeTier("").Normalize()).Equal(types.FeeStandard)
	gt.Value(t, types.CourtLevel("").Normalize()).Equal(types.CourtDistrict)
	gt.Value(t, types.MessageType("").Normalize()).Equal(types.MessageText)

	gt.Value(t, types.ComplexityComplex.Normalize()).Equal(types.ComplexityComplex)
	gt.Value(t, types.UrgencyUrgent.Normalize()).Equal(types.UrgencyUrgent)
}

func TestRequestStatus_IsTerminal(t *testing.T) {
	gt.B(t, types.RequestPending.IsTerminal()).False()
	gt.B(t, types.RequestAccepted.IsTerminal()).True()
	gt.B(t, types.RequestRejected.IsTerminal()).True()
}

func TestMatterType_IsValid(t *testing.T) {
	for _, mt := range types.AllMatterTypes() {
		gt.B(t, mt.IsValid()).True()
	}
	gt.B(t, types.MatterType("maritime").IsValid()).False()
	gt.B(t, types.MatterType("").IsValid()).False()
}
