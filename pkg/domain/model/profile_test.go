package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

func ptr[T any](v T) *T { return &v }

func TestProfileFragment_ApplyTo(t *testing.T) {
	t.Run("present fields overwrite", func(t *testing.T) {
		profile := model.CaseProfile{
			MatterType: types.MatterCivil,
			State:      "Delhi",
			Complexity: types.ComplexityModerate,
		}
		frag := model.ProfileFragment{
			District:   ptr("South Delhi"),
			Complexity: ptr(types.ComplexityComplex),
		}
		frag.ApplyTo(&profile)

		gt.Value(t, profile.MatterType).Equal(types.MatterCivil)
		gt.Value(t, profile.State).Equal("Delhi")
		gt.Value(t, profile.District).Equal("South Delhi")
		gt.Value(t, profile.Complexity).Equal(types.ComplexityComplex)
	})

	t.Run("absent fields never clear", func(t *testing.T) {
		profile := model.CaseProfile{
			MatterType:         types.MatterMatrimonial,
			State:              "Maharashtra",
			District:           "Mumbai",
			PreferredLanguages: []string{"Marathi"},
			ExpertiseTags:      []string{"divorce"},
		}
		model.ProfileFragment{}.ApplyTo(&profile)

		gt.Value(t, profile.MatterType).Equal(types.MatterMatrimonial)
		gt.Value(t, profile.State).Equal("Maharashtra")
		gt.Value(t, profile.District).Equal("Mumbai")
		gt.A(t, profile.PreferredLanguages).Length(1)
		gt.A(t, profile.ExpertiseTags).Length(1)
	})

	t.Run("slices replace when present", func(t *testing.T) {
		profile := model.CaseProfile{
			PreferredLanguages: []string{"Hindi"},
		}
		frag := model.ProfileFragment{
			PreferredLanguages: []string{"Tamil", "English"},
		}
		frag.ApplyTo(&profile)

		gt.A(t, profile.PreferredLanguages).Length(2).
			Has("Tamil").
			Has("English")
	})

	t.Run("senior counsel flag can be set and kept", func(t *testing.T) {
		profile := model.CaseProfile{}
		model.ProfileFragment{RequiresSeniorCounsel: ptr(true)}.ApplyTo(&profile)
		gt.B(t, profile.RequiresSeniorCounsel).True()

		model.ProfileFragment{Summary: ptr("land dispute")}.ApplyTo(&profile)
		gt.B(t, profile.RequiresSeniorCounsel).True()
	})
}

func TestProfileFragment_IsEmpty(t *testing.T) {
	gt.B(t, model.ProfileFragment{}.IsEmpty()).True()
	gt.B(t, model.ProfileFragment{State: ptr("Delhi")}.IsEmpty()).False()
	gt.B(t, model.ProfileFragment{ExpertiseTags: []string{}}.IsEmpty()).False()
}

func TestCaseProfile_HasMinimum(t *testing.T) {
	tests := []struct {
		name    string
		profile model.CaseProfile
		want    bool
	}{
		{
			name: "matter type and state",
			profile: model.CaseProfile{
				MatterType: types.MatterProperty,
				State:      "Karnataka",
			},
			want: true,
		},
		{
			name: "missing state",
			profile: model.CaseProfile{
				MatterType: types.MatterProperty,
			},
			want: false,
		},
		{
			name: "missing matter type",
			profile: model.CaseProfile{
				State: "Karnataka",
			},
			want: false,
		},
		{
			name: "invalid matter type",
			profile: model.CaseProfile{
				MatterType: types.MatterType("maritime"),
				State:      "Karnataka",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want {
				gt.B(t, tt.profile.HasMinimum()).True()
			} else {
				gt.B(t, tt.profile.HasMinimum()).False()
			}
		})
	}
}
