package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
)

// SeedFile is the TOML format of the advocate seed data
type SeedFile struct {
	Advocates []AdvocateSeed `toml:"advocate"`
}

// AdvocateSeed is one advocate entry in the seed file
type AdvocateSeed struct {
	ID                 string   `toml:"id"`
	Name               string   `toml:"name"`
	EnrollmentNumber   string   `toml:"enrollment_number"`
	States             []string `toml:"states"`
	Districts          []string `toml:"districts"`
	HomeCourt          string   `toml:"home_court"`
	Specializations    []string `toml:"specializations"`
	SubSpecializations []string `toml:"sub_specializations"`
	ExperienceYears    int      `toml:"experience_years"`
	LandmarkCases      string   `toml:"landmark_cases"`
	SuccessRate        float64  `toml:"success_rate"`
	MaxCaseCapacity    int      `toml:"max_case_capacity"`
	FeeTier            string   `toml:"fee_structure"`
	ConsultationFee    *float64 `toml:"consultation_fee"`
	Languages          []string `toml:"languages"`
	OfficeAddress      string   `toml:"office_address"`
	Rating             float64  `toml:"rating"`
	ReviewCount        int      `toml:"review_count"`
	IsVerified         bool     `toml:"is_verified"`
	IsAvailable        bool     `toml:"is_available"`
}

// ToModel converts the seed entry into a domain advocate
func (a *AdvocateSeed) ToModel() (*model.Advocate, error) {
	specs := make([]types.MatterType, 0, len(a.Specializations))
	for _, s := range a.Specializations {
		mt, err := types.ParseMatterType(s)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid specialization", goerr.V("id", a.ID))
		}
		specs = append(specs, mt)
	}

	var feeTier types.FeeTier
	if a.FeeTier != "" {
		parsed, err := types.ParseFeeTier(a.FeeTier)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid fee_structure", goerr.V("id", a.ID))
		}
		feeTier = parsed
	}

	adv := &model.Advocate{
		ID:                     types.UserID(a.ID),
		Name:                   a.Name,
		EnrollmentNumber:       a.EnrollmentNumber,
		States:                 a.States,
		Districts:              a.Districts,
		HomeCourt:              a.HomeCourt,
		PrimarySpecializations: specs,
		SubSpecializations:     a.SubSpecializations,
		ExperienceYears:        a.ExperienceYears,
		LandmarkCases:          a.LandmarkCases,
		SuccessRate:            a.SuccessRate,
		MaxCaseCapacity:        a.MaxCaseCapacity,
		FeeTier:                feeTier,
		ConsultationFee:        a.ConsultationFee,
		Languages:              a.Languages,
		OfficeAddress:          a.OfficeAddress,
		Rating:                 a.Rating,
		ReviewCount:            a.ReviewCount,
		IsVerified:             a.IsVerified,
		IsAvailable:            a.IsAvailable,
	}
	if err := adv.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidSeed, "invalid advocate entry", goerr.V("id", a.ID), goerr.V("cause", err.Error()))
	}
	return adv, nil
}

// Validate checks the seed file for invalid or duplicate entries
func (s *SeedFile) Validate() error {
	seen := make(map[string]bool)
	for _, a := range s.Advocates {
		if _, err := a.ToModel(); err != nil {
			return err
		}
		if seen[a.ID] {
			return goerr.Wrap(ErrDuplicateSeedID, "duplicate advocate ID", goerr.V("id", a.ID))
		}
		seen[a.ID] = true
	}
	return nil
}

// LoadSeedFile loads and validates the advocate seed data from a TOML file
func LoadSeedFile(path string) (*SeedFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(ErrSeedNotFound, "failed to read seed file", goerr.V(SeedPathKey, path), goerr.V("cause", err.Error()))
	}

	var seed SeedFile
	if err := toml.Unmarshal(data, &seed); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML seed file", goerr.V(SeedPathKey, path))
	}

	if err := seed.Validate(); err != nil {
		return nil, goerr.Wrap(err, "seed validation failed", goerr.V(SeedPathKey, path))
	}

	return &seed, nil
}
