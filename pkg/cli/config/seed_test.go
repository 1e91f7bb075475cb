package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/nyaya-lab/nyayasetu/pkg/cli/config"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "advocates.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestLoadSeedFile(t *testing.T) {
	path := writeSeed(t, `
[[advocate]]
id = "adv-mehta"
name = "Adv. Priya Mehta"
states = ["Maharashtra"]
specializations = ["matrimonial", "civil"]
experience_years = 12
max_case_capacity = 35
fee_structure = "standard"
rating = 4.6
is_available = true
`)

	seed, err := config.LoadSeedFile(path)
	gt.NoError(t, err).Required()
	gt.A(t, seed.Advocates).Length(1)

	adv, err := seed.Advocates[0].ToModel()
	gt.NoError(t, err).Required()
	gt.Value(t, adv.ID).Equal(types.UserID("adv-mehta"))
	gt.Value(t, adv.FeeTier).Equal(types.FeeStandard)
	gt.A(t, adv.PrimarySpecializations).Has(types.MatterMatrimonial)
}

func TestLoadSeedFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadSeedFile(filepath.Join(t.TempDir(), "nope.toml"))
		gt.B(t, errors.Is(err, config.ErrSeedNotFound)).True()
	})

	t.Run("invalid specialization", func(t *testing.T) {
		path := writeSeed(t, `
[[advocate]]
id = "adv-x"
name = "Adv. X"
specializations = ["quantum"]
`)
		_, err := config.LoadSeedFile(path)
		gt.Error(t, err)
	})

	t.Run("duplicate id", func(t *testing.T) {
		path := writeSeed(t, `
[[advocate]]
id = "adv-x"
name = "Adv. X"
specializations = ["civil"]

[[advocate]]
id = "adv-x"
name = "Adv. Y"
specializations = ["civil"]
`)
		_, err := config.LoadSeedFile(path)
		gt.B(t, errors.Is(err, config.ErrDuplicateSeedID)).True()
	})

	t.Run("invalid fee tier", func(t *testing.T) {
		path := writeSeed(t, `
[[advocate]]
id = "adv-x"
name = "Adv. X"
fee_structure = "free"
`)
		_, err := config.LoadSeedFile(path)
		gt.Error(t, err)
	})
}
