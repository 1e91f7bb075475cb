package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

func runAdvocateRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		fee := 5000.0
		advocate := &model.Advocate{
			ID:                     types.NewUserID(),
			Name:                   "Meera Krishnan",
			EnrollmentNumber:       "KAR/123/2010",
			States:                 []string{"Karnataka"},
			Districts:              []string{"Bengaluru Urban"},
			HomeCourt:              "Karnataka High Court",
			PrimarySpecializations: []types.MatterType{types.MatterCivil, types.MatterProperty},
			SubSpecializations:     []string{"land acquisition", "tenancy disputes"},
			ExperienceYears:        14,
			SuccessRate:            72,
			CurrentCaseLoad:        8,
			MaxCaseCapacity:        25,
			FeeTier:                types.FeeStandard,
			ConsultationFee:        &fee,
			Languages:              []string{"Kannada", "English"},
			Rating:                 4.3,
			ReviewCount:            41,
			IsVerified:             true,
			IsAvailable:            true,
		}

		gt.NoError(t, repo.Advocate().Put(ctx, advocate)).Required()

		got, err := repo.Advocate().Get(ctx, advocate.ID)
		gt.NoError(t, err).Required()

		gt.Value(t, got.Name).Equal(advocate.Name)
		gt.Array(t, got.States).Length(1)
		gt.Array(t, got.PrimarySpecializations).Length(2)
		gt.Value(t, got.FeeTier).Equal(types.FeeStandard)
		gt.Value(t, *got.ConsultationFee).Equal(fee)
		gt.Bool(t, got.CreatedAt.IsZero()).False()
		gt.Bool(t, got.UpdatedAt.IsZero()).False()
	})

	t.Run("Get returns ErrNotFound for missing advocate", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Advocate().Get(context.Background(), types.NewUserID())
		gt.Error(t, err)
		gt.B(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Put replaces an existing profile", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		advocate := &model.Advocate{
			ID:          types.NewUserID(),
			Name:        "Rohan Desai",
			IsAvailable: true,
		}
		gt.NoError(t, repo.Advocate().Put(ctx, advocate)).Required()

		advocate.IsAvailable = false
		advocate.ExperienceYears = 9
		gt.NoError(t, repo.Advocate().Put(ctx, advocate)).Required()

		got, err := repo.Advocate().Get(ctx, advocate.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, got.IsAvailable).False()
		gt.Value(t, got.ExperienceYears).Equal(9)
	})

	t.Run("List returns all advocates", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			gt.NoError(t, repo.Advocate().Put(ctx, &model.Advocate{
				ID:   types.NewUserID(),
				Name: "Advocate",
			})).Required()
		}

		got, err := repo.Advocate().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, got).Length(3)
	})

	t.Run("IncrementCaseLoad adjusts and clamps at zero", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		advocate := &model.Advocate{
			ID:              types.NewUserID(),
			Name:            "Priya Nair",
			CurrentCaseLoad: 2,
		}
		gt.NoError(t, repo.Advocate().Put(ctx, advocate)).Required()

		gt.NoError(t, repo.Advocate().IncrementCaseLoad(ctx, advocate.ID, 1)).Required()
		got, err := repo.Advocate().Get(ctx, advocate.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.CurrentCaseLoad).Equal(3)

		gt.NoError(t, repo.Advocate().IncrementCaseLoad(ctx, advocate.ID, -10)).Required()
		got, err = repo.Advocate().Get(ctx, advocate.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.CurrentCaseLoad).Equal(0)
	})

	t.Run("IncrementCaseLoad fails for missing advocate", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Advocate().IncrementCaseLoad(context.Background(), types.NewUserID(), 1)
		gt.Error(t, err)
		gt.B(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestAdvocateRepositoryMemory(t *testing.T) {
	runAdvocateRepositoryTest(t, newMemoryRepo)
}

func TestAdvocateRepositoryFirestore(t *testing.T) {
	runAdvocateRepositoryTest(t, newFirestoreRepo)
}
