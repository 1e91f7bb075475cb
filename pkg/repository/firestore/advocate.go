package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type advocateRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAdvocateRepository(client *firestore.Client) *advocateRepository {
	return &advocateRepository{client: client}
}

func (r *advocateRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_advocates"
	}
	return "advocates"
}

type advocateDoc struct {
	ID                     string    `firestore:"id"`
	Name                   string    `firestore:"name"`
	EnrollmentNumber       string    `firestore:"enrollment_number"`
	States                 []string  `firestore:"states"`
	Districts              []string  `firestore:"districts"`
	HomeCourt              string    `firestore:"home_court"`
	PrimarySpecializations []string  `firestore:"primary_specializations"`
	SubSpecializations     []string  `firestore:"sub_specializations"`
	ExperienceYears        int       `firestore:"experience_years"`
	LandmarkCases          string    `firestore:"landmark_cases"`
	SuccessRate            float64   `firestore:"success_rate"`
	CurrentCaseLoad        int       `firestore:"current_case_load"`
	MaxCaseCapacity        int       `firestore:"max_case_capacity"`
	FeeTier                string    `firestore:"fee_tier"`
	ConsultationFee        *float64  `firestore:"consultation_fee"`
	Languages              []string  `firestore:"languages"`
	OfficeAddress          string    `firestore:"office_address"`
	Rating                 float64   `firestore:"rating"`
	ReviewCount            int       `firestore:"review_count"`
	IsVerified             bool      `firestore:"is_verified"`
	IsAvailable            bool      `firestore:"is_available"`
	CreatedAt              time.Time `firestore:"created_at"`
	UpdatedAt              time.Time `firestore:"updated_at"`
}

func toAdvocateDoc(a *model.Advocate) *advocateDoc {
	specs := make([]string, len(a.PrimarySpecializations))
	for i, s := range a.PrimarySpecializations {
		specs[i] = s.String()
	}
	return &advocateDoc{
		ID:                     a.ID.String(),
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
		CurrentCaseLoad:        a.CurrentCaseLoad,
		MaxCaseCapacity:        a.MaxCaseCapacity,
		FeeTier:                a.FeeTier.String(),
		ConsultationFee:        a.ConsultationFee,
		Languages:              a.Languages,
		OfficeAddress:          a.OfficeAddress,
		Rating:                 a.Rating,
		ReviewCount:            a.ReviewCount,
		IsVerified:             a.IsVerified,
		IsAvailable:            a.IsAvailable,
		CreatedAt:              a.CreatedAt,
		UpdatedAt:              a.UpdatedAt,
	}
}

func (d *advocateDoc) toModel() *model.Advocate {
	specs := make([]types.MatterType, len(d.PrimarySpecializations))
	for i, s := range d.PrimarySpecializations {
		specs[i] = types.MatterType(s)
	}
	return &model.Advocate{
		ID:                     types.UserID(d.ID),
		Name:                   d.Name,
		EnrollmentNumber:       d.EnrollmentNumber,
		States:                 d.States,
		Districts:              d.Districts,
		HomeCourt:              d.HomeCourt,
		PrimarySpecializations: specs,
		SubSpecializations:     d.SubSpecializations,
		ExperienceYears:        d.ExperienceYears,
		LandmarkCases:          d.LandmarkCases,
		SuccessRate:            d.SuccessRate,
		CurrentCaseLoad:        d.CurrentCaseLoad,
		MaxCaseCapacity:        d.MaxCaseCapacity,
		FeeTier:                types.FeeTier(d.FeeTier),
		ConsultationFee:        d.ConsultationFee,
		Languages:              d.Languages,
		OfficeAddress:          d.OfficeAddress,
		Rating:                 d.Rating,
		ReviewCount:            d.ReviewCount,
		IsVerified:             d.IsVerified,
		IsAvailable:            d.IsAvailable,
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}
}

func (r *advocateRepository) Put(ctx context.Context, advocate *model.Advocate) error {
	now := time.Now().UTC()
	doc := toAdvocateDoc(advocate)
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	_, err := r.client.Collection(r.collection()).Doc(advocate.ID.String()).Set(ctx, doc)
	if err != nil {
		return goerr.Wrap(err, "failed to put advocate", goerr.V("id", advocate.ID))
	}
	return nil
}

func (r *advocateRepository) Get(ctx context.Context, id types.UserID) (*model.Advocate, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "advocate not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get advocate", goerr.V("id", id))
	}

	var doc advocateDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode advocate", goerr.V("id", id))
	}
	return doc.toModel(), nil
}

func (r *advocateRepository) List(ctx context.Context) ([]*model.Advocate, error) {
	iter := r.client.Collection(r.collection()).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	result := []*model.Advocate{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate advocates")
		}

		var doc advocateDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode advocate")
		}
		result = append(result, doc.toModel())
	}
	return result, nil
}

func (r *advocateRepository) IncrementCaseLoad(ctx context.Context, id types.UserID, delta int) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(interfaces.ErrNotFound, "advocate not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get advocate", goerr.V("id", id))
		}

		var doc advocateDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return goerr.Wrap(err, "failed to decode advocate", goerr.V("id", id))
		}

		load := doc.CurrentCaseLoad + delta
		if load < 0 {
			load = 0
		}
		return tx.Update(docRef, []firestore.Update{
			{Path: "current_case_load", Value: load},
			{Path: "updated_at", Value: time.Now().UTC()},
		})
	})
	if err != nil {
		return goerr.Wrap(err, "failed to increment case load", goerr.V("id", id))
	}
	return nil
}
