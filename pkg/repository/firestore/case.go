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

type caseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCaseRepository(client *firestore.Client) *caseRepository {
	return &caseRepository{client: client}
}

func (r *caseRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_cases"
	}
	return "cases"
}

type caseProfileDoc struct {
	MatterType            string   `firestore:"matter_type"`
	SubCategory           string   `firestore:"sub_category"`
	State                 string   `firestore:"state"`
	District              string   `firestore:"district"`
	CourtLevel            string   `firestore:"court_level"`
	Complexity            string   `firestore:"complexity"`
	Urgency               string   `firestore:"urgency"`
	AmountInDispute       *float64 `firestore:"amount_in_dispute"`
	PreferredLanguages    []string `firestore:"preferred_languages"`
	BudgetTier            string   `firestore:"budget_tier"`
	RequiresSeniorCounsel bool     `firestore:"requires_senior_counsel"`
	ExpertiseTags         []string `firestore:"expertise_tags"`
	Summary               string   `firestore:"summary"`
}

type caseDoc struct {
	ID                  string         `firestore:"id"`
	ClientID            string         `firestore:"client_id"`
	ConversationID      string         `firestore:"conversation_id"`
	Status              string         `firestore:"status"`
	Profile             caseProfileDoc `firestore:"profile"`
	AdvocateID          string         `firestore:"advocate_id"`
	SelectedAdvocateID  string         `firestore:"selected_advocate_id"`
	AdvocateResponse    string         `firestore:"advocate_response"`
	RejectionReason     string         `firestore:"rejection_reason"`
	RejectedAdvocateIDs []string       `firestore:"rejected_advocate_ids"`
	CreatedAt           time.Time      `firestore:"created_at"`
	UpdatedAt           time.Time      `firestore:"updated_at"`
}

func toCaseDoc(c *model.Case) *caseDoc {
	rejected := make([]string, len(c.RejectedAdvocateIDs))
	for i, id := range c.RejectedAdvocateIDs {
		rejected[i] = id.String()
	}
	return &caseDoc{
		ID:             c.ID.String(),
		ClientID:       c.ClientID.String(),
		ConversationID: c.ConversationID.String(),
		Status:         c.Status.String(),
		Profile: caseProfileDoc{
			MatterType:            c.Profile.MatterType.String(),
			SubCategory:           c.Profile.SubCategory,
			State:                 c.Profile.State,
			District:              c.Profile.District,
			CourtLevel:            c.Profile.CourtLevel.String(),
			Complexity:            c.Profile.Complexity.String(),
			Urgency:               c.Profile.Urgency.String(),
			AmountInDispute:       c.Profile.AmountInDispute,
			PreferredLanguages:    c.Profile.PreferredLanguages,
			BudgetTier:            c.Profile.BudgetTier.String(),
			RequiresSeniorCounsel: c.Profile.RequiresSeniorCounsel,
			ExpertiseTags:         c.Profile.ExpertiseTags,
			Summary:               c.Profile.Summary,
		},
		AdvocateID:          c.AdvocateID.String(),
		SelectedAdvocateID:  c.SelectedAdvocateID.String(),
		AdvocateResponse:    c.AdvocateResponse.String(),
		RejectionReason:     c.RejectionReason,
		RejectedAdvocateIDs: rejected,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func (d *caseDoc) toModel() *model.Case {
	rejected := make([]types.UserID, len(d.RejectedAdvocateIDs))
	for i, id := range d.RejectedAdvocateIDs {
		rejected[i] = types.UserID(id)
	}
	return &model.Case{
		ID:             types.CaseID(d.ID),
		ClientID:       types.UserID(d.ClientID),
		ConversationID: types.ConversationID(d.ConversationID),
		Status:         types.CaseStatus(d.Status),
		Profile: model.CaseProfile{
			MatterType:            types.MatterType(d.Profile.MatterType),
			SubCategory:           d.Profile.SubCategory,
			State:                 d.Profile.State,
			District:              d.Profile.District,
			CourtLevel:            types.CourtLevel(d.Profile.CourtLevel),
			Complexity:            types.Complexity(d.Profile.Complexity),
			Urgency:               types.Urgency(d.Profile.Urgency),
			AmountInDispute:       d.Profile.AmountInDispute,
			PreferredLanguages:    d.Profile.PreferredLanguages,
			BudgetTier:            types.FeeTier(d.Profile.BudgetTier),
			RequiresSeniorCounsel: d.Profile.RequiresSeniorCounsel,
			ExpertiseTags:         d.Profile.ExpertiseTags,
			Summary:               d.Profile.Summary,
		},
		AdvocateID:          types.UserID(d.AdvocateID),
		SelectedAdvocateID:  types.UserID(d.SelectedAdvocateID),
		AdvocateResponse:    types.RequestStatus(d.AdvocateResponse),
		RejectionReason:     d.RejectionReason,
		RejectedAdvocateIDs: rejected,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.client.Collection(r.collection()).Doc(c.ID.String()).Set(ctx, toCaseDoc(c))
	if err != nil {
		return goerr.Wrap(err, "failed to create case", goerr.V("id", c.ID))
	}
	return nil
}

func (r *caseRepository) Get(ctx context.Context, id types.CaseID) (*model.Case, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get case", goerr.V("id", id))
	}

	var doc caseDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode case", goerr.V("id", id))
	}
	return doc.toModel(), nil
}

func (r *caseRepository) GetByConversation(ctx context.Context, conversationID types.ConversationID) (*model.Case, error) {
	iter := r.client.Collection(r.collection()).
		Where("conversation_id", "==", conversationID.String()).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query case by conversation",
			goerr.V("conversation_id", conversationID))
	}

	var doc caseDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode case")
	}
	return doc.toModel(), nil
}

func (r *caseRepository) ListByClient(ctx context.Context, clientID types.UserID) ([]*model.Case, error) {
	return r.list(ctx, "client_id", clientID.String())
}

func (r *caseRepository) ListByAdvocate(ctx context.Context, advocateID types.UserID) ([]*model.Case, error) {
	return r.list(ctx, "advocate_id", advocateID.String())
}

func (r *caseRepository) list(ctx context.Context, field, value string) ([]*model.Case, error) {
	iter := r.client.Collection(r.collection()).
		Where(field, "==", value).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	result := []*model.Case{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate cases", goerr.V(field, value))
		}

		var doc caseDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode case")
		}
		result = append(result, doc.toModel())
	}
	return result, nil
}

func (r *caseRepository) Update(ctx context.Context, c *model.Case) error {
	docRef := r.client.Collection(r.collection()).Doc(c.ID.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("id", c.ID))
		}
		return goerr.Wrap(err, "failed to get case", goerr.V("id", c.ID))
	}

	c.UpdatedAt = time.Now().UTC()
	if _, err := docRef.Set(ctx, toCaseDoc(c)); err != nil {
		return goerr.Wrap(err, "failed to update case", goerr.V("id", c.ID))
	}
	return nil
}
