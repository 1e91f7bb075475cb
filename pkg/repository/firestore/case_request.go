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

type caseRequestRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCaseRequestRepository(client *firestore.Client) *caseRequestRepository {
	return &caseRequestRepository{client: client}
}

func (r *caseRequestRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_case_requests"
	}
	return "case_requests"
}

type caseRequestDoc struct {
	ID           string     `firestore:"id"`
	CaseID       string     `firestore:"case_id"`
	ClientID     string     `firestore:"client_id"`
	AdvocateID   string     `firestore:"advocate_id"`
	Status       string     `firestore:"status"`
	MatchScore   float64    `firestore:"match_score"`
	MatchReasons []string   `firestore:"match_reasons"`
	RejectReason string     `firestore:"reject_reason"`
	CreatedAt    time.Time  `firestore:"created_at"`
	RespondedAt  *time.Time `firestore:"responded_at"`
}

func toCaseRequestDoc(req *model.CaseRequest) *caseRequestDoc {
	return &caseRequestDoc{
		ID:           req.ID.String(),
		CaseID:       req.CaseID.String(),
		ClientID:     req.ClientID.String(),
		AdvocateID:   req.AdvocateID.String(),
		Status:       req.Status.String(),
		MatchScore:   req.MatchScore,
		MatchReasons: req.MatchReasons,
		RejectReason: req.RejectReason,
		CreatedAt:    req.CreatedAt,
		RespondedAt:  req.RespondedAt,
	}
}

func (d *caseRequestDoc) toModel() *model.CaseRequest {
	return &model.CaseRequest{
		ID:           types.RequestID(d.ID),
		CaseID:       types.CaseID(d.CaseID),
		ClientID:     types.UserID(d.ClientID),
		AdvocateID:   types.UserID(d.AdvocateID),
		Status:       types.RequestStatus(d.Status),
		MatchScore:   d.MatchScore,
		MatchReasons: d.MatchReasons,
		RejectReason: d.RejectReason,
		CreatedAt:    d.CreatedAt,
		RespondedAt:  d.RespondedAt,
	}
}

func (r *caseRequestRepository) Create(ctx context.Context, req *model.CaseRequest) error {
	req.CreatedAt = time.Now().UTC()

	_, err := r.client.Collection(r.collection()).Doc(req.ID.String()).Set(ctx, toCaseRequestDoc(req))
	if err != nil {
		return goerr.Wrap(err, "failed to create case request", goerr.V("id", req.ID))
	}
	return nil
}

func (r *caseRequestRepository) Get(ctx context.Context, id types.RequestID) (*model.CaseRequest, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "case request not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get case request", goerr.V("id", id))
	}

	var doc caseRequestDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode case request", goerr.V("id", id))
	}
	return doc.toModel(), nil
}

func (r *caseRequestRepository) FindPendingByCase(ctx context.Context, caseID types.CaseID) (*model.CaseRequest, error) {
	iter := r.client.Collection(r.collection()).
		Where("case_id", "==", caseID.String()).
		Where("status", "==", types.RequestPending.String()).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query pending request", goerr.V("case_id", caseID))
	}

	var doc caseRequestDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode case request")
	}
	return doc.toModel(), nil
}

func (r *caseRequestRepository) ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.CaseRequest, error) {
	iter := r.client.Collection(r.collection()).
		Where("case_id", "==", caseID.String()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return collectRequests(iter)
}

func (r *caseRequestRepository) ListByAdvocate(ctx context.Context, advocateID types.UserID, opts ...interfaces.ListRequestOption) ([]*model.CaseRequest, error) {
	cfg := interfaces.BuildListRequestConfig(opts...)

	query := r.client.Collection(r.collection()).
		Where("advocate_id", "==", advocateID.String())
	if cfg.Status() != nil {
		query = query.Where("status", "==", cfg.Status().String())
	}

	iter := query.OrderBy("created_at", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	return collectRequests(iter)
}

func collectRequests(iter *firestore.DocumentIterator) ([]*model.CaseRequest, error) {
	result := []*model.CaseRequest{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate case requests")
		}

		var doc caseRequestDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode case request")
		}
		result = append(result, doc.toModel())
	}
	return result, nil
}

func (r *caseRequestRepository) Transition(ctx context.Context, id types.RequestID, from, to types.RequestStatus, respondedAt time.Time, rejectReason string) (*model.CaseRequest, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	var updated *model.CaseRequest
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(interfaces.ErrNotFound, "case request not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get case request", goerr.V("id", id))
		}

		var doc caseRequestDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return goerr.Wrap(err, "failed to decode case request", goerr.V("id", id))
		}

		if types.RequestStatus(doc.Status) != from {
			return goerr.Wrap(interfaces.ErrConflict, "request status changed",
				goerr.V("id", id), goerr.V("expected", from), goerr.V("actual", doc.Status))
		}

		at := respondedAt.UTC()
		doc.Status = to.String()
		doc.RespondedAt = &at
		doc.RejectReason = rejectReason
		updated = doc.toModel()

		return tx.Set(docRef, &doc)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
