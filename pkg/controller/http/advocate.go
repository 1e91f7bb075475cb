package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/nyaya-lab/nyayasetu/pkg/service/notify"
	"github.com/nyaya-lab/nyayasetu/pkg/usecase"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/errutil"
)

type requestDetailResponse struct {
	Request requestResponse         `json:"request"`
	Case    caseResponse            `json:"case"`
	History []notify.MessagePayload `json:"conversation_history"`
}

func (s *Server) getAdvocateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	advocateID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	adv, err := s.uc.Advocate.GetProfile(ctx, advocateID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toAdvocateResponse(adv))
}

func (s *Server) putAdvocateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	advocateID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	var req advocatePayload
	if err := decodeBody(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}
	adv, err := req.toModel(advocateID)
	if err != nil {
		handleError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "invalid profile", goerr.V("cause", err.Error())))
		return
	}

	saved, err := s.uc.Advocate.PutProfile(ctx, adv)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toAdvocateResponse(saved))
}

func (s *Server) setAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	advocateID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	var req availabilityRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	adv, err := s.uc.Advocate.SetAvailability(ctx, advocateID, req.IsAvailable)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toAdvocateResponse(adv))
}

func (s *Server) listRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	advocateID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	var opts []interfaces.ListRequestOption
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := types.ParseRequestStatus(raw)
		if err != nil {
			handleError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "invalid status filter", goerr.V("status", raw)))
			return
		}
		opts = append(opts, interfaces.WithRequestStatus(status))
	}

	reqs, err := s.uc.Request.List(ctx, advocateID, opts...)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	out := make([]requestResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toRequestResponse(req))
	}
	respondJSON(ctx, w, http.StatusOK, out)
}

func (s *Server) getRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	advocateID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	requestID := types.RequestID(chi.URLParam(r, "requestID"))

	detail, err := s.uc.Request.Get(ctx, advocateID, requestID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, requestDetailResponse{
		Request: toRequestResponse(detail.Request),
		Case:    toCaseResponse(detail.Case),
		History: toMessageResponses(detail.History),
	})
}

func (s *Server) acceptRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	advocateID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	requestID := types.RequestID(chi.URLParam(r, "requestID"))

	c, err := s.uc.Request.Accept(ctx, advocateID, requestID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toCaseResponse(c))
}

func (s *Server) rejectRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	advocateID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	requestID := types.RequestID(chi.URLParam(r, "requestID"))

	var req rejectRequestBody
	if err := decodeBody(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	c, err := s.uc.Request.Reject(ctx, advocateID, requestID, req.RejectionReason)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toCaseResponse(c))
}

func (s *Server) listAdvocateCases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	advocateID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	cases, err := s.uc.Case.ListByAdvocate(ctx, advocateID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	out := make([]caseResponse, 0, len(cases))
	for _, c := range cases {
		out = append(out, toCaseResponse(c))
	}
	respondJSON(ctx, w, http.StatusOK, out)
}

func (s *Server) getAdvocateCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	advocateID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	caseID := types.CaseID(chi.URLParam(r, "caseID"))

	c, err := s.uc.Case.GetForAdvocate(ctx, advocateID, caseID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toCaseResponse(c))
}

func (s *Server) postAdvocateMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	advocateID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	caseID := types.CaseID(chi.URLParam(r, "caseID"))

	var req sendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	msg, err := s.uc.Conversation.PostAdvocateMessage(ctx, advocateID, caseID, req.Content)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, notify.NewMessagePayload(msg))
}
