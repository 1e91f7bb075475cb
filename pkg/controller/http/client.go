package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/nyaya-lab/nyayasetu/pkg/service/notify"
	"github.com/nyaya-lab/nyayasetu/pkg/usecase"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/errutil"
)

func (s *Server) startConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	conv, err := s.uc.Conversation.Start(ctx, clientID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, toConversationResponse(conv))
}

func (s *Server) listConversations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	convs, err := s.uc.Conversation.List(ctx, clientID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	out := make([]conversationResponse, 0, len(convs))
	for _, conv := range convs {
		out = append(out, toConversationResponse(conv))
	}
	respondJSON(ctx, w, http.StatusOK, out)
}

func (s *Server) getConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	convID := types.ConversationID(chi.URLParam(r, "conversationID"))

	conv, err := s.uc.Conversation.Get(ctx, clientID, convID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toConversationResponse(conv))
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	convID := types.ConversationID(chi.URLParam(r, "conversationID"))

	msgs, err := s.uc.Conversation.Messages(ctx, clientID, convID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toMessageResponses(msgs))
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	convID := types.ConversationID(chi.URLParam(r, "conversationID"))

	var req sendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	result, err := s.uc.Conversation.SendMessage(ctx, clientID, convID, req.Content)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, sendMessageResponse{
		ClientMessage:            notify.NewMessagePayload(result.ClientMessage),
		AIMessage:                notify.NewMessagePayload(result.AIMessage),
		CaseProfileUpdated:       result.ProfileUpdated,
		RecommendationsAvailable: result.RecommendationsAvailable,
		CaseID:                   result.CaseID.String(),
	})
}

func (s *Server) listClientCases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	cases, err := s.uc.Case.ListByClient(ctx, clientID)
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

func (s *Server) getClientCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	caseID := types.CaseID(chi.URLParam(r, "caseID"))

	c, err := s.uc.Case.Get(ctx, clientID, caseID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toCaseResponse(c))
}

func (s *Server) recommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	caseID := types.CaseID(chi.URLParam(r, "caseID"))

	candidates, err := s.uc.Case.Recommendations(ctx, clientID, caseID, queryInt(r, "limit"))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toCandidateResponses(candidates))
}

func (s *Server) selectAdvocate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	caseID := types.CaseID(chi.URLParam(r, "caseID"))

	var req selectAdvocateRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}
	advocateID := types.UserID(req.AdvocateID)
	if err := advocateID.Validate(); err != nil {
		handleError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "advocate_id is required"))
		return
	}

	created, err := s.uc.Case.SelectAdvocate(ctx, clientID, caseID, advocateID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, toRequestResponse(created))
}

func (s *Server) matchPreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req matchPreviewRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}
	profile, err := req.Profile.toModel()
	if err != nil {
		handleError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "invalid profile", goerr.V("cause", err.Error())))
		return
	}

	candidates, err := s.uc.Case.Preview(ctx, profile, req.Limit)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toCandidateResponses(candidates))
}
