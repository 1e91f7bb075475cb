package http

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/nyaya-lab/nyayasetu/pkg/service/notify"
)

// Wire types for the REST surface. Domain models stay tag-free; this layer
// owns the snake_case JSON shape.

type conversationResponse struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	CaseID     string    `json:"case_id,omitempty"`
	AdvocateID string    `json:"advocate_id,omitempty"`
	Phase      string    `json:"phase"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toConversationResponse(conv *model.Conversation) conversationResponse {
	return conversationResponse{
		ID:         conv.ID.String(),
		ClientID:   conv.ClientID.String(),
		CaseID:     conv.CaseID.String(),
		AdvocateID: conv.AdvocateID.String(),
		Phase:      conv.Phase.String(),
		CreatedAt:  conv.CreatedAt,
		UpdatedAt:  conv.UpdatedAt,
	}
}

type caseProfilePayload struct {
	MatterType            string   `json:"matter_type,omitempty"`
	SubCategory           string   `json:"sub_category,omitempty"`
	State                 string   `json:"state,omitempty"`
	District              string   `json:"district,omitempty"`
	CourtLevel            string   `json:"court_level,omitempty"`
	Complexity            string   `json:"complexity,omitempty"`
	Urgency               string   `json:"urgency,omitempty"`
	AmountInDispute       *float64 `json:"amount_in_dispute,omitempty"`
	PreferredLanguages    []string `json:"preferred_languages,omitempty"`
	BudgetTier            string   `json:"budget_category,omitempty"`
	RequiresSeniorCounsel bool     `json:"requires_senior_counsel,omitempty"`
	ExpertiseTags         []string `json:"specific_expertise_needed,omitempty"`
	Summary               string   `json:"case_summary,omitempty"`
}

func toCaseProfilePayload(p model.CaseProfile) caseProfilePayload {
	return caseProfilePayload{
		MatterType:            p.MatterType.String(),
		SubCategory:           p.SubCategory,
		State:                 p.State,
		District:              p.District,
		CourtLevel:            p.CourtLevel.String(),
		Complexity:            p.Complexity.String(),
		Urgency:               p.Urgency.String(),
		AmountInDispute:       p.AmountInDispute,
		PreferredLanguages:    p.PreferredLanguages,
		BudgetTier:            p.BudgetTier.String(),
		RequiresSeniorCounsel: p.RequiresSeniorCounsel,
		ExpertiseTags:         p.ExpertiseTags,
		Summary:               p.Summary,
	}
}

// toModel validates the enum fields; empty fields stay at their zero value.
func (p caseProfilePayload) toModel() (model.CaseProfile, error) {
	var out model.CaseProfile

	if p.MatterType != "" {
		mt, err := types.ParseMatterType(p.MatterType)
		if err != nil {
			return out, goerr.Wrap(err, "invalid matter_type")
		}
		out.MatterType = mt
	}
	if p.CourtLevel != "" {
		cl, err := types.ParseCourtLevel(p.CourtLevel)
		if err != nil {
			return out, goerr.Wrap(err, "invalid court_level")
		}
		out.CourtLevel = cl
	}
	if p.Complexity != "" {
		c, err := types.ParseComplexity(p.Complexity)
		if err != nil {
			return out, goerr.Wrap(err, "invalid complexity")
		}
		out.Complexity = c
	}
	if p.Urgency != "" {
		u, err := types.ParseUrgency(p.Urgency)
		if err != nil {
			return out, goerr.Wrap(err, "invalid urgency")
		}
		out.Urgency = u
	}
	if p.BudgetTier != "" {
		bt, err := types.ParseFeeTier(p.BudgetTier)
		if err != nil {
			return out, goerr.Wrap(err, "invalid budget_category")
		}
		out.BudgetTier = bt
	}

	out.SubCategory = p.SubCategory
	out.State = p.State
	out.District = p.District
	out.AmountInDispute = p.AmountInDispute
	out.PreferredLanguages = p.PreferredLanguages
	out.RequiresSeniorCounsel = p.RequiresSeniorCounsel
	out.ExpertiseTags = p.ExpertiseTags
	out.Summary = p.Summary
	return out, nil
}

type caseResponse struct {
	ID                  string             `json:"id"`
	ClientID            string             `json:"client_id"`
	ConversationID      string             `json:"conversation_id,omitempty"`
	Status              string             `json:"status"`
	Profile             caseProfilePayload `json:"profile"`
	AdvocateID          string             `json:"advocate_id,omitempty"`
	SelectedAdvocateID  string             `json:"selected_advocate_id,omitempty"`
	AdvocateResponse    string             `json:"advocate_response,omitempty"`
	RejectionReason     string             `json:"rejection_reason,omitempty"`
	RejectedAdvocateIDs []string           `json:"rejected_advocate_ids,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

func toCaseResponse(c *model.Case) caseResponse {
	rejected := make([]string, 0, len(c.RejectedAdvocateIDs))
	for _, id := range c.RejectedAdvocateIDs {
		rejected = append(rejected, id.String())
	}
	return caseResponse{
		ID:                  c.ID.String(),
		ClientID:            c.ClientID.String(),
		ConversationID:      c.ConversationID.String(),
		Status:              c.Status.String(),
		Profile:             toCaseProfilePayload(c.Profile),
		AdvocateID:          c.AdvocateID.String(),
		SelectedAdvocateID:  c.SelectedAdvocateID.String(),
		AdvocateResponse:    string(c.AdvocateResponse),
		RejectionReason:     c.RejectionReason,
		RejectedAdvocateIDs: rejected,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

type advocatePayload struct {
	Name                   string   `json:"name"`
	EnrollmentNumber       string   `json:"enrollment_number,omitempty"`
	States                 []string `json:"states,omitempty"`
	Districts              []string `json:"districts,omitempty"`
	HomeCourt              string   `json:"home_court,omitempty"`
	PrimarySpecializations []string `json:"primary_specializations"`
	SubSpecializations     []string `json:"sub_specializations,omitempty"`
	ExperienceYears        int      `json:"experience_years"`
	LandmarkCases          string   `json:"landmark_cases,omitempty"`
	SuccessRate            float64  `json:"success_rate,omitempty"`
	MaxCaseCapacity        int      `json:"max_case_capacity,omitempty"`
	FeeTier                string   `json:"fee_structure"`
	ConsultationFee        *float64 `json:"consultation_fee,omitempty"`
	Languages              []string `json:"languages,omitempty"`
	OfficeAddress          string   `json:"office_address,omitempty"`
	IsAvailable            bool     `json:"is_available"`
}

func (p advocatePayload) toModel(id types.UserID) (*model.Advocate, error) {
	specs := make([]types.MatterType, 0, len(p.PrimarySpecializations))
	for _, s := range p.PrimarySpecializations {
		mt, err := types.ParseMatterType(s)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid specialization")
		}
		specs = append(specs, mt)
	}

	var feeTier types.FeeTier
	if p.FeeTier != "" {
		parsed, err := types.ParseFeeTier(p.FeeTier)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid fee_structure")
		}
		feeTier = parsed
	}

	return &model.Advocate{
		ID:                     id,
		Name:                   p.Name,
		EnrollmentNumber:       p.EnrollmentNumber,
		States:                 p.States,
		Districts:              p.Districts,
		HomeCourt:              p.HomeCourt,
		PrimarySpecializations: specs,
		SubSpecializations:     p.SubSpecializations,
		ExperienceYears:        p.ExperienceYears,
		LandmarkCases:          p.LandmarkCases,
		SuccessRate:            p.SuccessRate,
		MaxCaseCapacity:        p.MaxCaseCapacity,
		FeeTier:                feeTier,
		ConsultationFee:        p.ConsultationFee,
		Languages:              p.Languages,
		OfficeAddress:          p.OfficeAddress,
		IsAvailable:            p.IsAvailable,
	}, nil
}

type advocateResponse struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	EnrollmentNumber       string    `json:"enrollment_number,omitempty"`
	States                 []string  `json:"states,omitempty"`
	Districts              []string  `json:"districts,omitempty"`
	HomeCourt              string    `json:"home_court,omitempty"`
	PrimarySpecializations []string  `json:"primary_specializations"`
	SubSpecializations     []string  `json:"sub_specializations,omitempty"`
	ExperienceYears        int       `json:"experience_years"`
	LandmarkCases          string    `json:"landmark_cases,omitempty"`
	SuccessRate            float64   `json:"success_rate"`
	CurrentCaseLoad        int       `json:"current_case_load"`
	MaxCaseCapacity        int       `json:"max_case_capacity"`
	FeeTier                string    `json:"fee_structure"`
	ConsultationFee        *float64  `json:"consultation_fee,omitempty"`
	Languages              []string  `json:"languages,omitempty"`
	OfficeAddress          string    `json:"office_address,omitempty"`
	Rating                 float64   `json:"rating"`
	ReviewCount            int       `json:"review_count"`
	IsVerified             bool      `json:"is_verified"`
	IsAvailable            bool      `json:"is_available"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func toAdvocateResponse(a *model.Advocate) advocateResponse {
	specs := make([]string, 0, len(a.PrimarySpecializations))
	for _, s := range a.PrimarySpecializations {
		specs = append(specs, s.String())
	}
	return advocateResponse{
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

type candidateResponse struct {
	Advocate     advocateResponse `json:"advocate"`
	MatchScore   float64          `json:"match_score"`
	MatchReasons []string         `json:"match_reasons"`
}

func toCandidateResponses(candidates []*model.Candidate) []candidateResponse {
	out := make([]candidateResponse, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, candidateResponse{
			Advocate:     toAdvocateResponse(c.Advocate),
			MatchScore:   c.Score,
			MatchReasons: c.Reasons,
		})
	}
	return out
}

type requestResponse struct {
	ID           string     `json:"id"`
	CaseID       string     `json:"case_id"`
	ClientID     string     `json:"client_id"`
	AdvocateID   string     `json:"advocate_id"`
	Status       string     `json:"status"`
	MatchScore   float64    `json:"match_score"`
	MatchReasons []string   `json:"match_reasons"`
	RejectReason string     `json:"rejection_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
}

func toRequestResponse(r *model.CaseRequest) requestResponse {
	return requestResponse{
		ID:           r.ID.String(),
		CaseID:       r.CaseID.String(),
		ClientID:     r.ClientID.String(),
		AdvocateID:   r.AdvocateID.String(),
		Status:       string(r.Status),
		MatchScore:   r.MatchScore,
		MatchReasons: r.MatchReasons,
		RejectReason: r.RejectReason,
		CreatedAt:    r.CreatedAt,
		RespondedAt:  r.RespondedAt,
	}
}

func toMessageResponses(msgs []*model.Message) []notify.MessagePayload {
	out := make([]notify.MessagePayload, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, notify.NewMessagePayload(m))
	}
	return out
}

func toNotificationResponses(items []*model.Notification) []notify.NotificationPayload {
	out := make([]notify.NotificationPayload, 0, len(items))
	for _, n := range items {
		out = append(out, notify.NewNotificationPayload(n))
	}
	return out
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

type sendMessageResponse struct {
	ClientMessage            notify.MessagePayload `json:"user_message"`
	AIMessage                notify.MessagePayload `json:"ai_message"`
	CaseProfileUpdated       bool                  `json:"case_profile_updated"`
	RecommendationsAvailable bool                  `json:"recommendations_available"`
	CaseID                   string                `json:"case_id,omitempty"`
}

type selectAdvocateRequest struct {
	AdvocateID string `json:"advocate_id"`
}

type rejectRequestBody struct {
	RejectionReason string `json:"rejection_reason,omitempty"`
}

type availabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

type matchPreviewRequest struct {
	Profile caseProfilePayload `json:"profile"`
	Limit   int                `json:"limit,omitempty"`
}
