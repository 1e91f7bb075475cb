package assistant

import "github.com/m-mizutani/gollem"

const greetingText = `Welcome! I'm your legal assistant. I'm here to help you with your legal matter.

To provide you with the best assistance, I'll need to understand your situation. Let's start with some questions.

**What type of legal matter do you need help with?**

1. Civil Dispute (property, contracts, recovery)
2. Matrimonial (divorce, maintenance, custody)
3. Criminal/Bail
4. Property/Conveyancing
5. Constitutional/Writ
6. Other

Please describe your legal issue, and I'll guide you through the process.`

const systemPrompt = `You are an expert Indian legal assistant conducting a client intake interview.

## Interview Guidelines

- Conduct structured fact-gathering following proper legal interview methodology.
- Ask ONE question at a time and wait for responses.
- Collect the material facts of the matter: parties involved, dates, jurisdiction, facts, relief sought.

For each matter type, gather these essential facts:

- Civil matters: parties, cause of action, jurisdiction, relief sought, limitation period
- Matrimonial: marriage details, grounds for relief, children, assets, maintenance claims
- Criminal/bail: offense details, arrest circumstances, prior record, grounds for bail
- Property: property details, ownership chain, dispute nature, documents available
- Constitutional: fundamental right violated, state action, urgency

## Critical Instructions

1. Be systematic and ask one question at a time.
2. Work out during the interview: the matter type, the state and district of filing,
   the court level, the case complexity, and the client's budget category if discussed.
3. After gathering sufficient facts, offer to recommend suitable advocates.
4. Be professional but approachable.
5. Keep responses concise and focused.`

const extractionPrompt = `Based on the legal consultation conversation, extract the case profile.
Use null or omit any field that has not been established in the conversation.
Never guess: only include facts the client actually stated or confirmed.`

// extractionSchema constrains the structured extraction output.
func extractionSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "CaseProfileExtraction",
		Description: "Case profile facts established so far in the conversation",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"matter_type": {
				Type:        gollem.TypeString,
				Description: "Primary type of legal matter",
				Enum:        []string{"civil", "matrimonial", "criminal", "property", "constitutional", "conveyancing", "notice"},
			},
			"sub_category": {
				Type:        gollem.TypeString,
				Description: "Specific issue like 'divorce petition' or 'bail application'",
			},
			"state": {
				Type:        gollem.TypeString,
				Description: "Indian state where the case will be filed",
			},
			"district": {
				Type:        gollem.TypeString,
				Description: "District of filing",
			},
			"court_level": {
				Type:        gollem.TypeString,
				Description: "Court level for the matter",
				Enum:        []string{"district", "high_court", "supreme_court", "tribunal"},
			},
			"complexity": {
				Type:        gollem.TypeString,
				Description: "Estimated case complexity",
				Enum:        []string{"simple", "moderate", "complex", "highly_complex"},
			},
			"urgency": {
				Type:        gollem.TypeString,
				Description: "How urgent the matter is",
				Enum:        []string{"urgent", "normal", "can_wait"},
			},
			"preferred_languages": {
				Type:        gollem.TypeArray,
				Description: "Languages the client prefers to work in",
				Items:       &gollem.Parameter{Type: gollem.TypeString},
			},
			"budget_category": {
				Type:        gollem.TypeString,
				Description: "Client's budget tier if discussed",
				Enum:        []string{"premium", "standard", "affordable", "pro_bono"},
			},
			"requires_senior_counsel": {
				Type:        gollem.TypeBoolean,
				Description: "Whether the client asked for senior counsel",
			},
			"specific_expertise_needed": {
				Type:        gollem.TypeArray,
				Description: "Specific expertise tags the matter calls for",
				Items:       &gollem.Parameter{Type: gollem.TypeString},
			},
			"case_summary": {
				Type:        gollem.TypeString,
				Description: "2-3 sentence summary of the case",
			},
		},
	}
}
