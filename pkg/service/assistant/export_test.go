package assistant

import "github.com/nyaya-lab/nyayasetu/pkg/domain/model"

// Exported for testing
var BuildTranscript = buildTranscript

type ExtractedProfile = extractedProfile

func (e extractedProfile) ToFragment() model.ProfileFragment {
	return e.toFragment()
}
