package usecase

import (
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/service/matching"
	"github.com/nyaya-lab/nyayasetu/pkg/service/notify"
)

type UseCases struct {
	Conversation *ConversationUseCase
	Case         *CaseUseCase
	Request      *RequestUseCase
	Advocate     *AdvocateUseCase
	Notification *NotificationUseCase
}

type Option func(*options)

type options struct {
	assistant interfaces.Assistant
	notifier  *notify.Service
	engine    *matching.Engine
}

// WithAssistant wires the AI conversation backend. Without it, new
// conversations still work but produce no AI replies.
func WithAssistant(assistant interfaces.Assistant) Option {
	return func(o *options) {
		o.assistant = assistant
	}
}

// WithNotifier wires notification fan-out for lifecycle events
func WithNotifier(notifier *notify.Service) Option {
	return func(o *options) {
		o.notifier = notifier
	}
}

// WithEngine overrides the default matching engine
func WithEngine(engine *matching.Engine) Option {
	return func(o *options) {
		o.engine = engine
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	o := &options{
		engine: matching.New(),
	}
	for _, opt := range opts {
		opt(o)
	}

	locks := newCaseLocker()

	caseUC := &CaseUseCase{
		repo:     repo,
		engine:   o.engine,
		notifier: o.notifier,
		locks:    locks,
	}

	return &UseCases{
		Conversation: &ConversationUseCase{
			repo:      repo,
			assistant: o.assistant,
			notifier:  o.notifier,
			cases:     caseUC,
		},
		Case: caseUC,
		Request: &RequestUseCase{
			repo:     repo,
			notifier: o.notifier,
			locks:    locks,
		},
		Advocate: &AdvocateUseCase{
			repo: repo,
		},
		Notification: &NotificationUseCase{
			repo: repo,
		},
	}
}
