package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Advocate() AdvocateRepository
	Case() CaseRepository
	CaseRequest() CaseRequestRepository
	Conversation() ConversationRepository
	Message() MessageRepository
	Notification() NotificationRepository

	Close() error
}
