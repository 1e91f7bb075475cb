package types

// NotificationType represents the kind of lifecycle event a notification
// describes
type NotificationType string

const (
	NotifyCaseRequest      NotificationType = "case_request"
	NotifyAdvocateAccepted NotificationType = "advocate_accepted"
	NotifyAdvocateRejected NotificationType = "advocate_rejected"
	NotifyNewMessage       NotificationType = "new_message"
)

// IsValid checks if the notification type is valid
func (n NotificationType) IsValid() bool {
	switch n {
	case NotifyCaseRequest, NotifyAdvocateAccepted, NotifyAdvocateRejected, NotifyNewMessage:
		return true
	default:
		return false
	}
}

// String returns the string representation of the notification type
func (n NotificationType) String() string {
	return string(n)
}
