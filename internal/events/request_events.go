package events

const (
	RequestCreated = "request.created"
	RequestDecided = "request.decided"
)

// RequestCreatedEvent - публикуется после коммита новой заявки.
type RequestCreatedEvent struct {
	RequestID  uint64
	EmployeeID uint64
	AssetID    uint64
	IssueType  string
}

func (e RequestCreatedEvent) Name() string {
	return RequestCreated
}

// RequestDecidedEvent - публикуется после коммита решения по заявке.
// AssetStatus пуст, если статус актива не менялся.
type RequestDecidedEvent struct {
	RequestID   uint64
	EmployeeID  uint64
	AssetID     uint64
	ActorID     uint64
	OldStatus   string
	NewStatus   string
	AssetStatus string
}

func (e RequestDecidedEvent) Name() string {
	return RequestDecided
}
