package usecase

// Recorder counts manager calls by outcome.
type Recorder interface {
	ObserveOperation(entity, operation string, ok bool)
}

// NopRecorder discards observations.
type NopRecorder struct{}

func (NopRecorder) ObserveOperation(string, string, bool) {}

const (
	entityMember  = "member"
	entityPayment = "payment"
)
