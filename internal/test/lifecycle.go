package test

import (
	"sync"

	"go.uber.org/fx"
)

// LifecycleRecorder captures lifecycle hooks appended during tests.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append stores hook for later invocation.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub records shutdown invocations.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown notifies tests about graceful termination.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}

// RecorderStub collects manager observations as "entity/operation/outcome".
type RecorderStub struct {
	mu     sync.Mutex
	Events []string
}

// ObserveOperation records one call.
func (r *RecorderStub) ObserveOperation(entity, operation string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	r.mu.Lock()
	r.Events = append(r.Events, entity+"/"+operation+"/"+outcome)
	r.mu.Unlock()
}
