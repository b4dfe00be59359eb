package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Members() MemberRepository
	Payments() PaymentRepository
}

// Gateway is a Factory bound to one long-lived store handle.
type Gateway interface {
	Factory
	HealthCheck(ctx context.Context) error
	Close()
}
