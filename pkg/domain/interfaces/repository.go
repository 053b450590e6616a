package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Case() CaseRepository
	Audit() AuditRepository

	// Close releases backend resources
	Close() error
}
