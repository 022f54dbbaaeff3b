// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the storage
// interfaces defined in internal/store to fulfill application features.
//
// Each TaskService operation validates its input with the domain rules before
// touching storage, issues exactly one storage call and translates storage
// outcomes into service errors:
//   - absence is reported as ErrTaskNotFound
//   - validation failures are returned unchanged (*domain.ValidationError or
//     domain.ErrInvalidID)
//   - any other storage fault is wrapped in a *TaskServiceError
//
// The service layer depends on domain entities and store interfaces, never on
// specific infrastructure implementations.
package service
