// Package mocks provides centralized mock implementations for testing.
//
// Each mock exposes a function field per interface method. When a field is
// nil the mock falls back to a default behavior: the store mocks keep
// records in memory and return the store package's sentinel errors, so
// handler and service tests can run whole flows without a database.
//
// Usage:
//
//	users := mocks.NewMockUserStore()
//	users.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
//	    return nil, errors.New("database unavailable")
//	}
package mocks
