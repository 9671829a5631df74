// Package loader registers HTTP features with the application.
//
// Each feature bundles a service and its handler and implements Feature:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// Manager keeps features in registration order. LoadAll loads every enabled
// feature, rejects duplicate names and stops at the first failure.
//
// The resolver registers 'item', 'search' and 'snapshot'.
package loader
