// Package vessel defines the input record of the vessel mesh engine:
// profile control points, base parameters, and the error and warning
// values the engine reports back to its callers.
package vessel
