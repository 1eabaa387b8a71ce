// Package services provides domain services that span more than one aggregate of
// the shop-floor engine.
//
// The package includes:
//   - TransitionResolver: computes the state a part moves to when a task closes
//   - AssignmentPolicy: decides whether an operator may take a part
//   - MetricsAggregator: summarizes closed task trackings for one operator
//
// All services are pure: they never touch storage and never read the clock on
// their own; callers pass "now" in.
package services
