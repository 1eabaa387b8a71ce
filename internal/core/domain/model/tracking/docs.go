// Package tracking contains the TaskTracking entity: one operator's single work
// interval on a part, from "take" to "complete" or "manual transition".
//
// A TaskTracking is created open (active) and closed exactly once. Closed records
// are never mutated again; they feed operator metrics and history.
package tracking
