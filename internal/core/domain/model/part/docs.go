// Package part contains the State Catalog and the Part aggregate.
//
// A part moves through the fabrication pipeline
//
//	CREATED → IN_PRODUCTION → QUALITY_CHECK → WELDED_FLAPPED → SURFACE_PREP →
//	PAINTED → PACKED → IN_TRANSIT_TO_SITE → INSTALLED
//
// and may be diverted by a manual transition into one of four exception states
// (MISSING, RETURNED_OUT_OF_SPEC, REPAINT_NEEDED, REPAIR_NEEDED). The Catalog holds
// the default successor of every state as an explicit partial mapping that is
// checked for completeness when the catalog is built.
//
// The Part aggregate only records state changes decided elsewhere (the transition
// resolver and the assignment coordinator) and guards the delivery flag.
package part
