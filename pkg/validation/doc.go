// Package validation checks a [passage.Passage] against the structural
// rules of the annotation scheme and reports every violation it finds.
//
// # Overview
//
// [Validate] returns an [iter.Seq] of [Diagnostic] values. The sequence is
// lazy: a caller that only needs to know whether a passage is valid can
// stop after the first diagnostic, which is what [IsValid] does.
//
//	for d := range validation.Validate(p, validation.DefaultOptions()) {
//	    fmt.Println(d.Rule, d.Message)
//	}
//
// # Phases
//
// Validation runs in three phases, always in this order:
//
//  1. Terminal checks: every token must have text without whitespace and
//     exactly one parent.
//  2. Head checks: each structural head must be a genuine root or a
//     linkage unit, must not hold terminals directly, and may only hold
//     parallel scenes, linkers, function words, grounds, punctuation and
//     linkage edges.
//  3. A depth-first walk from the heads. Each reachable unit is checked
//     exactly once against the rule battery, and every edge that leads back
//     onto the current path is reported as a cycle.
//
// # Rules
//
// The battery covers parent and child cardinality, punctuation placement,
// implicit units, function words, linkers, parallel edges, the
// permitted-sibling and required-sibling tables, scene material beneath
// processes and states, remote relators, top-level content and bare
// unanalyzable edges. Each diagnostic carries a [Rule] code so callers can
// filter without parsing messages.
//
// # Options
//
// [Options.Linkage] enables the linkage-unit rules; they only apply when
// at least one head is a linkage unit. [Options.Multigraph] permits
// several edges between the same parent and child.
//
// # Tag Index
//
// [TagIndex] groups a node's edges by tag in a fixed-size array keyed by
// [passage.EdgeTag], so rule lookups do not allocate maps.
package validation
