// Package passage provides the graph model for a semantically annotated
// sentence: a rooted, labelled DAG whose leaves are text tokens.
//
// # Overview
//
// A [Passage] owns two layers. The terminal layer ("0") holds the tokens of
// the sentence in order; the structural layer ("1") holds the units that
// group them. Every node is addressed by a stable string ID of the form
// "<layer>.<n>" and lives in an arena owned by the passage. Edges are plain
// records of (parent, child, tags, remote) and never own the nodes they
// reference, which is what lets a unit be shared by several parents.
//
// # Basic Usage
//
// [New] creates a passage with the structural root "1.1" already registered
// as a head. The builder helpers mirror how annotations are written:
//
//	p := passage.New("120")
//	john, _ := p.AddTerminal("John", false)
//	came, _ := p.AddTerminal("came", false)
//	h, _ := p.AddFNode("", passage.TagParallelScene)
//	a, _ := p.AddFNode(h.ID, passage.TagParticipant)
//	pr, _ := p.AddFNode(h.ID, passage.TagProcess)
//	_ = p.Attach(a.ID, john.ID)
//	_ = p.Attach(pr.ID, came.ID)
//
// Lower-level importers use [Passage.AddNode], [Passage.AddEdge] and
// [Passage.AddHead] directly.
//
// # Tags
//
// Node tags ([NodeTag]) are coarse: a terminal is a Word or Punctuation; a
// unit is foundational (FN), linkage (LKG) or punctuation (PNCT). Edge tags
// ([EdgeTag]) form a closed enumeration of relation categories. An edge may
// carry several tags at once, a bundle such as "A+T". [TagSet] is a bitmask
// over the enumeration and always renders in declaration order.
//
// # Primary and Remote Edges
//
// Non-remote ("primary") edges form the backbone tree. Remote edges add
// secondary references to units that already have a primary parent.
// Construction does not enforce either property: cycles, orphans, parallel
// edges and empty tag lists are all representable so that the validation
// package can report them.
//
// # Concurrency
//
// A Passage is not safe for concurrent mutation. Once built it may be read
// from any number of goroutines.
package passage
