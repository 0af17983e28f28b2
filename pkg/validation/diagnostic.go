package validation

import (
	"fmt"
	"iter"
)

// Rule names the category of a violated rule. Codes are grouped by prefix:
// terminal.*, root.*, walk.*, parent.*, child.*, sibling.*, required.*,
// linkage.*, foundational.* and a handful of single-purpose rules.
type Rule string

const (
	RuleTerminalEmpty      Rule = "terminal.empty"
	RuleTerminalWhitespace Rule = "terminal.whitespace"
	RuleTerminalOrphan     Rule = "terminal.orphan"
	RuleTerminalReentrant  Rule = "terminal.reentrant"

	RuleRootExtra            Rule = "root.extra"
	RuleRootTerminalChildren Rule = "root.terminal-children"
	RuleRootChildren         Rule = "root.children"

	RuleCycle Rule = "walk.cycle"

	RuleMultiplePrimaryParents Rule = "parent.multiple-primary"
	RuleRemoteOnlyParents      Rule = "parent.remote-only"
	RuleParentCardinality      Rule = "parent.cardinality"
	RuleChildCardinality       Rule = "child.cardinality"

	RulePunctuationEdge   Rule = "punct.edge"
	RulePunctuationParent Rule = "punct.parent"

	RuleImplicitChildren  Rule = "unit.implicit-children"
	RuleNoPrimaryChildren Rule = "unit.no-primary-children"

	RuleFunctionChildren     Rule = "function.children"
	RuleLinkerWithoutLink    Rule = "linker.no-relation"
	RuleMultigraph           Rule = "multigraph.parallel"
	RuleNonSceneChildren     Rule = "scene.sub-non-scene"
	RuleUnanalyzableChildren Rule = "unanalyzable.children"
	RuleGroundChildren       Rule = "ground.children"
	RuleParallelChildren     Rule = "parallel-scene.children"

	RuleStateSiblings       Rule = "sibling.state"
	RuleAdverbialSiblings   Rule = "sibling.adverbial"
	RuleCenterSiblings      Rule = "sibling.center"
	RuleParticipantSiblings Rule = "sibling.participant"
	RuleSceneSiblings       Rule = "sibling.scene"
	RuleElaboratorSiblings  Rule = "sibling.elaborator"
	RuleQuantifierSiblings  Rule = "sibling.quantifier"
	RuleConnectorSiblings   Rule = "sibling.connector"
	RuleProcessSiblings     Rule = "sibling.process"

	RuleRequiresCenter       Rule = "required.center"
	RuleRequiresMainRelation Rule = "required.main-relation"
	RuleRequiresParallel     Rule = "required.parallel-scene"

	RuleSceneDescendant   Rule = "descendant.scene"
	RuleRemoteFunction    Rule = "remote.function"
	RuleTopLevelChildren  Rule = "toplevel.children"
	RuleUnanalyzableAlone Rule = "unanalyzable.alone"

	RuleLinkageNonRoot    Rule = "linkage.non-root"
	RuleLinkageChildren   Rule = "linkage.children"
	RuleLinkageNoRelation Rule = "linkage.no-relation"

	RuleParticipantsWithoutScene Rule = "foundational.participants"
	RuleProcessAndState          Rule = "foundational.process-state"
	RuleParallelSceneSiblings    Rule = "foundational.parallel-scenes"
	RuleLinkageChildrenOfUnit    Rule = "foundational.linkage-children"
)

// Diagnostic is a single structural violation. Message is the
// human-readable rendering; Rule and Node allow filtering without parsing it.
type Diagnostic struct {
	Rule    Rule   `json:"rule"`
	Node    string `json:"node"`
	Message string `json:"message"`
}

// String returns the diagnostic message.
func (d Diagnostic) String() string { return d.Message }

// Options configures which optional rule groups run.
type Options struct {
	// Linkage enables the linkage-unit rules. They additionally require at
	// least one head to be a linkage unit.
	Linkage bool `json:"linkage" toml:"linkage"`

	// Multigraph permits parallel edges between the same parent and child.
	// When false, such edges are reported.
	Multigraph bool `json:"multigraph" toml:"multigraph"`
}

// DefaultOptions returns linkage rules on and multigraphs disallowed.
func DefaultOptions() Options {
	return Options{Linkage: true}
}

// Collect drains seq into a slice.
func Collect(seq iter.Seq[Diagnostic]) []Diagnostic {
	var out []Diagnostic
	for d := range seq {
		out = append(out, d)
	}
	return out
}

// Messages drains seq into a slice of messages.
func Messages(seq iter.Seq[Diagnostic]) []string {
	var out []string
	for d := range seq {
		out = append(out, d.Message)
	}
	return out
}

// First returns at most n diagnostics from seq and reports whether more
// were available. Iteration stops as soon as the answer is known.
func First(seq iter.Seq[Diagnostic], n int) ([]Diagnostic, bool) {
	var out []Diagnostic
	more := false
	for d := range seq {
		if len(out) == n {
			more = true
			break
		}
		out = append(out, d)
	}
	return out, more
}

func newDiagnostic(rule Rule, node, format string, args ...any) Diagnostic {
	return Diagnostic{Rule: rule, Node: node, Message: fmt.Sprintf(format, args...)}
}
