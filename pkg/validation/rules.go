package validation

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/matzehuels/uccalint/pkg/passage"
)

// Tag groups shared by several rules.
var (
	linkageTags    = passage.NewTagSet(passage.TagLinkRelation, passage.TagLinkArgument)
	nonSceneTags   = passage.NewTagSet(passage.TagCenter, passage.TagElaborator, passage.TagQuantifier, passage.TagConnector)
	suppFuncTags   = passage.NewTagSet(passage.TagRelator, passage.TagFunction, passage.TagUnanalyzable, passage.TagUncertain)
	sceneTags      = passage.NewTagSet(passage.TagParticipant, passage.TagState, passage.TagProcess, passage.TagAdverbial, passage.TagTime)
	mainRelation   = passage.NewTagSet(passage.TagProcess, passage.TagState)
	parallelLinker = passage.NewTagSet(passage.TagParallelScene, passage.TagLinker)

	// Children allowed under units that may only hold non-scene material.
	nonSceneChildren = passage.NewTagSet(passage.TagTerminal, passage.TagPunctuation).Union(nonSceneTags).Union(suppFuncTags)

	topLevelChildren = passage.NewTagSet(passage.TagParallelScene, passage.TagLinker, passage.TagFunction,
		passage.TagGround, passage.TagPunctuation).Union(linkageTags)
	topLevelUnit = passage.NewTagSet(passage.TagParallelScene, passage.TagLinker, passage.TagFunction,
		passage.TagPunctuation).Union(linkageTags)
	parallelSceneSiblings = passage.NewTagSet(passage.TagParallelScene, passage.TagPunctuation, passage.TagLinker,
		passage.TagGround, passage.TagRelator, passage.TagFunction)

	uniqueParents  = []passage.EdgeTag{passage.TagFunction, passage.TagLinkRelation, passage.TagConnector, passage.TagPunctuation, passage.TagTerminal}
	uniqueChildren = []passage.EdgeTag{passage.TagLinkRelation, passage.TagProcess, passage.TagState}

	subNonSceneParents = passage.NewTagSet(passage.TagProcess, passage.TagAdverbial, passage.TagLinker,
		passage.TagTime, passage.TagQuantifier, passage.TagConnector, passage.TagState)
	sceneDescendants = passage.NewTagSet(passage.TagParallelScene, passage.TagLinker, passage.TagGround).Union(sceneTags)
)

// siblingRule forbids a set of siblings next to an edge tag. For the center
// rule the set is inverted: every sibling outside it is forbidden.
type siblingRule struct {
	rule     Rule
	present  passage.TagSet
	siblings passage.TagSet
	allowed  bool
}

var siblingRules = []siblingRule{
	{RuleStateSiblings, passage.NewTagSet(passage.TagState),
		parallelLinker.With(passage.TagProcess).Union(nonSceneTags), false},
	{RuleAdverbialSiblings, passage.NewTagSet(passage.TagAdverbial), parallelLinker, false},
	{RuleCenterSiblings, passage.NewTagSet(passage.TagCenter), nonSceneChildren.With(passage.TagAdverbial), true},
	{RuleParticipantSiblings, passage.NewTagSet(passage.TagParticipant, passage.TagTime), nonSceneTags.Union(parallelLinker), false},
	{RuleSceneSiblings, parallelLinker, nonSceneTags.Union(sceneTags), false},
	{RuleElaboratorSiblings, passage.NewTagSet(passage.TagElaborator),
		sceneTags.Union(parallelLinker).With(passage.TagGround, passage.TagConnector), false},
	{RuleQuantifierSiblings, passage.NewTagSet(passage.TagQuantifier),
		sceneTags.Union(parallelLinker).With(passage.TagGround), false},
	{RuleConnectorSiblings, passage.NewTagSet(passage.TagConnector),
		sceneTags.Union(parallelLinker).With(passage.TagGround, passage.TagElaborator, passage.TagQuantifier), false},
	{RuleProcessSiblings, passage.NewTagSet(passage.TagProcess),
		nonSceneTags.Union(parallelLinker).With(passage.TagState), false},
}

// checker runs the unit rule battery with the options of one run.
type checker struct {
	linkage    bool
	multigraph bool
}

// unitRules run in order against every reachable unit.
var unitRules = []func(*checker, *nodeView) []Diagnostic{
	(*checker).checkLayerRules,
	(*checker).checkParents,
	(*checker).checkPunctuation,
	(*checker).checkImplicit,
	(*checker).checkCardinality,
	(*checker).checkFunction,
	(*checker).checkLinker,
	(*checker).checkMultigraph,
	(*checker).checkSubNonScene,
	(*checker).checkUnanalyzable,
	(*checker).checkGroundAndParallel,
	(*checker).checkSiblings,
	(*checker).checkRequiredSiblings,
	(*checker).checkDescendants,
	(*checker).checkRemote,
	(*checker).checkTopLevel,
	(*checker).checkUnanalyzableAlone,
}

func (c *checker) check(v *nodeView) []Diagnostic {
	var out []Diagnostic
	for _, rule := range unitRules {
		out = append(out, rule(c, v)...)
	}
	return out
}

// checkTerminal validates a terminal-layer node.
func checkTerminal(v *nodeView) []Diagnostic {
	var out []Diagnostic
	text := v.node.Text
	if text == "" {
		out = append(out, v.diag(RuleTerminalEmpty, "Empty terminal text (%s)", v.id))
	} else if strings.ContainsFunc(text, unicode.IsSpace) {
		out = append(out, v.diag(RuleTerminalWhitespace, "Whitespace in terminal text (%s): '%s'", v.id, text))
	}
	switch len(v.in) {
	case 0:
		out = append(out, v.diag(RuleTerminalOrphan, "Orphan %s terminal (%s) '%s'", v.node.Tag, v.id, text))
	case 1:
	default:
		out = append(out, v.diag(RuleTerminalReentrant, "Reentrant %s terminal (%s) '%s': %s",
			v.node.Tag, v.id, text, joinEdges(v.in)))
	}
	return out
}

// checkHead validates a structural head.
func checkHead(v *nodeView) []Diagnostic {
	var out []Diagnostic
	if len(v.in) > 0 && v.node.Tag != passage.NodeTagLinkage {
		out = append(out, v.diag(RuleRootExtra, "Extra root (%s)", v.id))
	}
	var terms []string
	for _, e := range v.out {
		if child := v.child(e); child != nil && child.IsTerminal() {
			terms = append(terms, child.ID)
		}
	}
	if len(terms) > 0 {
		out = append(out, v.diag(RuleRootTerminalChildren, "Terminal children (%s) of root (%s)",
			strings.Join(terms, ", "), v.id))
	}
	if s := v.outTags().Difference(topLevelChildren); !s.Empty() {
		out = append(out, v.diag(RuleRootChildren, "Top-level unit (%s) with %s children: %s",
			v.id, s, v.childrenWith(s)))
	}
	return out
}

// checkLayerRules applies the linkage rules to linkage units and the
// foundational rules to ordinary units.
func (c *checker) checkLayerRules(v *nodeView) []Diagnostic {
	switch {
	case c.linkage && v.node.Tag == passage.NodeTagLinkage:
		return checkLinkageUnit(v)
	case v.node.Tag == passage.NodeTagFoundational:
		return checkFoundationalUnit(v)
	}
	return nil
}

func checkLinkageUnit(v *nodeView) []Diagnostic {
	var out []Diagnostic
	if len(v.in) > 0 {
		out = append(out, v.diag(RuleLinkageNonRoot, "Non-root %s unit (%s)", v.node.Tag, v.id))
	}
	if s := v.outTags().Difference(linkageTags); !s.Empty() {
		out = append(out, v.diag(RuleLinkageChildren, "%s unit (%s) with %s children", v.node.Tag, v.id, s))
	}
	if !v.outgoing.Has(passage.TagLinkRelation) {
		out = append(out, v.diag(RuleLinkageNoRelation, "%s unit (%s) without %s child",
			v.node.Tag, v.id, passage.TagLinkRelation))
	}
	return out
}

func checkFoundationalUnit(v *nodeView) []Diagnostic {
	var out []Diagnostic
	tags := v.outTags()
	if tags.Has(passage.TagParticipant) && !tags.HasAny(passage.TagProcess, passage.TagState) {
		out = append(out, v.diag(RuleParticipantsWithoutScene,
			"Unit (%s) with participants but without main relation: %q", v.id, v.text()))
	}
	if tags.Has(passage.TagProcess) && tags.Has(passage.TagState) {
		out = append(out, v.diag(RuleProcessAndState, "Unit (%s) with both process (%s) and state (%s)",
			v.id, joinChildren(v.outgoing.Get(passage.TagProcess)), joinChildren(v.outgoing.Get(passage.TagState))))
	}
	if tags.Has(passage.TagParallelScene) {
		if s := tags.Difference(parallelSceneSiblings); !s.Empty() {
			out = append(out, v.diag(RuleParallelSceneSiblings, "Unit (%s) with parallel scenes has %s children: %s",
				v.id, s, v.childrenWith(s)))
		}
	}
	if s := tags.Intersect(linkageTags); !s.Empty() {
		out = append(out, v.diag(RuleLinkageChildrenOfUnit, "Non-linkage unit (%s) with %s children: %s",
			v.id, s, v.childrenWith(s)))
	}
	return out
}

// checkParents requires exactly one primary parent for units that have
// any parent at all. Linkage edges do not count as primary.
func (c *checker) checkParents(v *nodeView) []Diagnostic {
	var primary []*passage.Edge
	remote := false
	for _, e := range v.in {
		switch {
		case e.Remote:
			remote = true
		case e.TagSet().Intersect(linkageTags).Empty():
			primary = append(primary, e)
		}
	}
	var out []Diagnostic
	if len(primary) > 1 {
		out = append(out, v.diag(RuleMultiplePrimaryParents, "Unit (%s) with multiple non-remote parents (%s)",
			v.id, joinEdges(primary)))
	}
	if remote && len(primary) == 0 {
		out = append(out, v.diag(RuleRemoteOnlyParents, "Unit (%s) with remote parents but no primary parents", v.id))
	}
	return out
}

// checkPunctuation couples the U tag to punctuation units and keeps
// punctuation terminals under punctuation units.
func (c *checker) checkPunctuation(v *nodeView) []Diagnostic {
	var out []Diagnostic
	onlyLeaves := len(v.out) > 1 && !slices.ContainsFunc(v.out, func(e *passage.Edge) bool {
		child := v.child(e)
		return child == nil || !(child.IsTerminal() || child.Tag == passage.NodeTagPunctuation)
	})
	for _, e := range v.out {
		child := v.child(e)
		if child == nil {
			continue
		}
		if e.HasTag(passage.TagPunctuation) != (child.Tag == passage.NodeTagPunctuation) {
			out = append(out, v.diag(RulePunctuationEdge, "%s edge (%s) with %s child", e.TagString(), e, child.Tag))
		}
		punctChild := child.Tag == passage.NodeTagPunct
		switch v.node.Tag {
		case passage.NodeTagFoundational:
			// A unit made up solely of terminals and punctuation units may
			// hold punctuation terminals directly.
			if punctChild && !onlyLeaves {
				out = append(out, v.diag(RulePunctuationParent, "%s unit (%s) with %s child (%s)",
					v.node.Tag, v.id, child.Tag, child.ID))
			}
		case passage.NodeTagPunctuation:
			if !punctChild {
				out = append(out, v.diag(RulePunctuationParent, "%s unit (%s) with %s child (%s)",
					v.node.Tag, v.id, child.Tag, child.ID))
			}
		}
	}
	return out
}

// checkImplicit forbids children under implicit units and requires at
// least one primary child under every other unit.
func (c *checker) checkImplicit(v *nodeView) []Diagnostic {
	if v.node.Implicit {
		if len(v.out) > 0 {
			return []Diagnostic{v.diag(RuleImplicitChildren, "Implicit unit (%s) with children (%s)",
				v.id, joinChildren(v.out))}
		}
		return nil
	}
	switch v.node.Tag {
	case passage.NodeTagFoundational, passage.NodeTagLinkage, passage.NodeTagPunctuation:
	default:
		return nil
	}
	if slices.ContainsFunc(v.out, func(e *passage.Edge) bool { return !e.Remote }) {
		return nil
	}
	return []Diagnostic{v.diag(RuleNoPrimaryChildren, "Non-implicit unit (%s) with no primary children", v.id)}
}

func (c *checker) checkCardinality(v *nodeView) []Diagnostic {
	var out []Diagnostic
	for _, t := range uniqueParents {
		if edges := v.incoming.Get(t); len(edges) > 1 {
			out = append(out, v.diag(RuleParentCardinality, "Unit (%s) with multiple %s parents (%s)",
				v.id, t, joinParents(edges)))
		}
	}
	for _, t := range uniqueChildren {
		if edges := v.outgoing.Get(t); len(edges) > 1 {
			out = append(out, v.diag(RuleChildCardinality, "Unit (%s) with multiple %s children (%s)",
				v.id, t, joinChildren(edges)))
		}
	}
	return out
}

func (c *checker) checkFunction(v *nodeView) []Diagnostic {
	if !v.incoming.Has(passage.TagFunction) {
		return nil
	}
	if s := v.outTags().Difference(nonSceneChildren); !s.Empty() {
		return []Diagnostic{v.diag(RuleFunctionChildren, "%s unit (%s) with %s children: %q",
			passage.TagFunction, v.id, s, v.text())}
	}
	return nil
}

func (c *checker) checkLinker(v *nodeView) []Diagnostic {
	if c.linkage && v.incoming.Has(passage.TagLinker) && !v.incoming.Has(passage.TagLinkRelation) {
		return []Diagnostic{v.diag(RuleLinkerWithoutLink, "%s unit (%s) with no incoming %s",
			passage.TagLinker, v.id, passage.TagLinkRelation)}
	}
	return nil
}

// checkMultigraph reports parents reaching the same child through more
// than one edge, children in ID order.
func (c *checker) checkMultigraph(v *nodeView) []Diagnostic {
	if c.multigraph || len(v.out) < 2 {
		return nil
	}
	byChild := make(map[string][]*passage.Edge)
	for _, e := range v.out {
		byChild[e.Child] = append(byChild[e.Child], e)
	}
	ids := make([]string, 0, len(byChild))
	for id, edges := range byChild {
		if len(edges) > 1 {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	var out []Diagnostic
	for _, id := range ids {
		idx := IndexEdges(byChild[id])
		var counts []string
		for _, t := range idx.Tags().Tags() {
			counts = append(counts, fmt.Sprintf("%d %s", idx.Count(t), t))
		}
		out = append(out, v.diag(RuleMultigraph, "Multiple edges from %s to %s: %s",
			v.id, id, strings.Join(counts, ", ")))
	}
	return out
}

// checkSubNonScene restricts units under scene-internal and relational
// edges to non-scene material.
func (c *checker) checkSubNonScene(v *nodeView) []Diagnostic {
	parents := v.inTags().Intersect(subNonSceneParents)
	if parents.Empty() {
		return nil
	}
	if s := v.outTags().Difference(nonSceneChildren); !s.Empty() {
		return []Diagnostic{v.diag(RuleNonSceneChildren, "%s unit (%s) with %s children: %q",
			parents, v.id, s, v.text())}
	}
	return nil
}

// checkUnanalyzable forbids structure under UNA units. Terminal and
// punctuation children are their content and are allowed.
func (c *checker) checkUnanalyzable(v *nodeView) []Diagnostic {
	if !v.incoming.Has(passage.TagUnanalyzable) {
		return nil
	}
	if s := v.outTags().Without(passage.TagTerminal, passage.TagPunctuation); !s.Empty() {
		return []Diagnostic{v.diag(RuleUnanalyzableChildren, "%s unit (%s) with children: %s",
			passage.TagUnanalyzable, v.id, v.childrenWith(s))}
	}
	return nil
}

func (c *checker) checkGroundAndParallel(v *nodeView) []Diagnostic {
	var out []Diagnostic
	if v.incoming.Has(passage.TagGround) {
		if s := v.outTags().Intersect(parallelLinker.With(passage.TagGround)); !s.Empty() {
			out = append(out, v.diag(RuleGroundChildren, "%s unit (%s) with %s children: %q",
				passage.TagGround, v.id, s, v.text()))
		}
	}
	if v.incoming.Has(passage.TagParallelScene) {
		if s := v.outTags().Intersect(parallelLinker); !s.Empty() {
			out = append(out, v.diag(RuleParallelChildren, "%s unit (%s) with %s children: %q",
				passage.TagParallelScene, v.id, s, v.text()))
		}
	}
	return out
}

func (c *checker) checkSiblings(v *nodeView) []Diagnostic {
	var out []Diagnostic
	tags := v.outTags()
	for _, r := range siblingRules {
		present := tags.Intersect(r.present)
		if present.Empty() {
			continue
		}
		var bad passage.TagSet
		if r.allowed {
			bad = tags.Difference(r.siblings).Difference(r.present)
		} else {
			bad = tags.Intersect(r.siblings)
		}
		if !bad.Empty() {
			out = append(out, v.diag(r.rule, "%s unit with %s siblings: under %s", present, bad, v.describe()))
		}
	}
	return out
}

func (c *checker) checkRequiredSiblings(v *nodeView) []Diagnostic {
	var out []Diagnostic
	tags := v.outTags()
	if s := tags.Intersect(passage.NewTagSet(passage.TagElaborator, passage.TagQuantifier, passage.TagConnector)); !s.Empty() &&
		!tags.Has(passage.TagCenter) {
		out = append(out, v.diag(RuleRequiresCenter, "%s unit without %s sibling: under %s",
			s, passage.TagCenter, v.describe()))
	}
	if s := tags.Intersect(passage.NewTagSet(passage.TagParticipant, passage.TagTime)); !s.Empty() &&
		tags.Intersect(mainRelation).Empty() {
		out = append(out, v.diag(RuleRequiresMainRelation, "%s unit without %s siblings: under %s",
			s, mainRelation, v.describe()))
	}
	if tags.Has(passage.TagLinker) && !tags.Has(passage.TagParallelScene) {
		out = append(out, v.diag(RuleRequiresParallel, "%s unit without %s sibling: under %s",
			passage.TagLinker, passage.TagParallelScene, v.describe()))
	}
	return out
}

// checkDescendants forbids scene structure anywhere beneath a process or
// state unit, including among its own children.
func (c *checker) checkDescendants(v *nodeView) []Diagnostic {
	parents := v.inTags().Intersect(mainRelation)
	if parents.Empty() {
		return nil
	}
	var out []Diagnostic
	seen := map[string]bool{v.node.ID: true}
	stack := []*passage.Node{v.node}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var tags passage.TagSet
		for _, e := range v.p.Outgoing(n.ID) {
			tags = tags.Union(e.TagSet())
			child, ok := v.p.Node(e.Child)
			if !ok || child.IsTerminal() || seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			stack = append(stack, child)
		}
		if s := tags.Intersect(sceneDescendants); !s.Empty() {
			out = append(out, v.diag(RuleSceneDescendant, "%s unit (%s) with %s descendants: %s",
				parents, v.id, s, newNodeView(v.p, n).describe()))
		}
	}
	return out
}

// checkRemote forbids remote relators and function words.
func (c *checker) checkRemote(v *nodeView) []Diagnostic {
	var edges []*passage.Edge
	var tags passage.TagSet
	for _, e := range v.in {
		if e.Remote && e.TagSet().HasAny(passage.TagRelator, passage.TagFunction) {
			edges = append(edges, e)
			tags = tags.Union(e.TagSet().Intersect(passage.NewTagSet(passage.TagRelator, passage.TagFunction)))
		}
	}
	if len(edges) == 0 {
		return nil
	}
	return []Diagnostic{v.diag(RuleRemoteFunction, "%s remote edges (%s)", tags, joinEdges(edges))}
}

// checkTopLevel restricts what a parentless unit may hold.
func (c *checker) checkTopLevel(v *nodeView) []Diagnostic {
	if len(v.in) > 0 {
		return nil
	}
	if s := v.outTags().Difference(topLevelUnit); !s.Empty() {
		return []Diagnostic{v.diag(RuleTopLevelChildren, "%s unit (%s) at top level", s, v.id)}
	}
	return nil
}

// checkUnanalyzableAlone requires UNA to be bundled with another tag.
func (c *checker) checkUnanalyzableAlone(v *nodeView) []Diagnostic {
	for _, e := range v.in {
		if len(e.Tags) > 0 && e.TagSet() == passage.NewTagSet(passage.TagUnanalyzable) {
			return []Diagnostic{v.diag(RuleUnanalyzableAlone, "%s unit (%s) without another label",
				passage.TagUnanalyzable, v.id)}
		}
	}
	return nil
}
