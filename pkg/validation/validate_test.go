package validation

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/uccalint/pkg/passage"
)

func TestValidateFixtures(t *testing.T) {
	tests := []struct {
		name  string
		build func(*testing.T) *passage.Passage
		valid bool
	}{
		{"empty", emptyPassage, false},
		{"unary punct", unaryPunct, true},
		{"binary punct", binaryPunct, true},
		{"unary punct under FN", unaryPunctUnderFN, false},
		{"punct under unanalyzable FN", punctUnderUnanalyzableFN, true},
		{"linked scenes", linkedScenes, true},
		{"forbid child of P", forbidChildOfP, false},
		{"forbid child of F", forbidChildOfF, false},
		{"forbid child of S", forbidChildOfS, false},
		{"forbid child of G", forbidChildOfG, false},
		{"forbid child of H", forbidChildOfH, false},
		{"forbid descendant of P", forbidDescendantOfP, false},
		{"forbid sibling of L and H", forbidSiblingOfLH, false},
		{"forbid sibling of S", forbidSiblingOfS, false},
		{"forbid sibling of D", forbidSiblingOfD, false},
		{"forbid sibling of P and N", siblingPair(passage.TagConnector, passage.TagProcess), false},
		{"forbid sibling of Q", siblingPair(passage.TagProcess, passage.TagQuantifier), false},
		{"forbid sibling of E", siblingPair(passage.TagProcess, passage.TagElaborator), false},
		{"forbid sibling of C", siblingPair(passage.TagProcess, passage.TagCenter), false},
		{"forbid sibling of A and T", forbidSiblingOfAT, false},
		{"require sibling of E, Q and N", requireSiblingOfEQN, false},
		{"require sibling of L", requireSiblingOfL, false},
		{"require sibling of A and T", requireSiblingOfAT, false},
		{"unique under parent", uniqueUnderParent, false},
		{"forbid remote", forbidRemote, false},
		{"forbid at top level", forbidAtTopLevel, false},
		{"forbid children of UNA and alone", forbidChildrenOfUNAAndAlone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.build(t)
			msgs := Messages(Validate(p, DefaultOptions()))
			if got := len(msgs) == 0; got != tt.valid {
				t.Errorf("valid = %v, want %v; diagnostics:\n%s", got, tt.valid, strings.Join(msgs, "\n"))
			}
			if got := IsValid(p, DefaultOptions()); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

// rules returns the rule codes of all diagnostics for p.
func rules(p *passage.Passage, opts Options) []Rule {
	var out []Rule
	for d := range Validate(p, opts) {
		out = append(out, d.Rule)
	}
	return out
}

func find(p *passage.Passage, opts Options, rule Rule) []Diagnostic {
	var out []Diagnostic
	for d := range Validate(p, opts) {
		if d.Rule == rule {
			out = append(out, d)
		}
	}
	return out
}

func TestValidateExpectedRules(t *testing.T) {
	tests := []struct {
		name  string
		build func(*testing.T) *passage.Passage
		want  Rule
	}{
		{"empty", emptyPassage, RuleNoPrimaryChildren},
		{"punct under FN", unaryPunctUnderFN, RulePunctuationParent},
		{"child of P", forbidChildOfP, RuleNonSceneChildren},
		{"child of F", forbidChildOfF, RuleFunctionChildren},
		{"child of G", forbidChildOfG, RuleGroundChildren},
		{"child of H", forbidChildOfH, RuleParallelChildren},
		{"descendant of P", forbidDescendantOfP, RuleSceneDescendant},
		{"sibling of S", forbidSiblingOfS, RuleStateSiblings},
		{"sibling of D", forbidSiblingOfD, RuleAdverbialSiblings},
		{"sibling of N", siblingPair(passage.TagConnector, passage.TagProcess), RuleConnectorSiblings},
		{"sibling of C", siblingPair(passage.TagProcess, passage.TagCenter), RuleCenterSiblings},
		{"sibling of A", forbidSiblingOfAT, RuleParticipantSiblings},
		{"requires C", requireSiblingOfEQN, RuleRequiresCenter},
		{"requires H", requireSiblingOfL, RuleRequiresParallel},
		{"requires P or S", requireSiblingOfAT, RuleRequiresMainRelation},
		{"unique P", uniqueUnderParent, RuleChildCardinality},
		{"remote relator", forbidRemote, RuleRemoteFunction},
		{"top level G", forbidAtTopLevel, RuleTopLevelChildren},
		{"UNA children", forbidChildrenOfUNAAndAlone, RuleUnanalyzableChildren},
		{"UNA alone", forbidChildrenOfUNAAndAlone, RuleUnanalyzableAlone},
		{"implicit with children", implicitWithChildren, RuleImplicitChildren},
		{"two primary parents", sharedChild(passage.TagParticipant), RuleMultiplePrimaryParents},
		{"remote parent only", remoteOnlyParent, RuleRemoteOnlyParents},
		{"two F parents", sharedChild(passage.TagFunction), RuleParentCardinality},
		{"U edge to unit", punctEdgeToUnit, RulePunctuationEdge},
		{"terminal under root", terminalUnderRoot, RuleRootTerminalChildren},
		{"P and S", siblingPair(passage.TagProcess, passage.TagState), RuleProcessAndState},
		{"A without P or S", requireSiblingOfAT, RuleParticipantsWithoutScene},
		{"H beside P", forbidSiblingOfLH, RuleParallelSceneSiblings},
		{"LA under unit", linkageArgumentUnderUnit, RuleLinkageChildrenOfUnit},
		{"A under linkage", linkageWithParticipant, RuleLinkageChildren},
		{"sibling of H", forbidSiblingOfLH, RuleSceneSiblings},
		{"sibling of E", siblingPair(passage.TagProcess, passage.TagElaborator), RuleElaboratorSiblings},
		{"sibling of Q", siblingPair(passage.TagProcess, passage.TagQuantifier), RuleQuantifierSiblings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules(tt.build(t), DefaultOptions())
			if !slices.Contains(got, tt.want) {
				t.Errorf("rules = %v, want to contain %v", got, tt.want)
			}
		})
	}
}

func TestValidateNil(t *testing.T) {
	if got := Collect(Validate(nil, DefaultOptions())); len(got) != 0 {
		t.Errorf("Validate(nil) = %v, want nothing", got)
	}
}

func TestValidateTerminals(t *testing.T) {
	p := passage.New("p")
	orphan, _ := p.AddTerminal("a", false)
	shared, _ := p.AddTerminal("b", false)
	empty, _ := p.AddTerminal("", false)
	spaced, _ := p.AddTerminal("c d", false)
	h := fnode(t, p, nil, passage.TagParallelScene)
	p1 := fnode(t, p, h, passage.TagProcess)
	a1 := fnode(t, p, h, passage.TagParticipant)
	_ = p.Attach(p1.ID, shared.ID, empty.ID, spaced.ID)
	_ = p.Attach(a1.ID, shared.ID)

	tests := []struct {
		rule Rule
		want string
	}{
		{RuleTerminalOrphan, "Orphan Word terminal (" + orphan.ID + ") 'a'"},
		{RuleTerminalReentrant, "Reentrant Word terminal (" + shared.ID + ") 'b': 1.3->0.2, 1.4->0.2"},
		{RuleTerminalEmpty, "Empty terminal text (" + empty.ID + ")"},
		{RuleTerminalWhitespace, "Whitespace in terminal text (" + spaced.ID + "): 'c d'"},
	}
	for _, tt := range tests {
		got := find(p, DefaultOptions(), tt.rule)
		if len(got) != 1 {
			t.Errorf("%s: got %d diagnostics, want 1", tt.rule, len(got))
			continue
		}
		if got[0].Message != tt.want {
			t.Errorf("%s: Message = %q, want %q", tt.rule, got[0].Message, tt.want)
		}
	}
}

func TestValidateTerminalsFirst(t *testing.T) {
	p := passage.New("p")
	_, _ = p.AddTerminal("x", false)

	got := Collect(Validate(p, DefaultOptions()))
	if len(got) < 2 {
		t.Fatalf("got %d diagnostics, want at least 2", len(got))
	}
	if got[0].Rule != RuleTerminalOrphan {
		t.Errorf("first rule = %v, want %v", got[0].Rule, RuleTerminalOrphan)
	}
}

func TestValidateCycle(t *testing.T) {
	p, terms := newFixture(t, 1, 2)
	h := fnode(t, p, nil, passage.TagParallelScene)
	pr := fnode(t, p, h, passage.TagProcess)
	attach(t, p, terms, pr)
	if err := p.AddEdge(passage.Edge{Parent: pr.ID, Child: h.ID, Tags: []passage.EdgeTag{passage.TagCenter}}); err != nil {
		t.Fatal(err)
	}

	got := find(p, DefaultOptions(), RuleCycle)
	if len(got) != 1 {
		t.Fatalf("got %d cycle diagnostics, want 1: %v", len(got), got)
	}
	want := "Detected cycle (1.1->1.2->1.3->1.2)"
	if got[0].Message != want {
		t.Errorf("Message = %q, want %q", got[0].Message, want)
	}
}

func TestValidateSelfLoop(t *testing.T) {
	p, terms := newFixture(t, 1, 2)
	h := fnode(t, p, nil, passage.TagParallelScene)
	attach(t, p, terms, h)
	_ = p.AddRemote(h.ID, h.ID, passage.TagParticipant)

	got := find(p, DefaultOptions(), RuleCycle)
	if len(got) != 1 || got[0].Message != "Detected cycle (1.1->1.2->1.2)" {
		t.Errorf("cycle diagnostics = %v", got)
	}
}

func TestValidateDeterministic(t *testing.T) {
	p := forbidSiblingOfAT(t)
	first := Messages(Validate(p, DefaultOptions()))
	for i := 0; i < 5; i++ {
		if got := Messages(Validate(p, DefaultOptions())); !slices.Equal(got, first) {
			t.Fatalf("run %d differs:\n%v\nvs\n%v", i, got, first)
		}
	}
}

func TestValidateEarlyStop(t *testing.T) {
	p := forbidSiblingOfAT(t)
	n := 0
	for range Validate(p, DefaultOptions()) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("consumed %d diagnostics, want 2", n)
	}

	got, more := First(Validate(p, DefaultOptions()), 1)
	if len(got) != 1 || !more {
		t.Errorf("First() = %d, %v; want 1, true", len(got), more)
	}
	got, more = First(Validate(unaryPunct(t), DefaultOptions()), 10)
	if len(got) != 0 || more {
		t.Errorf("First() on valid passage = %d, %v", len(got), more)
	}
}

func TestValidateMultigraph(t *testing.T) {
	p, terms := newFixture(t, 2, 3)
	h := fnode(t, p, nil, passage.TagParallelScene)
	pr := fnode(t, p, h, passage.TagProcess)
	attach(t, p, terms, pr)
	_ = p.Attach(h.ID, terms[1].ID)
	if err := p.AddRemote(h.ID, pr.ID, passage.TagAdverbial); err != nil {
		t.Fatal(err)
	}

	got := find(p, Options{Linkage: true}, RuleMultigraph)
	if len(got) != 1 {
		t.Fatalf("got %d multigraph diagnostics, want 1", len(got))
	}
	if want := "Multiple edges from 1.2 to 1.3: 1 P, 1 D"; got[0].Message != want {
		t.Errorf("Message = %q, want %q", got[0].Message, want)
	}
	if got := find(p, Options{Linkage: true, Multigraph: true}, RuleMultigraph); len(got) != 0 {
		t.Errorf("multigraph allowed, got %v", got)
	}
}

func TestValidateProcessWithParallelSiblings(t *testing.T) {
	p, terms := newFixture(t, 2, 3)
	h := fnode(t, p, nil, passage.TagParallelScene)
	pr := fnode(t, p, h, passage.TagProcess)
	d := fnode(t, p, h, passage.TagAdverbial)
	attach(t, p, terms, pr, d)
	if !IsValid(p, DefaultOptions()) {
		t.Fatalf("scene with P and D should be valid: %v", Messages(Validate(p, DefaultOptions())))
	}

	w3, _ := p.AddTerminal("w3", false)
	h2 := fnode(t, p, h, passage.TagParallelScene)
	p2 := fnode(t, p, h2, passage.TagProcess)
	_ = p.Attach(p2.ID, w3.ID)

	got := find(p, DefaultOptions(), RuleProcessSiblings)
	if len(got) != 1 {
		t.Fatalf("got %v, want one process sibling diagnostic", got)
	}
	if !strings.HasPrefix(got[0].Message, "P unit with H siblings: under 1.2") {
		t.Errorf("Message = %q", got[0].Message)
	}
}

func TestValidateTopLevel(t *testing.T) {
	p, terms := newFixture(t, 1, 2)
	h := fnode(t, p, nil, passage.TagParallelScene)
	pr := fnode(t, p, h, passage.TagProcess)
	attach(t, p, terms, pr)
	if !IsValid(p, DefaultOptions()) {
		t.Errorf("root with a single H child should be valid: %v", Messages(Validate(p, DefaultOptions())))
	}

	p = forbidAtTopLevel(t)
	// G is allowed under the root; only the top-level rule applies.
	if got := find(p, DefaultOptions(), RuleRootChildren); len(got) != 0 {
		t.Errorf("root children diagnostics = %v, want none", got)
	}
	if got := find(p, DefaultOptions(), RuleTopLevelChildren); len(got) != 1 ||
		got[0].Message != "G unit (1.1) at top level" {
		t.Errorf("top level diagnostics = %v", got)
	}
}

func TestValidateUnanalyzable(t *testing.T) {
	build := func(tags ...passage.EdgeTag) *passage.Passage {
		p, terms := newFixture(t, 2, 3)
		h := fnode(t, p, nil, passage.TagParallelScene)
		pr := fnode(t, p, h, passage.TagProcess)
		u := fnode(t, p, h, tags...)
		attach(t, p, terms, pr, u)
		return p
	}

	if p := build(passage.TagParticipant, passage.TagUnanalyzable); !IsValid(p, DefaultOptions()) {
		t.Errorf("bundled UNA should be valid: %v", Messages(Validate(p, DefaultOptions())))
	}

	got := Collect(Validate(build(passage.TagUnanalyzable), DefaultOptions()))
	if len(got) != 1 || got[0].Rule != RuleUnanalyzableAlone {
		t.Fatalf("diagnostics = %v, want one %v", got, RuleUnanalyzableAlone)
	}
	if want := "UNA unit (1.4) without another label"; got[0].Message != want {
		t.Errorf("Message = %q, want %q", got[0].Message, want)
	}
}

func TestValidateExtraRoot(t *testing.T) {
	p := unaryPunct(t)
	if err := p.AddHead("1.2"); err != nil {
		t.Fatal(err)
	}
	got := find(p, DefaultOptions(), RuleRootExtra)
	if len(got) != 1 || got[0].Message != "Extra root (1.2)" {
		t.Errorf("extra root diagnostics = %v", got)
	}
}

func TestValidateTreeID(t *testing.T) {
	p := passage.New("p")
	if err := p.AddNode(passage.Node{ID: "0.1", Layer: passage.TerminalLayerID, Tag: passage.NodeTagWord,
		Text: "x", Position: 1, TreeID: "t7"}); err != nil {
		t.Fatal(err)
	}
	got := find(p, DefaultOptions(), RuleTerminalOrphan)
	if len(got) != 1 || got[0].Message != "Orphan Word terminal (0.1, t7) 'x'" {
		t.Errorf("orphan diagnostics = %v", got)
	}
}

func TestValidateLinkage(t *testing.T) {
	p := passage.New("p")
	a, _ := p.AddTerminal("and", false)
	b, _ := p.AddTerminal("went", false)
	h := fnode(t, p, nil, passage.TagParallelScene)
	pr := fnode(t, p, h, passage.TagProcess)
	l := fnode(t, p, nil, passage.TagLinker)
	attach(t, p, []*passage.Node{a, b}, l, pr)

	// A linkage unit with arguments but no relation.
	lkg := passage.Node{ID: "1.9", Layer: passage.StructuralLayerID, Tag: passage.NodeTagLinkage}
	if err := p.AddNode(lkg); err != nil {
		t.Fatal(err)
	}
	_ = p.AddHead(lkg.ID)
	_ = p.AddEdge(passage.Edge{Parent: lkg.ID, Child: h.ID, Tags: []passage.EdgeTag{passage.TagLinkArgument}})

	on := rules(p, DefaultOptions())
	for _, want := range []Rule{RuleLinkageNoRelation, RuleLinkerWithoutLink} {
		if !slices.Contains(on, want) {
			t.Errorf("linkage on: rules = %v, want %v", on, want)
		}
	}
	off := rules(p, Options{})
	for _, unwanted := range []Rule{RuleLinkageNoRelation, RuleLinkerWithoutLink} {
		if slices.Contains(off, unwanted) {
			t.Errorf("linkage off: rules = %v, should not contain %v", off, unwanted)
		}
	}
}

func TestValidateNonRootLinkage(t *testing.T) {
	p := linkedScenes(t)
	lkg := p.Heads()[1]
	_ = p.AddEdge(passage.Edge{Parent: passage.RootID, Child: lkg, Tags: []passage.EdgeTag{passage.TagLinker}})

	got := rules(p, DefaultOptions())
	if !slices.Contains(got, RuleLinkageNonRoot) {
		t.Errorf("rules = %v, want %v", got, RuleLinkageNonRoot)
	}
	if slices.Contains(got, RuleRootExtra) {
		t.Errorf("linkage head reported as extra root: %v", got)
	}
}
