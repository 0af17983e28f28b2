package passage

import (
	"fmt"
	"math/bits"
	"strings"
)

// NodeTag is the coarse-grained category carried by every node.
type NodeTag string

const (
	// NodeTagWord marks an ordinary terminal token.
	NodeTagWord NodeTag = "Word"
	// NodeTagPunct marks a punctuation terminal token.
	NodeTagPunct NodeTag = "Punctuation"

	// NodeTagFoundational marks an ordinary structural unit.
	NodeTagFoundational NodeTag = "FN"
	// NodeTagLinkage marks a unit relating scenes through LR/LA edges.
	NodeTagLinkage NodeTag = "LKG"
	// NodeTagPunctuation marks a unit that groups punctuation terminals.
	NodeTagPunctuation NodeTag = "PNCT"
)

// IsTerminalTag reports whether t is one of the terminal-layer tags.
func (t NodeTag) IsTerminalTag() bool { return t == NodeTagWord || t == NodeTagPunct }

// Valid reports whether t is a known node tag.
func (t NodeTag) Valid() bool {
	switch t {
	case NodeTagWord, NodeTagPunct, NodeTagFoundational, NodeTagLinkage, NodeTagPunctuation:
		return true
	}
	return false
}

// EdgeTag is a fine-grained relation category. The set is closed; new
// values cannot be introduced at runtime.
type EdgeTag uint8

const (
	TagUnanalyzable EdgeTag = iota // UNA
	TagUncertain                   // UNC
	TagParallelScene               // H
	TagParticipant                 // A
	TagProcess                     // P
	TagState                       // S
	TagAdverbial                   // D
	TagGround                      // G
	TagCenter                      // C
	TagElaborator                  // E
	TagFunction                    // F
	TagConnector                   // N
	TagRelator                     // R
	TagTime                        // T
	TagQuantifier                  // Q
	TagLinker                      // L
	TagPunctuation                 // U
	TagLinkRelation                // LR
	TagLinkArgument                // LA
	TagTerminal                    // Terminal

	numEdgeTags
)

var edgeTagNames = [numEdgeTags]string{
	TagUnanalyzable:  "UNA",
	TagUncertain:     "UNC",
	TagParallelScene: "H",
	TagParticipant:   "A",
	TagProcess:       "P",
	TagState:         "S",
	TagAdverbial:     "D",
	TagGround:        "G",
	TagCenter:        "C",
	TagElaborator:    "E",
	TagFunction:      "F",
	TagConnector:     "N",
	TagRelator:       "R",
	TagTime:          "T",
	TagQuantifier:    "Q",
	TagLinker:        "L",
	TagPunctuation:   "U",
	TagLinkRelation:  "LR",
	TagLinkArgument:  "LA",
	TagTerminal:      "Terminal",
}

var edgeTagByName = func() map[string]EdgeTag {
	m := make(map[string]EdgeTag, numEdgeTags)
	for i, name := range edgeTagNames {
		m[name] = EdgeTag(i)
	}
	return m
}()

// NumEdgeTags is the size of the closed edge tag set.
const NumEdgeTags = int(numEdgeTags)

// String returns the abbreviation used in annotated corpora (e.g. "H", "LR").
func (t EdgeTag) String() string {
	if t < numEdgeTags {
		return edgeTagNames[t]
	}
	return fmt.Sprintf("EdgeTag(%d)", uint8(t))
}

// Valid reports whether t belongs to the closed tag set.
func (t EdgeTag) Valid() bool { return t < numEdgeTags }

// ParseEdgeTag maps an abbreviation back to its tag.
func ParseEdgeTag(s string) (EdgeTag, error) {
	if t, ok := edgeTagByName[s]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEdgeTag, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t EdgeTag) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEdgeTag, uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EdgeTag) UnmarshalText(b []byte) error {
	parsed, err := ParseEdgeTag(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TagSet is a set of edge tags stored as a bitmask. The zero value is the
// empty set. Iteration and rendering always follow declaration order, so
// anything built from a TagSet is deterministic.
type TagSet uint32

// NewTagSet returns the set holding tags.
func NewTagSet(tags ...EdgeTag) TagSet {
	var s TagSet
	for _, t := range tags {
		s = s.Add(t)
	}
	return s
}

// Add returns s with t included. Tags outside the closed set are ignored.
func (s TagSet) Add(t EdgeTag) TagSet {
	if !t.Valid() {
		return s
	}
	return s | 1<<t
}

// Has reports whether t is a member of s.
func (s TagSet) Has(t EdgeTag) bool { return t.Valid() && s&(1<<t) != 0 }

// HasAny reports whether any of tags is a member of s.
func (s TagSet) HasAny(tags ...EdgeTag) bool { return !s.Intersect(NewTagSet(tags...)).Empty() }

func (s TagSet) Union(o TagSet) TagSet          { return s | o }
func (s TagSet) Intersect(o TagSet) TagSet      { return s & o }
func (s TagSet) Difference(o TagSet) TagSet     { return s &^ o }
func (s TagSet) With(tags ...EdgeTag) TagSet    { return s.Union(NewTagSet(tags...)) }
func (s TagSet) Without(tags ...EdgeTag) TagSet { return s.Difference(NewTagSet(tags...)) }
func (s TagSet) Empty() bool                    { return s == 0 }
func (s TagSet) Len() int                       { return bits.OnesCount32(uint32(s)) }

// Tags returns the members in declaration order.
func (s TagSet) Tags() []EdgeTag {
	out := make([]EdgeTag, 0, s.Len())
	for t := EdgeTag(0); t < numEdgeTags; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// String renders the set as a comma-joined list, e.g. "H, L".
func (s TagSet) String() string {
	tags := s.Tags()
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
