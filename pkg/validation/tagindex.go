package validation

import "github.com/matzehuels/uccalint/pkg/passage"

// TagIndex groups edges by relation tag. An edge bundling several tags is
// listed under each of them. Lookups are constant time.
type TagIndex struct {
	byTag [passage.NumEdgeTags][]*passage.Edge
	tags  passage.TagSet
}

// IndexEdges builds an index over edges, preserving their order within
// each tag.
func IndexEdges(edges []*passage.Edge) TagIndex {
	var idx TagIndex
	for _, e := range edges {
		for _, t := range e.Tags {
			if !t.Valid() {
				continue
			}
			idx.byTag[t] = append(idx.byTag[t], e)
			idx.tags = idx.tags.Add(t)
		}
	}
	return idx
}

// Get returns the edges carrying t, or nil.
func (x *TagIndex) Get(t passage.EdgeTag) []*passage.Edge {
	if !t.Valid() {
		return nil
	}
	return x.byTag[t]
}

// Count returns the number of edges carrying t.
func (x *TagIndex) Count(t passage.EdgeTag) int { return len(x.Get(t)) }

// Has reports whether any edge carries t.
func (x *TagIndex) Has(t passage.EdgeTag) bool { return x.tags.Has(t) }

// Tags returns the set of tags present.
func (x *TagIndex) Tags() passage.TagSet { return x.tags }

// Len returns the number of distinct tags present.
func (x *TagIndex) Len() int { return x.tags.Len() }
