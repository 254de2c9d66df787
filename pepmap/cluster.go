package pepmap

import (
	"sort"

	"github.com/theodesp/unionfind"
)

// Cluster is a maximal island of nearby matches on one protein.
type Cluster struct {
	Protein  string
	Start    int
	End      int
	Peptides int
}

// Clusters joins matches whose intervals lie within minGap residues of one
// another into coverage islands. Matches from different proteins never
// join. Output is ordered by protein, then start.
func Clusters(matches []Match, minGap int) []Cluster {
	if len(matches) == 0 {
		return nil
	}

	uf := unionfind.NewThreadSafeUnionFind(len(matches))

	for i := 0; i < len(matches); i++ {
		for j := i + 1; j < len(matches); j++ {
			if matches[i].Overlaps(matches[j], minGap) {
				uf.Union(i, j)
			}
		}
	}

	// Reconcile members under their root
	groups := make(map[int][]int)
	for i := range matches {
		root := uf.Root(i)
		if root < 0 {
			root = i
		}
		groups[root] = append(groups[root], i)
	}

	out := make([]Cluster, 0, len(groups))
	for _, members := range groups {
		c := Cluster{
			Protein: matches[members[0]].Protein,
			Start:   matches[members[0]].Start,
			End:     matches[members[0]].End,
		}

		distinct := make(map[string]struct{})
		for _, idx := range members {
			m := matches[idx]
			if m.Start < c.Start {
				c.Start = m.Start
			}
			if m.End > c.End {
				c.End = m.End
			}
			distinct[m.Peptide] = struct{}{}
		}
		c.Peptides = len(distinct)

		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Protein != out[j].Protein {
			return out[i].Protein < out[j].Protein
		}
		return out[i].Start < out[j].Start
	})

	return out
}
