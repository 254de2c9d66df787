// Package immunoviz renders peptide coverage figures: a protein track with
// packed peptide bars, per-sample density traces, and core window shading.
package immunoviz

import "sort"

// A Sample ties the sample's column name in the measurement table to its
// display name and color (in RGB hex, e.g., #FF0000 for red).
type Sample struct {
	Sample      string
	DisplayName string `json:"display_name"`
	Color       string `json:"color"`
	SortOrder   int    `json:"sort_order,omitempty"`
}

// SampleMap ([string sample name]Sample) keeps track of how each intensity
// column should be presented.
type SampleMap map[string]Sample

// Valid tests that display names are bijective: two samples sharing a
// display name would be indistinguishable in the figure.
func (s SampleMap) Valid() bool {
	inverse := make(map[string]string)
	for k, v := range s {
		name := v.DisplayName
		if name == "" {
			name = k
		}
		inverse[name] = k
	}

	return len(s) == len(inverse)
}

// Sorted returns the samples ordered by SortOrder, breaking ties by sample
// name.
func (s SampleMap) Sorted() []Sample {
	out := make([]Sample, 0, len(s))

	for k, v := range s {
		v.Sample = k
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		// If SortOrder is defined and different, use it:
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}

		return out[i].Sample < out[j].Sample
	})

	return out
}

// Title returns the name to draw for the sample.
func (s Sample) Title() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}

	return s.Sample
}

// SampleMapFromNames builds a default map in table column order.
func SampleMapFromNames(names []string) SampleMap {
	out := make(SampleMap, len(names))
	for i, name := range names {
		out[name] = Sample{
			Color:     DefaultSampleColors[i%len(DefaultSampleColors)],
			SortOrder: i,
		}
	}

	return out
}
