package pepmap

import (
	"runtime"
	"sort"
	"sync"

	"github.com/BenLubar/memoize"
)

// ProteinMatches collects every match found in one search, keyed by protein
// name.
type ProteinMatches map[string][]Match

// Peptides returns the distinct matched peptides for one protein, ordered by
// first occurrence.
func (pm ProteinMatches) Peptides(protein string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range pm[protein] {
		if _, exists := seen[m.Peptide]; exists {
			continue
		}
		seen[m.Peptide] = struct{}{}
		out = append(out, m.Peptide)
	}

	return out
}

var memoizedFindMatches = memoize.Memoize(FindMatches)
var memoMutex sync.Mutex

// CachedFindMatches memoizes FindMatches on (seq, peptide, maxMismatches).
// The shared cache serializes callers, which suits repeated lookups of the
// same protein; for bulk searches use Map.
func CachedFindMatches(seq, peptide string, maxMismatches int) []Match {
	memoMutex.Lock()
	defer memoMutex.Unlock()

	return memoizedFindMatches.(func(string, string, int) []Match)(seq, peptide, maxMismatches)
}

// Map searches every peptide against every protein, fanning out across
// proteins. Duplicate peptide strings are searched once. concurrency <= 0
// uses one worker per CPU. Matches for each protein are ordered by start
// position, then peptide.
func Map(proteins map[string]string, peptides []string, maxMismatches, concurrency int) ProteinMatches {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	uniques := dedupe(peptides)

	type result struct {
		protein string
		matches []Match
	}

	results := make(chan result)
	doneListening := make(chan struct{})

	out := make(ProteinMatches)
	go func() {
		defer close(doneListening)

		for res := range results {
			if len(res.matches) == 0 {
				continue
			}
			out[res.protein] = res.matches
		}
	}()

	semaphore := make(chan struct{}, concurrency)

	for name, seq := range proteins {

		// Will block after `concurrency` simultaneous goroutines are running
		semaphore <- struct{}{}

		go func(name, seq string) {

			// Be sure to permit unblocking once we finish
			defer func() { <-semaphore }()

			var matches []Match
			for _, peptide := range uniques {
				for _, m := range FindMatches(seq, peptide, maxMismatches) {
					m.Protein = name
					matches = append(matches, m)
				}
			}

			sort.Slice(matches, func(i, j int) bool {
				if matches[i].Start != matches[j].Start {
					return matches[i].Start < matches[j].Start
				}
				return matches[i].Peptide < matches[j].Peptide
			})

			results <- result{protein: name, matches: matches}
		}(name, seq)
	}

	// Make sure all the searches finish before we exit, otherwise we'd lose
	// the last `concurrency` proteins.
	for i := 0; i < cap(semaphore); i++ {
		semaphore <- struct{}{}
	}

	close(results)
	<-doneListening

	return out
}

func dedupe(peptides []string) []string {
	seen := make(map[string]struct{}, len(peptides))
	out := make([]string, 0, len(peptides))
	for _, p := range peptides {
		if p == "" {
			continue
		}
		if _, exists := seen[p]; exists {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	return out
}
