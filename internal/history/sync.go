package history

import "sort"

// Forward reconciles the store against the live session snapshot by
// recording every live session the store doesn't hold yet. Entries without a
// live session are left alone: history also drives "create or attach" for
// directories that aren't running. Returns the number of names added.
//
// The snapshot is visited in lexical order so the result is deterministic
// regardless of the order the multiplexer reported it in.
func Forward(s *Store, live []string) int {
	sorted := make([]string, len(live))
	copy(sorted, live)
	sort.Strings(sorted)

	added := 0
	for _, name := range sorted {
		if !s.Contains(name) {
			s.Record(name)
			added++
		}
	}
	return added
}

// Reverse prunes every store entry that has no live session, returning the
// number removed. A second Forward over the same snapshot afterwards is a
// no-op.
func Reverse(s *Store, live []string) int {
	alive := make(map[string]struct{}, len(live))
	for _, name := range live {
		alive[name] = struct{}{}
	}

	removed := 0
	for _, name := range s.List() {
		if _, ok := alive[name]; !ok {
			// Remove can't fail here: the name came from List.
			_ = s.Remove(name)
			removed++
		}
	}
	return removed
}
