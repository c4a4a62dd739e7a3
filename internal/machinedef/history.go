package machinedef

import "strings"

// recordHistory walks every exited state path and, for each compound or
// parallel state among them that has a shallow/deep history child, records
// the leaves that were active under it just before exit. It is pure: it
// returns a new map rather than mutating any shared state.
func recordHistory(cfg *Config, prevHistory map[string][]string, exitedPaths []string, activeLeavesBefore []string) map[string][]string {
	next := make(map[string][]string, len(prevHistory))
	for k, v := range prevHistory {
		next[k] = append([]string(nil), v...)
	}

	for _, path := range exitedPaths {
		st, err := cfg.FindState(path)
		if err != nil {
			continue
		}
		if st.Type != Compound && st.Type != Parallel {
			continue
		}
		var historyChild *StateConfig
		for _, c := range st.Children {
			if c.Type == ShallowHistory || c.Type == DeepHistory {
				historyChild = c
				break
			}
		}
		if historyChild == nil {
			continue
		}
		var underHere []string
		for _, leaf := range activeLeavesBefore {
			if isUnder(leaf, path) {
				underHere = append(underHere, leaf)
			}
		}
		if len(underHere) == 0 {
			continue
		}
		historyPath := path + "." + historyChild.ID
		if historyChild.Type == ShallowHistory {
			// Shallow: remember only the direct child segment entered.
			shallow := make(map[string]struct{})
			var rec []string
			for _, leaf := range underHere {
				rest := strings.TrimPrefix(leaf, path+".")
				seg := strings.SplitN(rest, ".", 2)[0]
				childPath := path + "." + seg
				if _, seen := shallow[childPath]; !seen {
					shallow[childPath] = struct{}{}
					rec = append(rec, childPath)
				}
			}
			next[historyPath] = rec
		} else {
			next[historyPath] = append([]string(nil), underHere...)
		}
	}
	return next
}

// restoreHistory returns the recorded leaves for a history pseudostate
// path, or nil if none have been recorded yet (first entry ever).
func restoreHistory(history map[string][]string, historyPath string) ([]string, bool) {
	leaves, ok := history[historyPath]
	if !ok || len(leaves) == 0 {
		return nil, false
	}
	return leaves, true
}
