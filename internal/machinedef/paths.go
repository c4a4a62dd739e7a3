package machinedef

import "strings"

// computeLCCA returns the least common compound ancestor path of source and
// target.
func computeLCCA(sourcePath, targetPath string) string {
	source := strings.Split(sourcePath, ".")
	target := strings.Split(targetPath, ".")

	minLen := len(source)
	if len(target) < minLen {
		minLen = len(target)
	}

	i := 0
	for i < minLen && source[i] == target[i] {
		i++
	}
	if i == 0 {
		return ""
	}
	return strings.Join(source[:i], ".")
}

// getAncestors returns every ancestor path of leafPath, including itself,
// outermost first.
func getAncestors(leafPath string) []string {
	segments := strings.Split(leafPath, ".")
	ancestors := make([]string, len(segments))
	current := ""
	for i, seg := range segments {
		if current != "" {
			current += "."
		}
		current += seg
		ancestors[i] = current
	}
	return ancestors
}

// getExitStates returns the states to exit between sourcePath and lccaPath
// (exclusive), outermost first as computed; callers reverse for bottom-up
// exit-action ordering.
func getExitStates(sourcePath, lccaPath string) []string {
	if lccaPath == "" {
		return getAncestors(sourcePath)
	}
	if !strings.HasPrefix(sourcePath, lccaPath+".") && sourcePath != lccaPath {
		return nil
	}
	if sourcePath == lccaPath {
		return nil
	}
	source := strings.Split(sourcePath, ".")
	lccaSegs := strings.Split(lccaPath, ".")
	exitSegs := source[len(lccaSegs):]

	paths := []string{}
	current := lccaPath
	for _, seg := range exitSegs {
		current += "." + seg
		paths = append(paths, current)
	}
	return paths
}

// getEntryStates returns the states to enter from lccaPath (exclusive) to
// targetPath (inclusive), outer first.
func getEntryStates(lccaPath, targetPath string) []string {
	if lccaPath == "" {
		return getAncestors(targetPath)
	}
	lccaSegs := strings.Split(lccaPath, ".")
	targetSegs := strings.Split(targetPath, ".")
	if len(targetSegs) <= len(lccaSegs) {
		if targetPath == lccaPath {
			return nil
		}
		return []string{targetPath}
	}
	entrySegs := targetSegs[len(lccaSegs):]
	paths := []string{}
	current := lccaPath
	for _, seg := range entrySegs {
		current += "." + seg
		paths = append(paths, current)
	}
	return paths
}

// isUnder reports whether leaf is path or a descendant of path.
func isUnder(leaf, path string) bool {
	return leaf == path || strings.HasPrefix(leaf, path+".")
}
