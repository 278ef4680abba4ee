package progress

import "github.com/trezcool/darasa/core/catalog"

// Derived views over (catalog subtree, completed-id snapshot). All of these
// are pure and cheap; they are recomputed per request, never cached, since the
// completed set can change on any toggle.

// CompletedCount counts the items whose id is in done. Ids in done that do not
// appear in items are ignored.
func CompletedCount(items []catalog.Item, done Set) int {
	var n int
	for _, item := range items {
		if done.Has(item.ID) {
			n++
		}
	}
	return n
}

// IsFullyComplete reports whether every completable item of the course is
// done. A course with no completable items counts as complete.
func IsFullyComplete(course catalog.Course, done Set) bool {
	for _, item := range catalog.Flatten(course) {
		if !done.Has(item.ID) {
			return false
		}
	}
	return true
}

// FirstUnlockedIndex returns the index of the first top-level course that is
// not fully complete, or len(courses) when everything is done. Courses at or
// before the returned index are selectable; courses after it are locked.
func FirstUnlockedIndex(courses []catalog.Course, done Set) int {
	for i, course := range courses {
		if !IsFullyComplete(course, done) {
			return i
		}
	}
	return len(courses)
}

// NextItem returns the item following activeID in the flattened sequence.
// There is no wraparound; the last item, or an id absent from the sequence,
// yields no next item.
func NextItem(items []catalog.Item, activeID string) (catalog.Item, bool) {
	for i, item := range items {
		if item.ID == activeID {
			if i+1 < len(items) {
				return items[i+1], true
			}
			return catalog.Item{}, false
		}
	}
	return catalog.Item{}, false
}
