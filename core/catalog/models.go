package catalog

// The catalog is an authored, immutable tree: top-level courses may hold
// modules of lessons, standalone resources and/or nested sub-courses, at any
// depth. Lessons and resources are both completable items and share one shape.

type (
	// Item is the atomic completable unit: a lesson or a standalone resource.
	Item struct {
		ID    string `json:"id" yaml:"id"`
		Title string `json:"title" yaml:"title"`
		URL   string `json:"url" yaml:"url"`
	}

	Module struct {
		ID      string `json:"id" yaml:"id"`
		Title   string `json:"title" yaml:"title"`
		Lessons []Item `json:"lessons,omitempty" yaml:"lessons,omitempty"`
	}

	Advertisement struct {
		ID           string `json:"id" yaml:"id"`
		ImageURL     string `json:"image_url" yaml:"imageUrl"`
		AffiliateURL string `json:"affiliate_url" yaml:"affiliateUrl"`
		AltText      string `json:"alt_text" yaml:"altText"`
	}

	Course struct {
		ID           string         `json:"id" yaml:"id"`
		Title        string         `json:"title" yaml:"title"`
		Author       string         `json:"author" yaml:"author"`
		ThumbnailURL string         `json:"thumbnail_url" yaml:"thumbnailUrl"`
		Modules      []Module       `json:"modules,omitempty" yaml:"modules,omitempty"`
		SubCourses   []Course       `json:"sub_courses,omitempty" yaml:"subCourses,omitempty"`
		Resources    []Item         `json:"resources,omitempty" yaml:"resources,omitempty"`
		Ad           *Advertisement `json:"advertisement,omitempty" yaml:"advertisement,omitempty"`
	}

	Catalog struct {
		Courses []Course `json:"courses" yaml:"courses"`
	}
)

// IsClassroom reports whether the course is a pure navigational grouping of
// sub-courses.
func (c Course) IsClassroom() bool {
	return len(c.SubCourses) > 0
}

// Flatten returns all completable items reachable from the course, in display
// order: each module's lessons (module order, then lesson order), then the
// course resources, then each sub-course recursively. The result is a fresh
// slice; no deduplication is applied.
func Flatten(course Course) []Item {
	return appendItems(make([]Item, 0), course)
}

func appendItems(items []Item, course Course) []Item {
	for _, mod := range course.Modules {
		items = append(items, mod.Lessons...)
	}
	items = append(items, course.Resources...)
	for _, sub := range course.SubCourses {
		items = appendItems(items, sub)
	}
	return items
}

// Course finds a course anywhere in the tree by ID.
func (cat *Catalog) Course(id string) (Course, bool) {
	return findCourse(cat.Courses, id)
}

func findCourse(courses []Course, id string) (Course, bool) {
	for _, course := range courses {
		if course.ID == id {
			return course, true
		}
		if sub, ok := findCourse(course.SubCourses, id); ok {
			return sub, true
		}
	}
	return Course{}, false
}

// TopLevelIndex returns the position of the top-level course whose tree
// contains the given course ID. Sub-courses share their ancestor's position.
func (cat *Catalog) TopLevelIndex(id string) (int, bool) {
	for i, course := range cat.Courses {
		if _, ok := findCourse([]Course{course}, id); ok {
			return i, true
		}
	}
	return 0, false
}

// Item finds a completable item anywhere in the tree by ID.
func (cat *Catalog) Item(id string) (Item, bool) {
	for _, course := range cat.Courses {
		for _, item := range Flatten(course) {
			if item.ID == id {
				return item, true
			}
		}
	}
	return Item{}, false
}
