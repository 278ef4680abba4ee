package catalog

import (
	"io/fs"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

var (
	ErrEmptyID          = errors.New("catalog: id is required")
	ErrEmptyTitle       = errors.New("catalog: title is required")
	ErrDuplicateID      = errors.New("catalog: duplicate item id")
	ErrDuplicateCourse  = errors.New("catalog: duplicate course id")
	ErrNoTopLevelCourse = errors.New("catalog: no top-level courses")
)

// Load parses and validates an authored catalog file.
func Load(fsys fs.FS, path string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalog %s", path)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, errors.Wrap(err, "parsing catalog")
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks the authored tree at load time: ids and titles present,
// course ids unique across the tree, and item ids unique across all reachable
// items. Duplicate item ids are rejected outright as completion counting is
// id-membership based.
func (cat *Catalog) Validate() error {
	if len(cat.Courses) == 0 {
		return ErrNoTopLevelCourse
	}
	courseIDs := make(map[string]struct{})
	itemIDs := make(map[string]struct{})
	for _, course := range cat.Courses {
		if err := validateCourse(course, courseIDs, itemIDs); err != nil {
			return err
		}
	}
	return nil
}

func validateCourse(course Course, courseIDs, itemIDs map[string]struct{}) error {
	if course.ID == "" {
		return ErrEmptyID
	}
	if course.Title == "" {
		return errors.Wrapf(ErrEmptyTitle, "course %s", course.ID)
	}
	if _, ok := courseIDs[course.ID]; ok {
		return errors.Wrapf(ErrDuplicateCourse, "course %s", course.ID)
	}
	courseIDs[course.ID] = struct{}{}

	for _, mod := range course.Modules {
		if mod.ID == "" {
			return errors.Wrapf(ErrEmptyID, "module in course %s", course.ID)
		}
		for _, item := range mod.Lessons {
			if err := validateItem(item, itemIDs); err != nil {
				return err
			}
		}
	}
	for _, item := range course.Resources {
		if err := validateItem(item, itemIDs); err != nil {
			return err
		}
	}
	for _, sub := range course.SubCourses {
		if err := validateCourse(sub, courseIDs, itemIDs); err != nil {
			return err
		}
	}
	return nil
}

func validateItem(item Item, itemIDs map[string]struct{}) error {
	if item.ID == "" {
		return ErrEmptyID
	}
	if item.Title == "" {
		return errors.Wrapf(ErrEmptyTitle, "item %s", item.ID)
	}
	if _, ok := itemIDs[item.ID]; ok {
		return errors.Wrapf(ErrDuplicateID, "item %s", item.ID)
	}
	itemIDs[item.ID] = struct{}{}
	return nil
}
