package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/trezcool/darasa/core/catalog"
)

// checkCatalog loads and validates a catalog file, reporting its shape.
func (cli *commandLine) checkCatalog(path string) error {
	cat, err := catalog.Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return err
	}

	items := 0
	for _, course := range cat.Courses {
		items += len(catalog.Flatten(course))
	}
	fmt.Printf("OK: %d top-level courses, %d items\n", len(cat.Courses), items)
	return nil
}
