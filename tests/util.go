package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/catalog"
	"github.com/trezcool/darasa/core/progress"
	"github.com/trezcool/darasa/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	usr.SetActive(isActive)
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func SetProgress(t *testing.T, repo progress.Repository, userID string, itemIDs ...string) {
	if err := repo.UpsertProgress(context.Background(), userID, itemIDs); err != nil {
		t.Fatalf("SetProgress() failed: %v", err)
	}
}

// Catalog returns a small fixed catalog: course-1 (items a, b, c),
// course-2 (classroom wrapping sub course-2-1 with item d) and course-3
// (item e).
func Catalog(t *testing.T) *catalog.Catalog {
	cat, err := catalog.Parse([]byte(catalogYAML))
	if err != nil {
		t.Fatalf("Catalog() failed: %v", err)
	}
	return cat
}

const catalogYAML = `
courses:
  - id: course-1
    title: Course One
    author: Jane Dee
    thumbnailUrl: https://cdn.test/course-1.png
    modules:
      - id: m1
        title: Module One
        lessons:
          - id: a
            title: Lesson A
            url: https://videos.test/a
          - id: b
            title: Lesson B
            url: https://videos.test/b
    resources:
      - id: c
        title: Cheat Sheet
        url: https://docs.test/c
  - id: course-2
    title: Course Two
    advertisement:
      id: ad-1
      imageUrl: https://cdn.test/ad-1.png
      affiliateUrl: https://shop.test/ad-1
      altText: Great deal
    subCourses:
      - id: course-2-1
        title: Sub Course One
        modules:
          - id: m2
            title: Module Two
            lessons:
              - id: d
                title: Lesson D
                url: https://videos.test/d
  - id: course-3
    title: Course Three
    modules:
      - id: m3
        title: Module Three
        lessons:
          - id: e
            title: Lesson E
            url: https://videos.test/e
`
