package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/catalog"
	"github.com/trezcool/darasa/core/progress"
)

type catalogApi struct {
	cat     *catalog.Catalog
	progSvc progress.Service
}

func registerCatalogAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := catalogApi{
		cat:     deps.Catalog,
		progSvc: deps.ProgressSvc,
	}

	cg := g.Group("/catalog", jwt)
	cg.GET("", api.list)
	cg.GET("/courses/:id", api.retrieveCourse)
	cg.GET("/courses/:id/next", api.nextItem)
}

// Handlers

// list returns every top-level course with its completion counts and lock
// state recomputed from the user's current progress.
func (api *catalogApi) list(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	done := api.progSvc.Get(ctx.Request().Context(), claims.Subject)

	unlockedIdx := progress.FirstUnlockedIndex(api.cat.Courses, done)
	courses := make([]CourseSummary, 0, len(api.cat.Courses))
	for i, course := range api.cat.Courses {
		courses = append(courses, newCourseSummary(course, done, i > unlockedIdx))
	}

	return ctx.JSON(http.StatusOK, CatalogResponse{
		FirstUnlockedIndex: unlockedIdx,
		Courses:            courses,
	})
}

func (api *catalogApi) retrieveCourse(ctx echo.Context) error {
	course, locked, err := api.findCourse(ctx)
	if err != nil {
		return err
	}
	if locked {
		return errCourseLocked
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	done := api.progSvc.Get(ctx.Request().Context(), claims.Subject)

	items := catalog.Flatten(course)
	itemStates := make([]ItemState, 0, len(items))
	for _, item := range items {
		itemStates = append(itemStates, ItemState{Item: item, Completed: done.Has(item.ID)})
	}

	subCourses := make([]CourseSummary, 0, len(course.SubCourses))
	for _, sub := range course.SubCourses {
		// sub-courses inherit their ancestor's unlock state
		subCourses = append(subCourses, newCourseSummary(sub, done, false))
	}

	return ctx.JSON(http.StatusOK, CourseResponse{
		CourseSummary: newCourseSummary(course, done, false),
		Items:         itemStates,
		SubCourses:    subCourses,
		Advertisement: course.Ad,
	})
}

// nextItem returns the item right after `item` in the course's flattened
// order, or 204 when `item` is last or unknown.
func (api *catalogApi) nextItem(ctx echo.Context) error {
	course, locked, err := api.findCourse(ctx)
	if err != nil {
		return err
	}
	if locked {
		return errCourseLocked
	}

	next, ok := progress.NextItem(catalog.Flatten(course), ctx.QueryParam("item"))
	if !ok {
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, next)
}

// findCourse resolves the :id param and checks it against the user's
// sequential unlock position.
func (api *catalogApi) findCourse(ctx echo.Context) (catalog.Course, bool, error) {
	id := ctx.Param("id")
	course, ok := api.cat.Course(id)
	if !ok {
		return catalog.Course{}, false, errHttpNotFound
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return catalog.Course{}, false, errors.Wrap(err, "getting context claims")
	}
	done := api.progSvc.Get(ctx.Request().Context(), claims.Subject)

	idx, _ := api.cat.TopLevelIndex(id)
	locked := idx > progress.FirstUnlockedIndex(api.cat.Courses, done)
	return course, locked, nil
}

type (
	CourseSummary struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		Author       string `json:"author,omitempty"`
		ThumbnailURL string `json:"thumbnail_url,omitempty"`
		IsClassroom  bool   `json:"is_classroom"`
		Total        int    `json:"total"`
		Completed    int    `json:"completed"`
		Complete     bool   `json:"complete"`
		Locked       bool   `json:"locked"`
	}

	CatalogResponse struct {
		FirstUnlockedIndex int             `json:"first_unlocked_index"`
		Courses            []CourseSummary `json:"courses"`
	}

	ItemState struct {
		catalog.Item
		Completed bool `json:"completed"`
	}

	CourseResponse struct {
		CourseSummary
		Items         []ItemState            `json:"items"`
		SubCourses    []CourseSummary        `json:"sub_courses,omitempty"`
		Advertisement *catalog.Advertisement `json:"advertisement,omitempty"`
	}
)

func newCourseSummary(course catalog.Course, done progress.Set, locked bool) CourseSummary {
	items := catalog.Flatten(course)
	return CourseSummary{
		ID:           course.ID,
		Title:        course.Title,
		Author:       course.Author,
		ThumbnailURL: course.ThumbnailURL,
		IsClassroom:  course.IsClassroom(),
		Total:        len(items),
		Completed:    progress.CompletedCount(items, done),
		Complete:     progress.IsFullyComplete(course, done),
		Locked:       locked,
	}
}
