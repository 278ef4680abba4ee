package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core/catalog"
	"github.com/trezcool/darasa/tests"
)

func Test_catalogApi_list(t *testing.T) {
	app := setup(t)

	fresh := testutil.CreateUser(t, usrRepo, "Fresh Kid", "fresh@test.cd", "", true)
	ahead := testutil.CreateUser(t, usrRepo, "Ahead Kid", "ahead@test.cd", "", true)
	// course-1 (a, b, c) fully complete; b of course-1 would not be enough
	testutil.SetProgress(t, progRepo, ahead.ID, "a", "b", "c")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "nothing done: only first course unlocked", token: getToken(t, fresh), wantCode: http.StatusOK, extra: 0},
		{name: "first course complete: second unlocked", token: getToken(t, ahead), wantCode: http.StatusOK, extra: 1},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/catalog"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode != http.StatusOK {
				checkCodeAndData(t, tt, rec)
				return
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
			}

			var respData echoapi.CatalogResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
				t.Fatalf("json.Unmarshal() failed! err %v", err)
			}
			wantIdx := tt.extra.(int)
			if respData.FirstUnlockedIndex != wantIdx {
				t.Errorf("failed! first_unlocked_index = %d; want %d", respData.FirstUnlockedIndex, wantIdx)
			}
			if len(respData.Courses) != 3 {
				t.Fatalf("failed! len(courses) = %d; want 3", len(respData.Courses))
			}
			for i, course := range respData.Courses {
				wantLocked := i > wantIdx
				if course.Locked != wantLocked {
					t.Errorf("failed! courses[%d].locked = %v; want %v", i, course.Locked, wantLocked)
				}
			}
			if !respData.Courses[1].IsClassroom {
				t.Error("failed! course-2 should be a classroom")
			}
		})
	}
}

func Test_catalogApi_retrieveCourse(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero Kid", "hero@test.cd", "", true)
	testutil.SetProgress(t, progRepo, student.ID, "a")
	token := getToken(t, student)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/catalog/courses/course-1", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "unknown course", path: "/v1/catalog/courses/lol", token: token, wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
		{name: "locked course", path: "/v1/catalog/courses/course-2", token: token, wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "course locked"})},
		{name: "locked sub-course", path: "/v1/catalog/courses/course-2-1", token: token, wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "course locked"})},
		{name: "unlocked course", path: "/v1/catalog/courses/course-1", token: token, wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode != http.StatusOK {
				checkCodeAndData(t, tt, rec)
				return
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
			}

			var respData echoapi.CourseResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
				t.Fatalf("json.Unmarshal() failed! err %v", err)
			}
			if respData.ID != "course-1" {
				t.Errorf("failed! id = %s; want course-1", respData.ID)
			}
			wantItems := []echoapi.ItemState{
				{Item: catalog.Item{ID: "a", Title: "Lesson A", URL: "https://videos.test/a"}, Completed: true},
				{Item: catalog.Item{ID: "b", Title: "Lesson B", URL: "https://videos.test/b"}},
				{Item: catalog.Item{ID: "c", Title: "Cheat Sheet", URL: "https://docs.test/c"}},
			}
			if len(respData.Items) != len(wantItems) {
				t.Fatalf("failed! len(items) = %d; want %d", len(respData.Items), len(wantItems))
			}
			for i, item := range respData.Items {
				if item != wantItems[i] {
					t.Errorf("failed! items[%d] = %+v; want %+v", i, item, wantItems[i])
				}
			}
			if respData.Total != 3 || respData.Completed != 1 || respData.Complete {
				t.Errorf("failed! counts = %d/%d complete=%v; want 1/3 complete=false",
					respData.Completed, respData.Total, respData.Complete)
			}
		})
	}

	t.Run("classroom course", func(t *testing.T) {
		// a user with course-1 fully complete sees course-2 unlocked
		ahead := testutil.CreateUser(t, usrRepo, "Ahead Kid", "ahead@test.cd", "", true)
		testutil.SetProgress(t, progRepo, ahead.ID, "a", "b", "c")

		req, rec := newAuthRequest(http.MethodGet, "/v1/catalog/courses/course-2", getToken(t, ahead))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var respData echoapi.CourseResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if !respData.IsClassroom {
			t.Error("failed! course-2 should be a classroom")
		}
		if len(respData.SubCourses) != 1 || respData.SubCourses[0].ID != "course-2-1" {
			t.Errorf("failed! sub_courses = %+v; want [course-2-1]", respData.SubCourses)
		}
		if respData.Advertisement == nil || respData.Advertisement.ID != "ad-1" {
			t.Errorf("failed! advertisement = %+v; want ad-1", respData.Advertisement)
		}
	})
}

func Test_catalogApi_nextItem(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero Kid", "hero@test.cd", "", true)
	token := getToken(t, student)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/catalog/courses/course-1/next?item=a", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "unknown course", path: "/v1/catalog/courses/lol/next?item=a", token: token, wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
		{
			name: "next of a is b", path: "/v1/catalog/courses/course-1/next?item=a", token: token, wantCode: http.StatusOK,
			wantData: marchallObj(t, catalog.Item{ID: "b", Title: "Lesson B", URL: "https://videos.test/b"}),
		},
		{
			name: "module boundary is crossed", path: "/v1/catalog/courses/course-1/next?item=b", token: token, wantCode: http.StatusOK,
			wantData: marchallObj(t, catalog.Item{ID: "c", Title: "Cheat Sheet", URL: "https://docs.test/c"}),
		},
		{name: "last item has no next", path: "/v1/catalog/courses/course-1/next?item=c", token: token, wantCode: http.StatusNoContent},
		{name: "unknown item has no next", path: "/v1/catalog/courses/course-1/next?item=lol", token: token, wantCode: http.StatusNoContent},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusNoContent {
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				if rec.Body.Len() != 0 {
					t.Errorf("failed! body = %s; want empty", rec.Body.String())
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}
