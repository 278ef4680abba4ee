package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"testing"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/tests"
)

func Test_progressApi_retrieve(t *testing.T) {
	app := setup(t)

	fresh := testutil.CreateUser(t, usrRepo, "Fresh Kid", "fresh@test.cd", "", true)
	ahead := testutil.CreateUser(t, usrRepo, "Ahead Kid", "ahead@test.cd", "", true)
	testutil.SetProgress(t, progRepo, ahead.ID, "b", "a")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "no progress yet", token: getToken(t, fresh), wantCode: http.StatusOK,
			wantData: marchallObj(t, echoapi.ProgressResponse{ItemIDs: []string{}, Count: 0}),
		},
		{
			name: "stored progress, sorted", token: getToken(t, ahead), wantCode: http.StatusOK,
			wantData: marchallObj(t, echoapi.ProgressResponse{ItemIDs: []string{"a", "b"}, Count: 2}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/progress"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_progressApi_toggle(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero Kid", "hero@test.cd", "", true)
	token := getToken(t, student)

	toggleBody := func(itemID string) []byte {
		return marchallObj(t, echoapi.ToggleRequest{ItemID: itemID})
	}

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "required fields", token: token, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"item_id": "this field is required"}),
		},
		{
			name: "unknown item", token: token, body: toggleBody("lol"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"item_id": "unknown item"}),
		},
		{
			name: "toggle on", token: token, body: toggleBody("a"), wantCode: http.StatusOK,
			wantData: marchallObj(t, echoapi.ToggleResponse{ItemID: "a", Completed: true, ItemIDs: []string{"a"}, Count: 1}),
		},
		{
			name: "toggle another on", token: token, body: toggleBody("b"), wantCode: http.StatusOK,
			wantData: marchallObj(t, echoapi.ToggleResponse{ItemID: "b", Completed: true, ItemIDs: []string{"a", "b"}, Count: 2}),
		},
		{
			name: "toggle off", token: token, body: toggleBody("a"), wantCode: http.StatusOK,
			wantData: marchallObj(t, echoapi.ToggleResponse{ItemID: "a", Completed: false, ItemIDs: []string{"b"}, Count: 1}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/progress/toggle"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// toggles were written through to the store
	ids, err := progRepo.GetProgress(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("GetProgress() failed: %v", err)
	}
	if want := []string{"b"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("failed! stored ids = %v; want %v", ids, want)
	}
}

func Test_progressApi_logoutEvictsSession(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero Kid", "hero@test.cd", "", true)
	token := getToken(t, student)

	// toggle an item, then logout
	req, rec := newAuthRequest(http.MethodPost, "/v1/progress/toggle", token, marchallObj(t, echoapi.ToggleRequest{ItemID: "a"}))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodPost, "/v1/users/logout", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	// the set survives logout: it is reloaded from the store next session
	if err := progRepo.UpsertProgress(context.Background(), student.ID, []string{"b"}); err != nil {
		t.Fatalf("UpsertProgress() failed: %v", err)
	}
	req, rec = newAuthRequest(http.MethodGet, "/v1/progress", token)
	app.ServeHTTP(rec, req)

	var respData echoapi.ProgressResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
		t.Fatalf("json.Unmarshal() failed! err %v", err)
	}
	if want := []string{"b"}; !reflect.DeepEqual(respData.ItemIDs, want) {
		t.Errorf("failed! item_ids = %v; want %v (fresh session must reload the store)", respData.ItemIDs, want)
	}
}
