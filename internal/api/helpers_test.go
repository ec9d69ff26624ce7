package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
)

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newTestApp(t *testing.T, storage service.ObjectPresigner) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDatabase(t)

	router := gin.New()
	router.Use(middleware.Recovery())
	api.RegisterRoutes(router, api.NewServices(db, "test-secret", nil, storage), false)
	return &testApp{t: t, db: db, router: router}
}

// do sends a JSON request, optionally with a session cookie, and decodes the body.
func (a *testApp) do(method, path, token string, body interface{}) (int, map[string]interface{}, *httptest.ResponseRecorder) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out, w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	return nil
}

// signup registers a user and returns the session token from the cookie.
func (a *testApp) signup(username string) string {
	a.t.Helper()
	code, body, w := a.do(http.MethodPost, "/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(a.t, http.StatusCreated, code, body)
	c := sessionCookie(w)
	require.NotNil(a.t, c)
	return c.Value
}

func (a *testApp) createRecipe(token, name string) string {
	a.t.Helper()
	code, body, _ := a.do(http.MethodPost, "/recipe", token, map[string]interface{}{
		"name":               name,
		"cuisine":            "Italian",
		"ingredients":        "tomato, basil",
		"instructions":       "chop and mix",
		"recipe_picture_url": "https://example.com/pic.jpg",
		"total_prep_time":    15,
		"difficulty_level":   "easy",
		"notes":              "fresh is best",
	})
	require.Equal(a.t, http.StatusCreated, code, body)
	return body["recipe"].(map[string]interface{})["id"].(string)
}

func (a *testApp) recipeCounters(token, id string) (likes, reviews int) {
	a.t.Helper()
	code, body, _ := a.do(http.MethodGet, "/recipe/"+id, token, nil)
	require.Equal(a.t, http.StatusOK, code, body)
	recipe := body["recipe"].(map[string]interface{})
	return int(recipe["likes"].(float64)), int(recipe["reviews"].(float64))
}

func (a *testApp) isLiked(token, id string) bool {
	a.t.Helper()
	code, body, _ := a.do(http.MethodGet, "/isLiked/"+id, token, nil)
	require.Equal(a.t, http.StatusOK, code, body)
	return body["liked"].(bool)
}
