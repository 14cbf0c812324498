package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inkpost/app/auth"
	"inkpost/app/controllers"
	"inkpost/app/repositories"
	"inkpost/app/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "route-test-secret"

var ctx = context.Background()

func setupTestRouter(t *testing.T) (*mux.Router, *repositories.Store) {
	t.Helper()
	store, err := repositories.OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	gate := auth.NewGate(testSecret)
	postService := services.NewPostService(store.Posts, store.Comments, gate)
	commentService := services.NewCommentService(store.Comments, gate)

	router := SetupRoutes(
		controllers.NewPostController(postService, false),
		controllers.NewCommentController(commentService, false),
	)
	return router, store
}

func signToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func serve(router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type listing struct {
	Title string `json:"title"`
	Post  []struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Published bool   `json:"published"`
	} `json:"post"`
	PostComments []struct {
		ID   string `json:"id"`
		Post string `json:"post"`
	} `json:"post_comments"`
}

func TestBlogLifecycle(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := signToken(t)

	w := serve(router, "POST", "/blog/posts", token, `{"name":"Alice","title":"Hi","text":"World","published":"on"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `"post sent"`, w.Body.String())

	w = serve(router, "GET", "/blog/posts", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var published listing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &published))
	require.Len(t, published.Post, 1)
	postID := published.Post[0].ID
	assert.True(t, published.Post[0].Published)

	w = serve(router, "POST", "/blog/post/"+postID+"/comment", "", `{"name":"Bob","text":"first"}`)
	require.JSONEq(t, `{"comment":"Comment Sent"}`, w.Body.String())

	w = serve(router, "GET", "/blog/post/"+postID, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		Title        string `json:"title"`
		PostComments []struct {
			ID string `json:"id"`
		} `json:"post_comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Post Detail", detail.Title)
	require.Len(t, detail.PostComments, 1)
	commentID := detail.PostComments[0].ID

	w = serve(router, "PUT", "/blog/post/"+postID, token, `{"name":"Alice","title":"Hidden","text":"World"}`)
	require.JSONEq(t, `"post updated"`, w.Body.String())

	w = serve(router, "GET", "/blog/posts/unpublished", token, "")
	var drafts listing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &drafts))
	require.Len(t, drafts.Post, 1)
	assert.Equal(t, "Hidden", drafts.Post[0].Title)

	w = serve(router, "DELETE", "/blog/comment/"+commentID, token, "")
	require.JSONEq(t, `"Comment Deleted"`, w.Body.String())

	w = serve(router, "POST", "/blog/post/"+postID+"/comment", "", `{"name":"Carol","text":"second"}`)
	require.JSONEq(t, `{"comment":"Comment Sent"}`, w.Body.String())

	w = serve(router, "DELETE", "/blog/post/"+postID, token, "")
	require.JSONEq(t, `"Post Deleted"`, w.Body.String())

	w = serve(router, "GET", "/blog/post/"+postID, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(router, "GET", "/blog/posts/unpublished", token, "")
	var after listing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &after))
	assert.Empty(t, after.Post)
	assert.Empty(t, after.PostComments)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, store := setupTestRouter(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	expiredToken, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"create post", "POST", "/blog/posts", `{"name":"A","title":"B","text":"C"}`},
		{"list drafts", "GET", "/blog/posts/unpublished", ""},
		{"update post", "PUT", "/blog/post/abc", `{"name":"A","title":"B","text":"C"}`},
		{"delete post", "DELETE", "/blog/post/abc", ""},
		{"delete comment", "DELETE", "/blog/comment/abc", ""},
	}

	for _, tt := range tests {
		for _, token := range []string{"", "not-a-jwt", expiredToken} {
			t.Run(tt.name, func(t *testing.T) {
				w := serve(router, tt.method, tt.path, token, tt.body)
				assert.Equal(t, http.StatusOK, w.Code)
				assert.JSONEq(t, `"Login required"`, w.Body.String())
			})
		}
	}

	posts, err := store.Posts.ListByPublished(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestRouterFallbacks(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := serve(router, "GET", "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"OK"`, w.Body.String())

	w = serve(router, "GET", "/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())

	w = serve(router, "PATCH", "/blog/posts", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
}
