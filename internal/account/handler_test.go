package account

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/role-portal/internal/store"
)

type stubDirectory struct {
	roles   []store.Role
	users   []store.User
	err     error
	created []store.Role
}

func (s *stubDirectory) FindRoles(ctx context.Context) ([]store.Role, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.roles, nil
}

func (s *stubDirectory) CreateRole(ctx context.Context, name string) (*store.Role, error) {
	if s.err != nil {
		return nil, s.err
	}
	role := store.Role{ID: "role-1", Name: name}
	s.created = append(s.created, role)
	return &role, nil
}

func (s *stubDirectory) FindUsers(ctx context.Context) ([]store.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users, nil
}

func newTestRouter(t *testing.T, directory Directory) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.LoadHTMLGlob("../../web/templates/*.html")

	handler := NewHandler(directory, log.New(io.Discard, "", 0))
	router.GET("/", handler.Home)
	router.GET("/users", handler.UsersPage)
	router.GET("/roles", handler.ListRoles)
	router.POST("/roles", handler.CreateRole)
	router.GET("/add-role", handler.AddRolePage)
	router.GET("/add-user", handler.AddUserPage)
	router.GET("/admin", handler.AdminPage)
	router.GET("/user", handler.UserPage)
	return router
}

func serve(router *gin.Engine, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHome(t *testing.T) {
	router := newTestRouter(t, &stubDirectory{})

	rec := serve(router, http.MethodGet, "/", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected greeting body")
	}
}

func TestListRoles(t *testing.T) {
	directory := &stubDirectory{roles: []store.Role{
		{ID: "role-1", Name: "Admin"},
		{ID: "role-2", Name: "Editor"},
	}}
	router := newTestRouter(t, directory)

	rec := serve(router, http.MethodGet, "/roles", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var roles []store.Role
	if err := json.Unmarshal(rec.Body.Bytes(), &roles); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(roles) != 2 || roles[0].Name != "Admin" {
		t.Fatalf("unexpected roles: %+v", roles)
	}
}

func TestCreateRole(t *testing.T) {
	directory := &stubDirectory{}
	router := newTestRouter(t, directory)

	form := url.Values{"name": {"Admin"}}
	rec := serve(router, http.MethodPost, "/roles", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	if len(directory.created) != 1 || directory.created[0].Name != "Admin" {
		t.Fatalf("unexpected created roles: %+v", directory.created)
	}

	var role store.Role
	if err := json.Unmarshal(rec.Body.Bytes(), &role); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if role.ID == "" || role.Name != "Admin" {
		t.Fatalf("unexpected role: %+v", role)
	}
}

func TestCreateRoleStoreFailure(t *testing.T) {
	router := newTestRouter(t, &stubDirectory{err: errors.New("db down")})

	form := url.Values{"name": {"Admin"}}
	rec := serve(router, http.MethodPost, "/roles", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "STORE_FAILURE") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUsersPage(t *testing.T) {
	roleID := "role-1"
	directory := &stubDirectory{users: []store.User{
		{
			ID:     "user-1",
			Email:  "a@x.com",
			RoleID: &roleID,
			Role:   &store.Role{ID: roleID, Name: "Admin"},
		},
		{ID: "user-2", Email: "b@x.com"},
	}}
	router := newTestRouter(t, directory)

	rec := serve(router, http.MethodGet, "/users", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "a@x.com") || !strings.Contains(body, "Admin") {
		t.Fatalf("expected user listing with role names, got %s", body)
	}
	if !strings.Contains(body, "b@x.com") {
		t.Fatalf("expected user without role in listing, got %s", body)
	}
}

func TestUsersPageStoreFailure(t *testing.T) {
	router := newTestRouter(t, &stubDirectory{err: errors.New("db down")})

	rec := serve(router, http.MethodGet, "/users", nil, "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestAddUserPageListsRoleOptions(t *testing.T) {
	directory := &stubDirectory{roles: []store.Role{{ID: "role-1", Name: "Editor"}}}
	router := newTestRouter(t, directory)

	rec := serve(router, http.MethodGet, "/add-user", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Editor") {
		t.Fatalf("expected role option in form, got %s", rec.Body.String())
	}
}

func TestStaticPages(t *testing.T) {
	router := newTestRouter(t, &stubDirectory{})

	for _, path := range []string{"/add-role", "/admin", "/user"} {
		rec := serve(router, http.MethodGet, path, nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: unexpected status: %d", path, rec.Code)
		}
	}
}
