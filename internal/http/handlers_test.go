package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmatrack/internal/repository"
	"farmatrack/internal/service"
)

func init() { gin.SetMode(gin.TestMode) }

func newServices(store *repository.Store) Services {
	users := service.NewUserService(store.Users)
	return Services{
		Doctors:  service.NewDoctorService(store.Doctors),
		Products: service.NewProductService(store.Products),
		Tasks:    service.NewTaskService(store.Tasks),
		Targets:  service.NewTargetService(store.Targets),
		Users:    users,
		Stock:    service.NewMrStockService(store.Stock, store.Tx),
		Auth:     service.NewAuthService(users, "test-secret", time.Hour),
	}
}

func setupServerWith(t *testing.T, opts Options) *Server {
	t.Helper()
	store := repository.NewMemoryStore().Repositories()
	return NewServer(newServices(store), opts)
}

func setupServer(t *testing.T) *Server {
	return setupServerWith(t, Options{})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return doJSONAuth(t, s, method, path, body, "")
}

func doJSONAuth(t *testing.T, s *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestProductFlow(t *testing.T) {
	s := setupServer(t)
	// create
	w := doJSON(t, s, http.MethodPost, "/api/products", map[string]any{
		"name": "Aspirin", "category": "Tablet", "price": 10, "stock": 5,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create code %v: %s", w.Code, w.Body)
	}
	// get
	w = doJSON(t, s, http.MethodGet, "/api/products/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get code %v", w.Code)
	}
	// update
	w = doJSON(t, s, http.MethodPut, "/api/products/1", map[string]any{
		"name": "A+", "category": "Tablet", "price": 12, "stock": 7,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update code %v", w.Code)
	}
	p := decode[map[string]any](t, w)
	if p["name"] != "A+" || p["price"] != float64(12) {
		t.Fatalf("update not applied: %v", p)
	}
	// list
	w = doJSON(t, s, http.MethodGet, "/api/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list code %v", w.Code)
	}
	// delete twice, both 204
	for i := 0; i < 2; i++ {
		w = doJSON(t, s, http.MethodDelete, "/api/products/1", nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("delete code %v", w.Code)
		}
	}
}

func TestProductList_NewestFirst(t *testing.T) {
	s := setupServer(t)
	for _, name := range []string{"A", "B", "C"} {
		w := doJSON(t, s, http.MethodPost, "/api/products", map[string]any{"name": name, "price": 1, "stock": 1})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := doJSON(t, s, http.MethodGet, "/api/products", nil)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 3)
	assert.Equal(t, "C", list[0]["name"])
	assert.Equal(t, "A", list[2]["name"])
}

func TestDoctorList_SortedByName(t *testing.T) {
	s := setupServer(t)
	for _, name := range []string{"Dr. Zed", "Dr. Ana", "Dr. Ana"} {
		w := doJSON(t, s, http.MethodPost, "/api/doctors", map[string]any{"name": name, "city": "Pune"})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	list := decode[[]map[string]any](t, doJSON(t, s, http.MethodGet, "/api/doctors", nil))
	require.Len(t, list, 3)
	assert.Equal(t, "Dr. Ana", list[0]["name"])
	assert.Equal(t, float64(2), list[0]["id"])
	assert.Equal(t, float64(3), list[1]["id"])
	assert.Equal(t, "Dr. Zed", list[2]["name"])
}

func TestTaskCreate_ForcesPending(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/tasks", map[string]any{
		"title": "Visit Dr. Ana", "status": "done", "dueDate": "2025-03-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	task := decode[map[string]any](t, w)
	assert.Equal(t, "pending", task["status"])
	assert.Equal(t, time.Now().Format("2006-01-02"), task["createdDate"])

	w = doJSON(t, s, http.MethodPut, "/api/tasks/1", map[string]any{"title": "Visit Dr. Ana", "status": "done"})
	require.Equal(t, http.StatusOK, w.Code)
	task = decode[map[string]any](t, w)
	assert.Equal(t, "done", task["status"])
	assert.Equal(t, time.Now().Format("2006-01-02"), task["createdDate"])
}

func TestTargetCreate_ResetsProgress(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/targets", map[string]any{
		"mrName": "Asha", "period": "Q1", "salesTarget": 1000, "visitsTarget": 40,
		"salesAchievement": 999, "status": "closed",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	tg := decode[map[string]any](t, w)
	assert.Equal(t, float64(0), tg["salesAchievement"])
	assert.Equal(t, float64(0), tg["visitsAchievement"])
	assert.Equal(t, "active", tg["status"])

	w = doJSON(t, s, http.MethodPost, "/api/targets", map[string]any{
		"mrName": "Asha", "period": "Q1", "salesTarget": -1, "visitsTarget": 40,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Sales target must be >= 0", decode[apiError](t, w).Message)
}

func TestHTTP_BadRequests(t *testing.T) {
	s := setupServer(t)
	cases := []struct {
		name    string
		method  string
		path    string
		body    any
		message string
	}{
		{"missing name", http.MethodPost, "/api/products", map[string]any{"price": 1, "stock": 1}, "Name is required"},
		{"blank name", http.MethodPost, "/api/doctors", map[string]any{"name": "   "}, "Name is required"},
		{"negative price", http.MethodPost, "/api/products", map[string]any{"name": "A", "price": -1, "stock": 1}, "Price must be >= 0"},
		{"bad due date", http.MethodPost, "/api/tasks", map[string]any{"title": "x", "dueDate": "01/02/2025"}, "Due date must be in YYYY-MM-DD format"},
		{"missing mr name", http.MethodPost, "/api/targets", map[string]any{"period": "Q1", "salesTarget": 1, "visitsTarget": 1}, "MR name is required"},
		{"bad id", http.MethodGet, "/api/doctors/abc", nil, "invalid id"},
		{"bad email", http.MethodPost, "/api/users", map[string]any{"name": "A", "email": "nope", "password": "secret1"}, "Email must be a valid email address"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, s, tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, tc.message, decode[apiError](t, w).Message)
		})
	}
}

func TestHTTP_MalformedBody(t *testing.T) {
	s := setupServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/doctors", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Malformed request body", decode[apiError](t, w).Message)
}

func TestHTTP_ErrorBodyShape(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodGet, "/api/doctors/99?x=1", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}
	body := decode[map[string]any](t, w)
	for _, k := range []string{"timestamp", "status", "error", "message", "path"} {
		if _, ok := body[k]; !ok {
			t.Fatalf("missing %q in %v", k, body)
		}
	}
	if body["message"] != "Doctor not found" || body["path"] != "/api/doctors/99" || body["error"] != "Bad Request" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestHTTP_StrictNotFound(t *testing.T) {
	s := setupServerWith(t, Options{StrictNotFound: true})
	w := doJSON(t, s, http.MethodGet, "/api/tasks/7", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/mr-stock/P999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", w.Code)
	}
	// validation is still 400
	w = doJSON(t, s, http.MethodPost, "/api/tasks", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}
}

func TestMrStockFlow(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/mr-stock", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]map[string]any](t, w))

	// seed twice: still four rows
	for i := 0; i < 2; i++ {
		w = doJSON(t, s, http.MethodPost, "/api/mr-stock/seed", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 4)
	assert.Equal(t, "P001", list[0]["id"])
	assert.Equal(t, "Product X (500mg)", list[0]["name"])
	assert.Equal(t, float64(100), list[0]["stock"])

	w = doJSON(t, s, http.MethodPost, "/api/mr-stock/P001/adjust", map[string]any{"delta": -50})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(50), decode[map[string]any](t, w)["stock"])

	w = doJSON(t, s, http.MethodPost, "/api/mr-stock/P001/adjust", map[string]any{"delta": -60})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Insufficient stock for product P001", decode[apiError](t, w).Message)

	w = doJSON(t, s, http.MethodGet, "/api/mr-stock/P001", nil)
	assert.Equal(t, float64(50), decode[map[string]any](t, w)["stock"])

	// update trusts the client, negative included
	w = doJSON(t, s, http.MethodPut, "/api/mr-stock/P002", map[string]any{"name": "Syrup", "stock": -5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(-5), decode[map[string]any](t, w)["stock"])

	w = doJSON(t, s, http.MethodPut, "/api/mr-stock/P404", map[string]any{"name": "x", "stock": 1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Stock item not found", decode[apiError](t, w).Message)

	w = doJSON(t, s, http.MethodPost, "/api/mr-stock/P001/adjust", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Delta is required", decode[apiError](t, w).Message)
}

func TestMrStock_ConcurrentAdjust(t *testing.T) {
	s := setupServer(t)
	require.Equal(t, http.StatusOK, doJSON(t, s, http.MethodPost, "/api/mr-stock/seed", nil).Code)

	var wg sync.WaitGroup
	codes := make([]int, 30)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = doJSON(t, s, http.MethodPost, "/api/mr-stock/P003/adjust", map[string]any{"delta": -5}).Code
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, c := range codes {
		if c == http.StatusOK {
			ok++
		}
	}
	assert.Equal(t, 20, ok)
	w := doJSON(t, s, http.MethodGet, "/api/mr-stock/P003", nil)
	assert.Equal(t, float64(0), decode[map[string]any](t, w)["stock"])
}

func TestUserFlow(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/users", map[string]any{
		"name": "Asha", "email": "asha@kavya.com", "password": "secret1", "territory": "North",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	u := decode[map[string]any](t, w)
	assert.Equal(t, "MR", u["role"])
	assert.Equal(t, "ACTIVE", u["status"])
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, s, http.MethodPost, "/api/users", map[string]any{
		"name": "Other", "email": "ASHA@kavya.com", "password": "secret2",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already exists", decode[apiError](t, w).Message)

	w = doJSON(t, s, http.MethodPost, "/api/users", map[string]any{"name": "NoPass", "email": "np@kavya.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password is required", decode[apiError](t, w).Message)

	w = doJSON(t, s, http.MethodPut, "/api/users/1", map[string]any{
		"name": "Asha R", "email": "asha@kavya.com", "role": "ADMIN",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ADMIN", decode[map[string]any](t, w)["role"])

	// old password still works after an update without password
	w = doJSON(t, s, http.MethodPost, "/api/auth/login", map[string]any{"email": "asha@kavya.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, http.StatusNoContent, doJSON(t, s, http.MethodDelete, "/api/users/1", nil).Code)
	require.Equal(t, http.StatusBadRequest, doJSON(t, s, http.MethodGet, "/api/users/1", nil).Code)
}

func TestAuth_LoginAndGuard(t *testing.T) {
	s := setupServerWith(t, Options{AuthRequired: true})

	w := doJSON(t, s, http.MethodGet, "/api/doctors", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Missing bearer token", decode[apiError](t, w).Message)

	w = doJSONAuth(t, s, http.MethodGet, "/api/doctors", nil, "garbage")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", decode[apiError](t, w).Message)

	// bootstrap a user directly through the service layer
	_, err := s.svc.Users.Create(context.Background(), service.UserInput{Name: "Admin", Email: "admin@kavya.com", Password: "admin123", Role: "ADMIN"})
	require.NoError(t, err)

	w = doJSON(t, s, http.MethodPost, "/api/auth/login", map[string]any{"email": "admin@kavya.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decode[apiError](t, w).Message)

	w = doJSON(t, s, http.MethodPost, "/api/auth/login", map[string]any{"email": "Admin@Kavya.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}](t, w)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "ADMIN", resp.User["role"])
	assert.NotNil(t, resp.User["lastLogin"])

	w = doJSONAuth(t, s, http.MethodGet, "/api/doctors", nil, resp.Token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthzAndRequestID(t *testing.T) {
	s := setupServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz %v", w.Code)
	}
	if got := w.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("request id not echoed: %q", got)
	}

	w = doJSON(t, s, http.MethodGet, "/healthz", nil)
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("request id not generated")
	}
}

func TestClassify_UnknownErrorIs500(t *testing.T) {
	status, msg := classify(fmt.Errorf("db down"), false)
	if status != http.StatusInternalServerError || msg != "Internal server error" {
		t.Fatalf("got %d %q", status, msg)
	}
}

func TestHTTP_UnknownRouteAndMethod(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decode[apiError](t, w)
	assert.Equal(t, "Resource not found", body.Message)
	assert.Equal(t, "/api/nope", body.Path)
	assert.Equal(t, "Not Found", body.Error)

	w = doJSON(t, s, http.MethodPatch, "/api/doctors/1", map[string]any{"name": "x"})
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	body = decode[apiError](t, w)
	assert.Equal(t, "Method not allowed", body.Message)
	assert.Equal(t, http.StatusMethodNotAllowed, body.Status)
}
