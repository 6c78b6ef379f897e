package endpoints

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mraafat89/catch-a-prayer/internal/http/api"
	"github.com/mraafat89/catch-a-prayer/internal/http/middleware"
	"github.com/mraafat89/catch-a-prayer/internal/model"
)

type memStore struct {
	nextID int
	byMail map[string]*model.User
	byID   map[int]*model.User
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, byMail: map[string]*model.User{}, byID: map[int]*model.User{}}
}

func (m *memStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	u := &model.User{ID: m.nextID, Email: email, HashedPassword: hashedPassword, Name: name}
	m.nextID++
	m.byMail[email] = u
	m.byID[u.ID] = u
	return u.ID, nil
}

func (m *memStore) GetUserByEmail(email string) (*model.User, error) {
	if u, ok := m.byMail[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("not found")
}

func (m *memStore) GetUserByID(id int) (*model.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("not found")
}

func (m *memStore) GetSettings(userID int) (model.Settings, error) {
	return model.DefaultSettings(), nil
}

func (m *memStore) SaveSettings(userID int, settings model.Settings) error { return nil }

func authRouter(store *memStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api"}, AuthPublicModule("secret", store))
	return r
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignupIssuesToken(t *testing.T) {
	router := authRouter(newMemStore())

	w := postJSON(t, router, "/api/auth/signup", gin.H{
		"email":    "user@example.com",
		"password": "longenough",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	store := newMemStore()
	router := authRouter(store)

	w := postJSON(t, router, "/api/auth/signup", gin.H{"email": "user@example.com", "password": "longenough"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, "/api/auth/signup", gin.H{"email": "user@example.com", "password": "longenough"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignupValidatesPayload(t *testing.T) {
	router := authRouter(newMemStore())

	w := postJSON(t, router, "/api/auth/signup", gin.H{"email": "not-an-email", "password": "longenough"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/api/auth/signup", gin.H{"email": "user@example.com", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	store := newMemStore()
	hashed, err := middleware.HashPassword("correct-horse")
	require.NoError(t, err)
	_, err = store.CreateUser("user@example.com", hashed, nil)
	require.NoError(t, err)

	router := authRouter(store)

	w := postJSON(t, router, "/api/auth/login", gin.H{"email": "user@example.com", "password": "correct-horse"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])

	w = postJSON(t, router, "/api/auth/login", gin.H{"email": "user@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, router, "/api/auth/login", gin.H{"email": "ghost@example.com", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
