package controllers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aadit2805/project3-group7-deploy-sub000/controllers"
	"github.com/aadit2805/project3-group7-deploy-sub000/middlewares"
	"github.com/aadit2805/project3-group7-deploy-sub000/models"
)

func login(t *testing.T, r *gin.Engine, email, password string) (int, string) {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPost, "/login", gin.H{"email": email, "password": password}, "")
	if w.Code != http.StatusOK {
		return w.Code, ""
	}
	var out struct {
		Token string `json:"token"`
	}
	decode(t, env, &out)
	return w.Code, out.Token
}

func TestUserAuthFlow(t *testing.T) {
	db := setupTestDB(t)
	uc := controllers.NewUserController(db)
	r := gin.New()
	r.POST("/register", middlewares.OptionalAuthMiddleware(), uc.Register)
	r.POST("/login", uc.Login)
	r.POST("/logout", middlewares.AuthMiddleware(), uc.Logout)
	r.GET("/profile", middlewares.AuthMiddleware(), uc.GetProfile)
	r.GET("/users", middlewares.AuthMiddleware(), uc.GetAllUsers)

	// the first account is always the manager
	w, env := doJSON(t, r, http.MethodPost, "/register", gin.H{
		"name": "Mei", "email": "Mei@Example.com", "password": "wokstar88", "role": "cashier",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var reg struct {
		Role string `json:"role"`
	}
	decode(t, env, &reg)
	assert.Equal(t, models.RoleManager, reg.Role)

	cashier := gin.H{"name": "Sam", "email": "sam@example.com", "password": "register1", "role": "cashier"}
	w, _ = doJSON(t, r, http.MethodPost, "/register", cashier, "")
	assert.Equal(t, http.StatusForbidden, w.Code, "only a manager adds staff")

	code, managerToken := login(t, r, "mei@example.com", "wokstar88")
	require.Equal(t, http.StatusOK, code)
	code, _ = login(t, r, "mei@example.com", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, code)

	w, env = doJSON(t, r, http.MethodPost, "/register", cashier, managerToken)
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	w, _ = doJSON(t, r, http.MethodPost, "/register", cashier, managerToken)
	assert.Equal(t, http.StatusConflict, w.Code)
	w, _ = doJSON(t, r, http.MethodPost, "/register", gin.H{"name": "X", "email": "x@example.com", "password": "password1", "role": "chef"}, managerToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	code, cashierToken := login(t, r, "sam@example.com", "register1")
	require.Equal(t, http.StatusOK, code)

	w, env = doJSON(t, r, http.MethodGet, "/profile", nil, cashierToken)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	decode(t, env, &profile)
	assert.Equal(t, "sam@example.com", profile.Email)
	assert.Equal(t, models.RoleCashier, profile.Role)

	w, _ = doJSON(t, r, http.MethodGet, "/users", nil, cashierToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, env = doJSON(t, r, http.MethodGet, "/users", nil, managerToken)
	require.Equal(t, http.StatusOK, w.Code)
	var users []models.User
	decode(t, env, &users)
	assert.Len(t, users, 2)

	w, _ = doJSON(t, r, http.MethodPost, "/logout", nil, cashierToken)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodGet, "/profile", nil, cashierToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "revoked token")
}

func TestConcurrentFirstRegistration(t *testing.T) {
	db := setupTestDB(t)
	uc := controllers.NewUserController(db)
	r := gin.New()
	r.POST("/register", middlewares.OptionalAuthMiddleware(), uc.Register)

	const n = 8
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"name":"Staff %d","email":"staff%d@example.com","password":"password%d"}`, i, i, i)
			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	created := 0
	for _, code := range codes {
		if code == http.StatusCreated {
			created++
		} else {
			assert.Equal(t, http.StatusForbidden, code)
		}
	}
	assert.Equal(t, 1, created)

	var managers int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleManager).Count(&managers).Error)
	assert.Equal(t, int64(1), managers)
}

