package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"littlelemon/internal/db"
	"littlelemon/internal/domain"
	"littlelemon/internal/utils"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "unit-test-secret"

// jsonBody is shorthand for request payloads in tests
type jsonBody = map[string]any

// newTestServer builds a router over a fresh in-memory database. The Redis
// client points at a closed port: cache reads error out and every handler
// falls through to the database, which is the designed degraded path.
func newTestServer(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	return gdb, SetupRouter(gdb, rdb, testSecret)
}

// createUser inserts a user and adds them to the named groups
func createUser(t *testing.T, gdb *gorm.DB, username string, groups ...string) *domain.User {
	t.Helper()
	user := domain.User{Username: username, Email: username + "@test.local", Password: "x"}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	for _, name := range groups {
		var group domain.Group
		if err := gdb.Where("name = ?", name).First(&group).Error; err != nil {
			t.Fatalf("find group %s: %v", name, err)
		}
		if err := gdb.Model(&user).Association("Groups").Append(&group); err != nil {
			t.Fatalf("add %s to %s: %v", username, name, err)
		}
	}
	return &user
}

// issueToken mints and stores a token for the user, returning the header
// value. An already-issued token is reused: tokens minted in the same second
// carry identical claims and would collide on the key column.
func issueToken(t *testing.T, gdb *gorm.DB, user *domain.User) string {
	t.Helper()
	var existing domain.AuthToken
	if err := gdb.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
		return "Token " + existing.Key
	}
	token, err := utils.GenerateToken(user.ID, testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if err := gdb.Create(&domain.AuthToken{Key: token, UserID: user.ID}).Error; err != nil {
		t.Fatalf("store token: %v", err)
	}
	return "Token " + token
}

// createMenuItem inserts a category (if needed) and a menu item under it
func createMenuItem(t *testing.T, gdb *gorm.DB, title string, price float64) *domain.MenuItem {
	t.Helper()
	category := domain.Category{Slug: "mains", Title: "Mains"}
	if err := gdb.Where("slug = ?", category.Slug).FirstOrCreate(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	item := domain.MenuItem{Title: title, Price: price, CategoryID: category.ID}
	if err := gdb.Create(&item).Error; err != nil {
		t.Fatalf("create menu item %s: %v", title, err)
	}
	return &item
}

// doRequest performs a request against the router, marshalling body as JSON
// and attaching the Authorization header when auth is non-empty
func doRequest(t *testing.T, r *gin.Engine, method, path string, body any, auth string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a recorded JSON body into dest
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
}

// wantStatus fails the test when the recorded status differs
func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, want, w.Body.String())
	}
}

// wantBodyField asserts a single string field in a JSON object body
func wantBodyField(t *testing.T, w *httptest.ResponseRecorder, key, want string) {
	t.Helper()
	var body map[string]any
	decodeBody(t, w, &body)
	got, _ := body[key].(string)
	if got != want {
		t.Fatalf("body[%q] = %q, want %q (body %s)", key, got, want, w.Body.String())
	}
}
