package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/maisonember/restaurant-site/config"
	"github.com/maisonember/restaurant-site/router"
	"github.com/maisonember/restaurant-site/store"
	"github.com/maisonember/restaurant-site/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndSite walks the main flow:
// 1. Visitor reads the content document
// 2. Visitor submits a reservation (no SMTP configured, still accepted)
// 3. Admin logs in with the site password
// 4. Admin lists reservations and confirms the new one
// 5. Admin replaces the content document
func TestEndToEndSite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, key := range []string{"SMTP_HOST", "SMTP_PORT", "SMTP_SENDER", "SMTP_RECIPIENT"} {
		t.Setenv(key, "")
	}
	t.Setenv("ADMIN_PASSWORD", "opensesame")
	t.Setenv("DATA_DIR", t.TempDir())

	cfg, err := config.Load()
	assert.NoError(t, err)

	records := store.NewRecordStore(cfg.DataDir)
	content := store.NewContentStore(cfg.DataDir)
	r := router.SetupRouter(cfg, records, content)

	// 1. Content is served from the bundled default on first run.
	w := doGET(r, "/api/content", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var doc map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Contains(t, doc, "menu")

	// 2. Submit a reservation.
	w = doJSON(r, "POST", "/api/reservations", map[string]string{
		"full_name":        "A Diner",
		"email":            "a@example.com",
		"phone":            "555-1111",
		"reservation_date": "2024-07-01",
		"reservation_time": "19:00",
		"guests":           "2",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	var created map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, true, created["ok"])
	assert.Equal(t, false, created["email_sent"])

	// 3a. Admin routes are gated.
	w = doGET(r, "/api/admin/reservations", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 3b. Wrong password is rejected.
	w = doJSON(r, "POST", "/api/admin/login", map[string]string{"password": "guess"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 3c. Right password yields a token.
	w = doJSON(r, "POST", "/api/admin/login", map[string]string{"password": "opensesame"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	token := login.Data.Token
	assert.NotEmpty(t, token)

	// 4a. The reservation shows up in the admin list.
	w = doGET(r, "/api/admin/reservations", token)
	assert.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []map[string]any `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Data, 1)
	assert.Equal(t, "new", list.Data[0]["status"])

	// 4b. Confirm it.
	w = doForm(r, "/api/admin/reservations/1/status", url.Values{"status": {"confirmed"}}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGET(r, "/api/admin/reservations", token)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, "confirmed", list.Data[0]["status"])

	// 4c. An out-of-enum status is refused.
	w = doForm(r, "/api/admin/reservations/1/status", url.Values{"status": {"teleported"}}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 5. Replace the content document.
	newDoc := map[string]any{
		"brand":  map[string]any{"name": "Maison Ember", "tagline": "new season"},
		"hero":   map[string]any{"title": "Autumn menu"},
		"menu":   map[string]any{"items": []any{map[string]any{"name": "Quince Tart", "price": "16"}}},
		"footer": map[string]any{"phone": "555-0164"},
	}
	w = doJSON(r, "PUT", "/api/admin/content", newDoc, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGET(r, "/api/content", "")
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	brand := doc["brand"].(map[string]any)
	assert.Equal(t, "new season", brand["tagline"])
}

func doGET(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(r *gin.Engine, method, path string, payload any, token string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(r *gin.Engine, path string, form url.Values, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
