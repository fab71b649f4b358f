// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennaFedele/gambarie-summer-events/internal/cache"
	"github.com/pennaFedele/gambarie-summer-events/internal/captcha"
	"github.com/pennaFedele/gambarie-summer-events/internal/config"
	"github.com/pennaFedele/gambarie-summer-events/internal/importer"
	"github.com/pennaFedele/gambarie-summer-events/internal/middleware"
	"github.com/pennaFedele/gambarie-summer-events/internal/model"
	"github.com/pennaFedele/gambarie-summer-events/internal/service"
	"github.com/pennaFedele/gambarie-summer-events/internal/session"
	"github.com/pennaFedele/gambarie-summer-events/internal/storage"
	"github.com/pennaFedele/gambarie-summer-events/internal/store"
)

type testEnv struct {
	srv      *httptest.Server
	client   *http.Client
	db       *sql.DB
	queries  *store.Queries
	settings *service.SettingsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db))

	c := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = c.Close() })

	cfg := &config.Config{
		SessionSecret: "0123456789abcdef0123456789abcdef",
		ServerHost:    "localhost",
		ServerPort:    8080,
		Env:           "development",
		CacheTTL:      60,
	}

	auditService := service.NewAuditService(db)
	settingsService := service.NewSettingsService(db, c, auditService)
	files, err := storage.NewFileStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	h := NewHandler(Deps{
		DB:        db,
		Config:    cfg,
		Sessions:  session.New(db, true),
		Settings:  settingsService,
		Audit:     auditService,
		Bootstrap: service.NewBootstrapService(db, auditService),
		Importer:  importer.New(db, auditService),
		Files:     files,
		Captcha:   captcha.NewVerifier("", false),
		LoginGate: middleware.NewLoginProtection(),
	})

	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		srv:      srv,
		client:   &http.Client{Jar: jar},
		db:       db,
		queries:  store.New(db),
		settings: settingsService,
	}
}

type apiResponse struct {
	Data json.RawMessage `json:"data"`
	Meta *Meta           `json:"meta"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func (e *testEnv) decode(t *testing.T, raw []byte, dst any) *Meta {
	t.Helper()
	var env apiResponse
	require.NoError(t, json.Unmarshal(raw, &env))
	if dst != nil {
		require.NoError(t, json.Unmarshal(env.Data, dst))
	}
	return env.Meta
}

// register creates an account through the API, leaving the client's jar
// holding its session.
func (e *testEnv) register(t *testing.T, email string) {
	t.Helper()
	resp, _ := e.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

// registerAdmin creates the first account and claims the admin role.
func (e *testEnv) registerAdmin(t *testing.T, email string) {
	t.Helper()
	e.register(t, email)
	resp, _ := e.do(t, http.MethodPost, "/api/bootstrap-admin", map[string]string{"email": email})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func dateFromToday(days int) string {
	return time.Now().AddDate(0, 0, days).Format(model.DateLayout)
}

func (e *testEnv) seedEvent(t *testing.T, title, date, category string) model.Event {
	t.Helper()
	ev, err := e.queries.CreateEvent(t.Context(), store.CreateEventParams{
		Title:     title,
		TitleEn:   title + " (en)",
		Organizer: "Pro Loco",
		EventDate: date,
		EventTime: "21:00",
		Location:  "Piazza Mangeruca",
		Category:  category,
	})
	require.NoError(t, err)
	return ev
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	resp, raw := e.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"ok"`)
}

func TestListEventsPagination(t *testing.T) {
	e := newTestEnv(t)
	for i := 0; i < 15; i++ {
		e.seedEvent(t, fmt.Sprintf("Evento %02d", i), dateFromToday(i+1), model.CategoryMusica)
	}

	resp, raw := e.do(t, http.MethodGet, "/api/events?limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var events []EventDTO
	meta := e.decode(t, raw, &events)
	assert.Len(t, events, 10)
	require.NotNil(t, meta)
	assert.True(t, meta.HasMore)

	resp, raw = e.do(t, http.MethodGet, "/api/events?limit=10&offset=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	meta = e.decode(t, raw, &events)
	assert.Len(t, events, 5)
	assert.False(t, meta.HasMore)
}

func TestListEventsFilter(t *testing.T) {
	e := newTestEnv(t)
	day := dateFromToday(3)
	e.seedEvent(t, "Concerto", day, model.CategoryMusica)
	e.seedEvent(t, "Mostra", day, model.CategoryArte)
	e.seedEvent(t, "Concerto dopo", dateFromToday(5), model.CategoryMusica)

	resp, raw := e.do(t, http.MethodGet, "/api/events?categories=musica&date="+day, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var events []EventDTO
	e.decode(t, raw, &events)
	require.Len(t, events, 1)
	assert.Equal(t, "Concerto", events[0].Title)
}

func TestListEventsLocalization(t *testing.T) {
	e := newTestEnv(t)
	e.seedEvent(t, "Concerto", dateFromToday(1), model.CategoryMusica)

	resp, raw := e.do(t, http.MethodGet, "/api/events?lang=en", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var events []EventDTO
	e.decode(t, raw, &events)
	require.Len(t, events, 1)
	assert.Equal(t, "Concerto (en)", events[0].Title)
}

func TestEventsArchive(t *testing.T) {
	e := newTestEnv(t)
	e.seedEvent(t, "Passato", dateFromToday(-3), model.CategoryStoria)
	e.seedEvent(t, "Futuro", dateFromToday(3), model.CategoryStoria)

	resp, raw := e.do(t, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var events []EventDTO
	e.decode(t, raw, &events)
	require.Len(t, events, 1)
	assert.Equal(t, "Futuro", events[0].Title)

	resp, raw = e.do(t, http.MethodGet, "/api/events?archive=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	e.decode(t, raw, &events)
	require.Len(t, events, 1)
	assert.Equal(t, "Passato", events[0].Title)
}

func TestCountEvents(t *testing.T) {
	e := newTestEnv(t)
	e.seedEvent(t, "Uno", dateFromToday(1), model.CategoryMusica)
	e.seedEvent(t, "Due", dateFromToday(2), model.CategoryMusica)

	resp, raw := e.do(t, http.MethodGet, "/api/events/count", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var counts map[string]int64
	e.decode(t, raw, &counts)
	assert.Equal(t, int64(2), counts["events"])
	assert.Equal(t, int64(0), counts["long_events"])
	assert.Equal(t, int64(2), counts["total"])
}

func TestEventCalendarEndpoints(t *testing.T) {
	e := newTestEnv(t)
	ev := e.seedEvent(t, "Concerto", dateFromToday(1), model.CategoryMusica)

	resp, raw := e.do(t, http.MethodGet, "/api/events/"+ev.ID+"/calendar.ics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/calendar")
	assert.Contains(t, string(raw), "BEGIN:VEVENT")
	assert.Contains(t, string(raw), "SUMMARY:Concerto")

	resp, raw = e.do(t, http.MethodGet, "/api/events/"+ev.ID+"/calendar-url", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var link map[string]string
	e.decode(t, raw, &link)
	assert.Contains(t, link["url"], "calendar.google.com")

	resp, _ = e.do(t, http.MethodGet, "/api/events/missing/calendar.ics", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMaintenanceMode(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.settings.Update(t.Context(), model.SettingKeyAppPublicVisible, json.RawMessage("false"), 0)
	require.NoError(t, err)

	resp, raw := e.do(t, http.MethodGet, "/api/events", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "maintenance", body["error"])
	assert.Equal(t, model.DefaultMaintenanceMsg, body["message"])

	// The public settings endpoint stays reachable so the frontend can
	// render the maintenance page.
	resp, _ = e.do(t, http.MethodGet, "/api/settings/public", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Admins keep full access.
	e.registerAdmin(t, "admin@example.com")
	resp, _ = e.do(t, http.MethodGet, "/api/events", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "mario@example.com")

	resp, raw := e.do(t, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me model.User
	e.decode(t, raw, &me)
	assert.Equal(t, "mario@example.com", me.Email)

	resp, _ = e.do(t, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = e.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = e.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "mario@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = e.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "Mario@Example.com",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode, "email comparison is case-insensitive")

	resp, _ = e.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	e := newTestEnv(t)

	resp, _ := e.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "not-an-email",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = e.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "mario@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	e.register(t, "mario@example.com")
	resp, _ = e.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "mario@example.com",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestBootstrapAdmin(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "first@example.com")

	resp, raw := e.do(t, http.MethodGet, "/api/admin-status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status map[string]bool
	e.decode(t, raw, &status)
	assert.False(t, status["has_admin"])

	resp, _ = e.do(t, http.MethodPost, "/api/bootstrap-admin", map[string]string{"email": "first@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = e.do(t, http.MethodGet, "/api/admin-status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	e.decode(t, raw, &status)
	assert.True(t, status["has_admin"])

	// The second claim loses.
	e.register(t, "second@example.com")
	resp, _ = e.do(t, http.MethodPost, "/api/bootstrap-admin", map[string]string{"email": "second@example.com"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = e.do(t, http.MethodPost, "/api/bootstrap-admin", map[string]string{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminRequiresAdminRole(t *testing.T) {
	e := newTestEnv(t)

	resp, _ := e.do(t, http.MethodGet, "/admin/api/events", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	e.register(t, "plain@example.com")
	resp, _ = e.do(t, http.MethodGet, "/admin/api/events", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func validEventPayload() map[string]any {
	return map[string]any{
		"title":      "Concerto in piazza",
		"organizer":  "Pro Loco",
		"event_date": dateFromToday(7),
		"event_time": "21:00",
		"location":   "Piazza Mangeruca",
		"category":   "Musica",
	}
}

func TestAdminEventCRUD(t *testing.T) {
	e := newTestEnv(t)
	e.registerAdmin(t, "admin@example.com")

	resp, raw := e.do(t, http.MethodPost, "/admin/api/events", validEventPayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created AdminEventDTO
	e.decode(t, raw, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.CategoryMusica, created.Category, "category is normalized to lowercase")

	payload := validEventPayload()
	payload["title"] = "Concerto rinviato"
	payload["cancelled"] = true
	resp, raw = e.do(t, http.MethodPut, "/admin/api/events/"+created.ID, payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated AdminEventDTO
	e.decode(t, raw, &updated)
	assert.Equal(t, "Concerto rinviato", updated.Title)
	assert.True(t, updated.Cancelled)

	resp, _ = e.do(t, http.MethodGet, "/admin/api/events/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = e.do(t, http.MethodDelete, "/admin/api/events/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = e.do(t, http.MethodGet, "/admin/api/events/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminEventValidation(t *testing.T) {
	e := newTestEnv(t)
	e.registerAdmin(t, "admin@example.com")

	payload := validEventPayload()
	payload["title"] = ""
	payload["event_date"] = "15/07/2026"
	payload["category"] = "teatro"
	resp, raw := e.do(t, http.MethodPost, "/admin/api/events", payload)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &errResp))
	assert.Contains(t, errResp.Error.Details, "title")
	assert.Contains(t, errResp.Error.Details, "event_date")
	assert.Contains(t, errResp.Error.Details, "category")

	// Pattern-valid but impossible dates and times are rejected too.
	payload = validEventPayload()
	payload["event_date"] = "2026-13-45"
	payload["event_time"] = "27:61"
	resp, raw = e.do(t, http.MethodPost, "/admin/api/events", payload)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	errResp = ErrorResponse{}
	require.NoError(t, json.Unmarshal(raw, &errResp))
	assert.Contains(t, errResp.Error.Details, "event_date")
	assert.Contains(t, errResp.Error.Details, "event_time")
}

func TestAdminEventResponseUsesFlatJSON(t *testing.T) {
	e := newTestEnv(t)
	e.registerAdmin(t, "admin@example.com")

	payload := validEventPayload()
	payload["title_en"] = "Concert in the square"
	resp, raw := e.do(t, http.MethodPost, "/admin/api/events", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Concert in the square", body.Data["title_en"], "optional columns flatten to plain strings")
	assert.Contains(t, body.Data, "event_date")
	assert.NotContains(t, body.Data, "TitleEn")
	assert.NotContains(t, string(raw), `"Valid"`)
}

func TestAdminLongEventCRUD(t *testing.T) {
	e := newTestEnv(t)
	e.registerAdmin(t, "admin@example.com")

	payload := map[string]any{
		"title":      "Sagra settimanale",
		"organizer":  "Comune",
		"start_date": dateFromToday(1),
		"end_date":   dateFromToday(8),
		"event_time": "10:00",
		"location":   "Gambarie",
		"category":   "gastronomia",
	}
	resp, raw := e.do(t, http.MethodPost, "/admin/api/long-events", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created AdminLongEventDTO
	e.decode(t, raw, &created)
	assert.NotEmpty(t, created.ID)

	// End before start is rejected.
	payload["start_date"] = dateFromToday(8)
	payload["end_date"] = dateFromToday(1)
	resp, _ = e.do(t, http.MethodPost, "/admin/api/long-events", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// So are dates that match the pattern but name no real day.
	payload["start_date"] = "2026-02-30"
	payload["end_date"] = dateFromToday(8)
	resp, _ = e.do(t, http.MethodPost, "/admin/api/long-events", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, raw = e.do(t, http.MethodGet, "/api/long-events", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []LongEventDTO
	e.decode(t, raw, &listed)
	assert.Len(t, listed, 1)

	resp, _ = e.do(t, http.MethodDelete, "/admin/api/long-events/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminActivityCRUDAndPublicList(t *testing.T) {
	e := newTestEnv(t)
	e.registerAdmin(t, "admin@example.com")

	mk := func(title string, active bool, order int) AdminActivityDTO {
		resp, raw := e.do(t, http.MethodPost, "/admin/api/activities", map[string]any{
			"title_it":      title,
			"type_it":       "sport",
			"active":        active,
			"display_order": order,
			"info_links":    []map[string]string{{"label": "Info", "url": "https://example.com"}},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var a AdminActivityDTO
		e.decode(t, raw, &a)
		return a
	}
	mk("Trekking", true, 2)
	hidden := mk("Sci", false, 1)

	resp, raw := e.do(t, http.MethodGet, "/api/activities", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var public []ActivityDTO
	e.decode(t, raw, &public)
	require.Len(t, public, 1, "inactive activities stay hidden")
	assert.Equal(t, "Trekking", public[0].Title)

	resp, raw = e.do(t, http.MethodGet, "/admin/api/activities", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []AdminActivityDTO
	e.decode(t, raw, &all)
	assert.Len(t, all, 2)

	resp, _ = e.do(t, http.MethodDelete, "/admin/api/activities/"+hidden.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminImport(t *testing.T) {
	e := newTestEnv(t)
	e.registerAdmin(t, "admin@example.com")

	resp, raw := e.do(t, http.MethodGet, "/admin/api/events/import/template", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "template_eventi.csv")
	assert.Contains(t, string(raw), "title,description,organizer")

	csvBody := "title,description,organizer,event_date,event_time,location,category,external_link\n" +
		"Concerto," + "Una serata,Pro Loco," + dateFromToday(3) + ",21:00,Piazza,musica,\n" +
		",manca il titolo,Pro Loco," + dateFromToday(4) + ",10:00,Piazza,arte,\n"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "eventi.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csvBody))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, e.srv.URL+"/admin/api/events/import", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	httpResp, err := e.client.Do(req)
	require.NoError(t, err)
	defer func() { _ = httpResp.Body.Close() }()
	require.Equal(t, http.StatusOK, httpResp.StatusCode)

	rawBody, err := io.ReadAll(httpResp.Body)
	require.NoError(t, err)
	var result importer.Result
	e.decode(t, rawBody, &result)
	assert.Equal(t, 1, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Riga 3:")
	assert.Contains(t, result.Errors[0], "Titolo mancante")
}

func TestAdminSettings(t *testing.T) {
	e := newTestEnv(t)
	e.registerAdmin(t, "admin@example.com")

	resp, raw := e.do(t, http.MethodPut, "/admin/api/settings", map[string]any{
		"key":   model.SettingKeyMaintenanceMsg,
		"value": "Torniamo presto",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var setting SettingDTO
	e.decode(t, raw, &setting)
	assert.Equal(t, model.SettingKeyMaintenanceMsg, setting.Key)
	assert.JSONEq(t, `"Torniamo presto"`, string(setting.Value))

	resp, _ = e.do(t, http.MethodPut, "/admin/api/settings", map[string]any{
		"key":   "made_up",
		"value": "x",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Setting writes show up in the audit log.
	resp, raw = e.do(t, http.MethodGet, "/admin/api/audit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []AuditEntryDTO
	meta := e.decode(t, raw, &entries)
	require.NotNil(t, meta)
	assert.GreaterOrEqual(t, meta.Total, int64(1))
}

func TestPublicSettings(t *testing.T) {
	e := newTestEnv(t)

	resp, raw := e.do(t, http.MethodGet, "/api/settings/public", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pub map[string]any
	e.decode(t, raw, &pub)
	assert.Equal(t, true, pub["app_public_visible"])
	assert.Equal(t, model.DefaultMaintenanceMsg, pub["maintenance_message"])

	resp, raw = e.do(t, http.MethodGet, "/api/analytics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var analytics map[string]any
	e.decode(t, raw, &analytics)
	assert.Equal(t, false, analytics["enabled"])
}
