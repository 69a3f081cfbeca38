package transport

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/eventninja/eventninja/internal/entity"
	"github.com/eventninja/eventninja/internal/service"
	"github.com/eventninja/eventninja/pkg/nonce"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminToken = "admin-secret"
	testSession    = "session-1"
)

type fakeRegistrationService struct {
	outcome entity.RegistrationOutcome
	err     error
	calls   []*service.RegisterRequest
	listing []*entity.RegistrationWithEvent
}

func (f *fakeRegistrationService) Register(ctx context.Context, req *service.RegisterRequest) (entity.RegistrationOutcome, error) {
	f.calls = append(f.calls, req)
	return f.outcome, f.err
}

func (f *fakeRegistrationService) CountForEvent(ctx context.Context, eventID int64) (int, error) {
	return 0, nil
}

func (f *fakeRegistrationService) ListAll(ctx context.Context) ([]*entity.RegistrationWithEvent, error) {
	return f.listing, nil
}

type fakeEventService struct {
	events map[int64]*entity.Event
	saved  map[int64]*service.SaveEventRequest
}

func newFakeEventService(events ...*entity.Event) *fakeEventService {
	f := &fakeEventService{
		events: make(map[int64]*entity.Event),
		saved:  make(map[int64]*service.SaveEventRequest),
	}
	for _, e := range events {
		f.events[e.ID] = e
	}
	return f
}

func (f *fakeEventService) CreateEvent(ctx context.Context, req *service.SaveEventRequest) (*entity.Event, error) {
	event := &entity.Event{ID: int64(len(f.events) + 1), Title: req.Title, Body: req.Body}
	f.events[event.ID] = event
	f.saved[event.ID] = req
	return event, nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, id int64) (*entity.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventService) GetAllEvents(ctx context.Context) ([]*entity.Event, error) {
	var out []*entity.Event
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventService) SaveEvent(ctx context.Context, id int64, req *service.SaveEventRequest) error {
	if _, ok := f.events[id]; !ok {
		return entity.ErrEventNotFound
	}
	f.saved[id] = req
	return nil
}

func (f *fakeEventService) GetDetails(ctx context.Context, eventID int64) (entity.EventDetails, error) {
	return entity.EventDetails{}, nil
}

type fakePresenter struct{}

func (fakePresenter) RenderContent(ctx context.Context, content string, eventID int64, session, outcome string) (template.HTML, error) {
	return template.HTML("rendered:" + outcome), nil
}

type testEnv struct {
	router *gin.Engine
	nonces *nonce.Service
	reg    *fakeRegistrationService
	events *fakeEventService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	nonces := nonce.NewService("test-secret", time.Hour)
	reg := &fakeRegistrationService{outcome: entity.OutcomeSuccess}
	events := newFakeEventService(&entity.Event{ID: 1, Title: "Launch Party", Body: "<p>Join us.</p>"})

	router := InitRoutes(
		"../../web/templates/*.html",
		testAdminToken,
		30*time.Second,
		NewEventHandler(events, fakePresenter{}),
		NewRegistrationHandler(reg, nonces),
		NewAdminHandler(events, reg, nonces),
	)

	return &testEnv{router: router, nonces: nonces, reg: reg, events: events}
}

func (e *testEnv) postForm(path string, form url.Values, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "en_session", Value: testSession})
	if admin {
		req.Header.Set("X-Admin-Token", testAdminToken)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(&http.Cookie{Name: "en_session", Value: testSession})
	if admin {
		req.Header.Set("X-Admin-Token", testAdminToken)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func registerForm(env *testEnv, withNonce bool) url.Values {
	form := url.Values{}
	form.Set("action", "en_register_event")
	form.Set("event_id", "1")
	form.Set("en_user_name", "Ann")
	form.Set("en_user_email", "ann@x.com")
	if withNonce {
		form.Set("en_register_nonce", env.nonces.Create(testSession, nonce.ActionRegister))
	}
	return form
}

func TestRegisterRedirectsWithOutcome(t *testing.T) {
	env := newTestEnv(t)

	w := env.postForm("/register", registerForm(env, true), false)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/events/1?registered=success", w.Header().Get("Location"))
	require.Len(t, env.reg.calls, 1)
	assert.Equal(t, int64(1), env.reg.calls[0].EventID)
	assert.Equal(t, "Ann", env.reg.calls[0].Name)
}

func TestRegisterMissingNonceFailsClosed(t *testing.T) {
	env := newTestEnv(t)

	w := env.postForm("/register", registerForm(env, false), false)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Empty(t, w.Header().Get("Location"), "no redirect outcome is set")
	assert.Empty(t, env.reg.calls, "the submission never reaches the workflow")
}

func TestRegisterForgedNonceFailsClosed(t *testing.T) {
	env := newTestEnv(t)

	form := registerForm(env, false)
	form.Set("en_register_nonce", "0123456789abcdef")
	w := env.postForm("/register", form, false)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, env.reg.calls)
}

func TestRegisterNonceBoundToSession(t *testing.T) {
	env := newTestEnv(t)

	// Token minted for a different visitor session must not verify.
	form := registerForm(env, false)
	form.Set("en_register_nonce", env.nonces.Create("other-session", nonce.ActionRegister))
	w := env.postForm("/register", form, false)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, env.reg.calls)
}

func TestRegisterUnknownActionIgnored(t *testing.T) {
	env := newTestEnv(t)

	form := registerForm(env, true)
	form.Set("action", "something_else")
	w := env.postForm("/register", form, false)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, env.reg.calls)
}

func TestRegisterValidationDropsSilently(t *testing.T) {
	env := newTestEnv(t)
	env.reg.err = entity.ErrInvalidEmail

	w := env.postForm("/register", registerForm(env, true), false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Empty(t, w.Header().Get("Location"))
}

func TestRegisterBusinessOutcomes(t *testing.T) {
	tests := []struct {
		outcome entity.RegistrationOutcome
		want    string
	}{
		{outcome: entity.OutcomeDuplicate, want: "/events/1?registered=duplicate"},
		{outcome: entity.OutcomeFull, want: "/events/1?registered=full"},
		{outcome: entity.OutcomeError, want: "/events/1?registered=error"},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			env := newTestEnv(t)
			env.reg.outcome = tt.outcome

			w := env.postForm("/register", registerForm(env, true), false)

			require.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
		})
	}
}

func TestShowEventRendersPresentedContent(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/events/1?registered=success", false)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Launch Party")
	assert.Contains(t, w.Body.String(), "rendered:success")
}

func TestShowEventNotFound(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusNotFound, env.get("/events/99", false).Code)
	assert.Equal(t, http.StatusNotFound, env.get("/events/abc", false).Code)
}

func TestAdminRequiresPermission(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/admin/registrations", false)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Body.String())

	w = env.get("/admin/registrations", true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRegistrationsEmptyState(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/admin/registrations", true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No registrations yet.")
}

func TestAdminRegistrationsListing(t *testing.T) {
	env := newTestEnv(t)
	env.reg.listing = []*entity.RegistrationWithEvent{
		{
			Registration: entity.Registration{
				ID: 2, EventID: 1, UserName: "Bob", UserEmail: "bob@x.com",
				RegistrationDate: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
			},
			EventTitle: "Launch Party",
		},
		{
			Registration: entity.Registration{
				ID: 1, EventID: 1, UserName: "Ann", UserEmail: "ann@x.com",
				RegistrationDate: time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC),
			},
			EventTitle: "Launch Party",
		},
	}

	w := env.get("/admin/registrations", true)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "bob@x.com")
	assert.Contains(t, body, "ann@x.com")
	assert.Contains(t, body, "Total registrations: 2")
	assert.Less(t, strings.Index(body, "bob@x.com"), strings.Index(body, "ann@x.com"),
		"newest registration renders first")
}

func TestAdminNewEventForm(t *testing.T) {
	env := newTestEnv(t)

	// The static new-event route resolves alongside the :id routes.
	w := env.get("/admin/events/new", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Add New Event")
	assert.Contains(t, w.Body.String(), `name="en_event_nonce"`)

	w = env.get("/admin/events/1/edit", true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminSaveRequiresNonce(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{}
	form.Set("post_title", "Changed")
	w := env.postForm("/admin/events/1", form, true)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, env.events.saved, "nothing is written without a valid token")
}

func TestAdminSaveEvent(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{}
	form.Set("en_event_nonce", env.nonces.Create(testSession, nonce.ActionSaveEventMeta))
	form.Set("post_title", "Launch Party v2")
	form.Set("post_content", "<p>New body.</p>")
	form.Set("en_event_date", "2025-07-01")
	form.Set("en_event_capacity", "50")
	w := env.postForm("/admin/events/1", form, true)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/events/1/edit?saved=1", w.Header().Get("Location"))

	saved := env.events.saved[1]
	require.NotNil(t, saved)
	assert.Equal(t, "Launch Party v2", saved.Title)
	assert.Equal(t, "2025-07-01", saved.Date)
	assert.Equal(t, "50", saved.Capacity)
	assert.False(t, saved.Autosave)
}

func TestAdminAutosaveFlagBinds(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{}
	form.Set("en_event_nonce", env.nonces.Create(testSession, nonce.ActionSaveEventMeta))
	form.Set("post_title", "Draft")
	form.Set("autosave", "1")
	w := env.postForm("/admin/events/1", form, true)

	require.Equal(t, http.StatusSeeOther, w.Code)
	require.NotNil(t, env.events.saved[1])
	assert.True(t, env.events.saved[1].Autosave)
}
