package endpoints

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/Nixie-Tech-LLC/study-planner/internal/backend"
	"github.com/Nixie-Tech-LLC/study-planner/internal/http/api"
	"github.com/Nixie-Tech-LLC/study-planner/internal/http/api/planner/packets"
	"github.com/Nixie-Tech-LLC/study-planner/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/study-planner/internal/model"
	"github.com/Nixie-Tech-LLC/study-planner/internal/planner"
	"github.com/Nixie-Tech-LLC/study-planner/internal/render"
	"github.com/Nixie-Tech-LLC/study-planner/internal/store"
)

type recordingPublisher struct {
	mu        sync.Mutex
	published map[string]*model.Timetable
}

func (r *recordingPublisher) PublishTimetable(sessionID string, tt *model.Timetable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published[sessionID] = tt
	return nil
}

func (r *recordingPublisher) Close() {}

type fixture struct {
	router    *gin.Engine
	hits      *int32
	body      *atomic.Value
	publisher *recordingPublisher
	cookie    *http.Cookie
}

func setupRouter(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var hits int32
	body := &atomic.Value{}
	body.Store(`{"timetable": {"Monday": [{"time": "9-10", "subject": "Math"}]}}`)
	svc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path != "/generate_timetable" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, body.Load().(string))
	}))
	t.Cleanup(svc.Close)

	pub := &recordingPublisher{published: map[string]*model.Timetable{}}
	ctl := NewPlannerController(
		store.NewMemoryStore(time.Hour),
		backend.NewClient(svc.URL, svc.Client()),
		pub,
	)

	r := gin.New()
	r.SetHTMLTemplate(render.Templates())
	api.MountGroup(r, api.GroupConfig{Prefix: "/", Session: true, SessionTTL: time.Hour}, PagesModule(ctl))
	api.MountGroup(r, api.GroupConfig{Prefix: "/api", Session: true, SessionTTL: time.Hour}, APIModule(ctl))

	return &fixture{router: r, hits: &hits, body: body, publisher: pub}
}

func (f *fixture) do(t *testing.T, method, path, contentType, payload string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if payload != "" {
		rd = strings.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, rd)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if f.cookie != nil {
		req.AddCookie(f.cookie)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			f.cookie = c
		}
	}
	return w
}

func (f *fixture) postForm(t *testing.T, path string, values url.Values) *httptest.ResponseRecorder {
	return f.do(t, http.MethodPost, path, "application/x-www-form-urlencoded", values.Encode())
}

func (f *fixture) page(t *testing.T) *goquery.Document {
	t.Helper()
	w := f.do(t, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	return doc(t, w)
}

func doc(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return d
}

func subjectTexts(d *goquery.Document) []string {
	return d.Find("#subjectsList .subject-item").Map(func(_ int, s *goquery.Selection) string {
		return s.Find(".subject-name").Text() + " " + s.Find(".subject-average").Text()
	})
}

func TestAddAndRemoveSubjects(t *testing.T) {
	f := setupRouter(t)

	for _, s := range [][2]string{{"MCI", "65"}, {"DSP", "70"}, {"OS", "75"}} {
		w := f.postForm(t, "/subjects", url.Values{"name": {s[0]}, "average": {s[1]}})
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	}
	assert.Equal(t, []string{"MCI 65%", "DSP 70%", "OS 75%"}, subjectTexts(f.page(t)))

	w := f.do(t, http.MethodPost, "/subjects/1/delete", "", "")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []string{"MCI 65%", "OS 75%"}, subjectTexts(f.page(t)))

	w = f.do(t, http.MethodPost, "/subjects/9/delete", "", "")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Len(t, subjectTexts(f.page(t)), 2)

	w = f.do(t, http.MethodPost, "/subjects/abc/delete", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidSubjectKeepsForm(t *testing.T) {
	f := setupRouter(t)

	w := f.postForm(t, "/subjects", url.Values{"name": {"Math"}, "average": {"  "}})
	require.Equal(t, http.StatusOK, w.Code)
	d := doc(t, w)

	name, _ := d.Find("#subjectName").Attr("value")
	avg, _ := d.Find("#subjectAverage").Attr("value")
	assert.Equal(t, "Math", name)
	assert.Equal(t, "  ", avg)
	assert.Empty(t, subjectTexts(d))
	assert.Zero(t, d.Find("[role=alert]").Length())
}

func TestGenerateWithoutSubjects(t *testing.T) {
	f := setupRouter(t)

	w := f.do(t, http.MethodPost, "/timetable/generate", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, planner.NoticeNoSubjects, doc(t, w).Find("[role=alert]").Text())
	assert.Zero(t, atomic.LoadInt32(f.hits))
}

func TestGenerateRendersTimetable(t *testing.T) {
	f := setupRouter(t)
	f.postForm(t, "/subjects", url.Values{"name": {"Math"}, "average": {"80"}})

	w := f.do(t, http.MethodPost, "/timetable/generate", "", "")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(f.hits))

	d := f.page(t)
	days := d.Find("#timetable .timetable-day")
	require.Equal(t, 1, days.Length())
	assert.Equal(t, "Monday", days.Text())
	cells := d.Find("#timetable td").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"9-10", "Math"}, cells)

	assert.Contains(t, f.publisher.published, f.cookie.Value)
}

func TestGenerateMissingTimetableKeepsPriorDisplay(t *testing.T) {
	f := setupRouter(t)
	f.postForm(t, "/subjects", url.Values{"name": {"Math"}, "average": {"80"}})
	f.do(t, http.MethodPost, "/timetable/generate", "", "")

	f.body.Store(`{}`)
	w := f.do(t, http.MethodPost, "/timetable/generate", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	d := doc(t, w)
	assert.Equal(t, planner.NoticeNoTimetable, d.Find("[role=alert]").Text())
	assert.Equal(t, "Monday", d.Find("#timetable .timetable-day").Text())
}

func TestGenerateBackendErrorKeepsDisplay(t *testing.T) {
	f := setupRouter(t)
	f.postForm(t, "/subjects", url.Values{"name": {"Math"}, "average": {"80"}})

	f.body.Store(`<html>502 Bad Gateway</html>`)
	w := f.do(t, http.MethodPost, "/timetable/generate", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	d := doc(t, w)
	assert.Equal(t, planner.NoticeBackendError, d.Find("[role=alert]").Text())
	assert.Zero(t, d.Find("#timetable table").Length())
	assert.Empty(t, f.publisher.published)
}

func TestFragments(t *testing.T) {
	f := setupRouter(t)
	f.postForm(t, "/subjects", url.Values{"name": {"Math"}, "average": {"80"}})
	f.postForm(t, "/subjects", url.Values{"name": {"OS"}, "average": {"75"}})

	w := f.do(t, http.MethodGet, "/fragments/subjects", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, doc(t, w).Find(".subject-item").Length())

	w = f.do(t, http.MethodGet, "/fragments/timetable", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Empty(t, strings.TrimSpace(w.Body.String()))

	f.do(t, http.MethodPost, "/timetable/generate", "", "")
	w = f.do(t, http.MethodGet, "/fragments/timetable", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Monday", doc(t, w).Find(".timetable-day").Text())
}

func TestExport(t *testing.T) {
	f := setupRouter(t)

	w := f.do(t, http.MethodGet, "/timetable/export?format=json", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// the query is validated before the workspace is consulted
	w = f.do(t, http.MethodGet, "/timetable/export?format=pdf", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid export query")

	f.postForm(t, "/subjects", url.Values{"name": {"Math"}, "average": {"80"}})
	f.do(t, http.MethodPost, "/timetable/generate", "", "")

	w = f.do(t, http.MethodGet, "/timetable/export?format=json", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "timetable.json")
	assert.JSONEq(t, `{"timetable": {"Monday": [{"time": "9-10", "subject": "Math"}]}}`, w.Body.String())

	w = f.do(t, http.MethodGet, "/timetable/export", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	file, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Monday", file.Sheets[0].Name)

	w = f.do(t, http.MethodGet, "/timetable/export?format=pdf", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/timetable/export?format=", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "timetable.xlsx")
}

func TestResetSession(t *testing.T) {
	f := setupRouter(t)
	f.postForm(t, "/subjects", url.Values{"name": {"Math"}, "average": {"80"}})

	w := f.do(t, http.MethodPost, "/session/reset", "", "")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, subjectTexts(f.page(t)))
}

func TestSessionsAreIsolated(t *testing.T) {
	f := setupRouter(t)
	f.postForm(t, "/subjects", url.Values{"name": {"Math"}, "average": {"80"}})

	f.cookie = nil
	assert.Empty(t, subjectTexts(f.page(t)))
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestJSONSubjects(t *testing.T) {
	f := setupRouter(t)

	var resp packets.SubjectsResponse
	decode(t, f.do(t, http.MethodPost, "/api/subjects", "application/json", `{"name": " MCI ", "average": "65"}`), &resp)
	assert.True(t, resp.Changed)
	assert.Equal(t, []packets.SubjectResponse{{Index: 0, Name: "MCI", Average: "65"}}, resp.Subjects)

	decode(t, f.do(t, http.MethodPost, "/api/subjects", "application/json", `{"name": "", "average": "65"}`), &resp)
	assert.False(t, resp.Changed)
	assert.Len(t, resp.Subjects, 1)

	decode(t, f.do(t, http.MethodPost, "/api/subjects", "application/json", `{"name": "DSP", "average": "70"}`), &resp)
	decode(t, f.do(t, http.MethodDelete, "/api/subjects/0", "", ""), &resp)
	assert.True(t, resp.Changed)
	assert.Equal(t, []packets.SubjectResponse{{Index: 0, Name: "DSP", Average: "70"}}, resp.Subjects)

	decode(t, f.do(t, http.MethodDelete, "/api/subjects/5", "", ""), &resp)
	assert.False(t, resp.Changed)

	decode(t, f.do(t, http.MethodGet, "/api/subjects", "", ""), &resp)
	assert.Len(t, resp.Subjects, 1)

	w := f.do(t, http.MethodPost, "/api/subjects", "application/json", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJSONGenerate(t *testing.T) {
	f := setupRouter(t)

	var empty packets.TimetableResponse
	decode(t, f.do(t, http.MethodPost, "/api/timetable/generate", "", ""), &empty)
	assert.Equal(t, planner.NoticeNoSubjects, empty.Notice)
	assert.Nil(t, empty.Timetable)

	f.do(t, http.MethodPost, "/api/subjects", "application/json", `{"name": "Math", "average": "80"}`)
	var generated packets.TimetableResponse
	decode(t, f.do(t, http.MethodPost, "/api/timetable/generate", "", ""), &generated)
	assert.Empty(t, generated.Notice)
	require.NotNil(t, generated.Timetable)
	assert.Equal(t, "Monday", generated.Timetable.Days[0].Label)

	var current packets.TimetableResponse
	decode(t, f.do(t, http.MethodGet, "/api/timetable", "", ""), &current)
	require.NotNil(t, current.Timetable)
	assert.Equal(t, 1, current.Timetable.SessionCount())
}
