package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"fyyur-service/internal/aggregator"
	"fyyur-service/internal/model"
	"fyyur-service/internal/store"
	"fyyur-service/internal/testutil"
	"fyyur-service/prometheus"

	"github.com/labstack/echo/v4"
	prom "github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2030, 6, 15, 20, 0, 0, 0, time.UTC)

type testEnv struct {
	e       *echo.Echo
	db      *gorm.DB
	metrics *prometheus.Metrics
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	reg := prom.NewRegistry()
	m := prometheus.New("test", reg, reg)

	h := New(store.New(db), aggregator.New(db), db, m)
	h.now = func() time.Time { return fixedNow }

	e := echo.New()
	h.Register(e)
	return &testEnv{e: e, db: db, metrics: m}
}

func (te *testEnv) do(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	te.e.ServeHTTP(rec, req)
	return rec
}

func (te *testEnv) doJSON(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	te.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthCheck(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/health?check=db", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "ok", body["database"])
}

func TestCreateAndShowVenue(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodPost, "/venues/create", url.Values{
		"name":           {"The Musical Hop"},
		"city":           {"San Francisco"},
		"state":          {"CA"},
		"genres":         {"Jazz", "Reggae"},
		"seeking_talent": {"y"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[model.Venue](t, rec)
	assert.NotZero(t, created.ID)
	assert.True(t, created.SeekingTalent)

	artist := testutil.InsertArtist(t, env.db, "Guns N Petals", "https://img/guns.jpg")
	testutil.InsertShow(t, env.db, created.ID, artist.ID, fixedNow.Add(-24*time.Hour))
	testutil.InsertShow(t, env.db, created.ID, artist.ID, fixedNow)

	rec = env.do(t, http.MethodGet, "/venues/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "The Musical Hop", body["name"])
	assert.Equal(t, []any{"Jazz", "Reggae"}, body["genres"])
	assert.EqualValues(t, 1, body["past_shows_count"])
	assert.EqualValues(t, 1, body["upcoming_shows_count"])

	upcoming := body["upcoming_shows"].([]any)
	require.Len(t, upcoming, 1)
	first := upcoming[0].(map[string]any)
	assert.Equal(t, "Guns N Petals", first["counterpart_name"])
	assert.Equal(t, "https://img/guns.jpg", first["counterpart_image_link"])

	assert.Equal(t, 1.0, promtest.ToFloat64(env.metrics.EntityOperations.WithLabelValues("venue", "create")))
}

func TestCreateVenueValidation(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodPost, "/venues/create", url.Values{"city": {"Nowhere"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[map[string]any](t, rec)
	fields := body["fields"].([]any)
	require.Len(t, fields, 1)
	assert.Equal(t, "name", fields[0].(map[string]any)["field"])

	rec = env.do(t, http.MethodPost, "/venues/create", url.Values{"name": {"Hall"}, "seeking_talent": {"maybe"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var n int64
	require.NoError(t, env.db.Model(&model.Venue{}).Count(&n).Error)
	assert.Zero(t, n)
	assert.Equal(t, 2.0, promtest.ToFloat64(env.metrics.ErrorsTotal.WithLabelValues("validation")))
}

func TestVenueNotFoundAndBadID(t *testing.T) {
	env := setup(t)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/venues/42", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/venues/42/edit", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, "/venues/42/edit", url.Values{"name": {"x"}}).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/venues/42", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/venues/abc", nil).Code)
}

func TestEditVenue(t *testing.T) {
	env := setup(t)
	v := testutil.InsertVenue(t, env.db, "Hall", "SF", "CA")

	rec := env.do(t, http.MethodGet, "/venues/"+itoa(v.ID)+"/edit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hall", decode[model.Venue](t, rec).Name)

	rec = env.do(t, http.MethodPost, "/venues/"+itoa(v.ID)+"/edit", url.Values{"name": {"Big Hall"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[model.Venue](t, rec)
	assert.Equal(t, "Big Hall", got.Name)
	assert.Equal(t, "SF", got.City)
}

func TestListVenuesByLocation(t *testing.T) {
	env := setup(t)

	hop := testutil.InsertVenue(t, env.db, "The Musical Hop", "San Francisco", "CA")
	testutil.InsertVenue(t, env.db, "Park Square Live Music & Coffee", "San Francisco", "CA")
	testutil.InsertVenue(t, env.db, "The Dueling Pianos Bar", "New York", "NY")
	artist := testutil.InsertArtist(t, env.db, "Band", "")
	testutil.InsertShow(t, env.db, hop.ID, artist.ID, fixedNow.Add(time.Hour))

	rec := env.do(t, http.MethodGet, "/venues", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	locations := decode[[]locationResponse](t, rec)
	require.Len(t, locations, 2)
	assert.Equal(t, "San Francisco", locations[0].City)
	require.Len(t, locations[0].Venues, 2)
	assert.Equal(t, 1, locations[0].Venues[0].NumUpcomingShows)
	assert.Equal(t, 0, locations[0].Venues[1].NumUpcomingShows)
}

func TestSearchVenues(t *testing.T) {
	env := setup(t)

	testutil.InsertVenue(t, env.db, "The Musical Hop", "San Francisco", "CA")
	testutil.InsertVenue(t, env.db, "Park Square Live Music & Coffee", "San Francisco", "CA")

	rec := env.do(t, http.MethodPost, "/venues/search", url.Values{"search_term": {"Hop"}})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[searchResponse](t, rec)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "The Musical Hop", res.Data[0].Name)

	rec = env.doJSON(t, http.MethodPost, "/venues/search", `{"search_term": "MUSIC"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[searchResponse](t, rec).Count)

	rec = env.doJSON(t, http.MethodPost, "/venues/search", `{"search_term": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteVenueWithShowsConflicts(t *testing.T) {
	env := setup(t)

	v := testutil.InsertVenue(t, env.db, "Hall", "SF", "CA")
	a := testutil.InsertArtist(t, env.db, "Band", "")
	testutil.InsertShow(t, env.db, v.ID, a.ID, fixedNow)

	rec := env.do(t, http.MethodDelete, "/venues/"+itoa(v.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = env.do(t, http.MethodDelete, "/artists/"+itoa(a.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	empty := testutil.InsertVenue(t, env.db, "Empty", "SF", "CA")
	rec = env.do(t, http.MethodDelete, "/venues/"+itoa(empty.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestArtistRoutes(t *testing.T) {
	env := setup(t)

	rec := env.doJSON(t, http.MethodPost, "/artists/create",
		`{"name": "The Wild Sax Band", "city": "San Francisco", "genres": ["Jazz", "Classical"], "seeking_venue": false}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	artist := decode[model.Artist](t, rec)

	rec = env.do(t, http.MethodGet, "/artists", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []artistEntry{{ID: artist.ID, Name: "The Wild Sax Band"}}, decode[[]artistEntry](t, rec))

	rec = env.do(t, http.MethodPost, "/artists/search", url.Values{"search_term": {"sax"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[searchResponse](t, rec).Count)

	rec = env.do(t, http.MethodPost, "/artists/"+itoa(artist.ID)+"/edit", url.Values{"seeking_venue": {"y"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[model.Artist](t, rec).SeekingVenue)

	rec = env.do(t, http.MethodGet, "/artists/"+itoa(artist.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.EqualValues(t, 0, body["past_shows_count"])
	assert.Equal(t, []any{}, body["upcoming_shows"])

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/artists/999", nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, "/artists/"+itoa(artist.ID), nil).Code)
}

func TestCreateShow(t *testing.T) {
	env := setup(t)

	v := testutil.InsertVenue(t, env.db, "Hall", "SF", "CA")
	a := testutil.InsertArtist(t, env.db, "Band", "")

	rec := env.do(t, http.MethodPost, "/shows/create", url.Values{
		"venue_id":   {itoa(v.ID)},
		"artist_id":  {itoa(a.ID)},
		"start_time": {"2035-04-01 20:00:00"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/shows/create", url.Values{
		"venue_id":   {"999"},
		"artist_id":  {itoa(a.ID)},
		"start_time": {"2035-04-01 20:00:00"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.do(t, http.MethodPost, "/shows/create", url.Values{
		"venue_id":   {itoa(v.ID)},
		"artist_id":  {itoa(a.ID)},
		"start_time": {"next tuesday"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/shows", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	shows := decode[[]model.ShowListing](t, rec)
	require.Len(t, shows, 1)
	assert.Equal(t, "Hall", shows[0].VenueName)
	assert.Equal(t, "Band", shows[0].ArtistName)
	assert.True(t, shows[0].StartTime.Equal(time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)))

	assert.Equal(t, 1.0, promtest.ToFloat64(env.metrics.ErrorsTotal.WithLabelValues("reference")))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
