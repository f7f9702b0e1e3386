package form

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"fyyur-service/internal/apperr"
	"fyyur-service/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formContext(values url.Values) echo.Context {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func jsonContext(body string) echo.Context {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestBindVenueFormDefaults(t *testing.T) {
	var req VenueRequest
	require.NoError(t, Bind(formContext(url.Values{
		"name":    {"  The Musical Hop "},
		"city":    {"San Francisco"},
		"genres":  {"Jazz", " ", "Reggae "},
		"unknown": {"ignored"},
	}), &req))

	venue := req.ToVenue()
	assert.Equal(t, "The Musical Hop", venue.Name)
	assert.Equal(t, "San Francisco", venue.City)
	assert.Equal(t, model.Genres{"Jazz", "Reggae"}, venue.Genres)
	assert.False(t, venue.SeekingTalent)
	assert.Empty(t, venue.SeekingDescription)
	assert.Empty(t, venue.Website)
}

func TestBindAbsentFieldsStayNil(t *testing.T) {
	var req VenueRequest
	require.NoError(t, Bind(formContext(url.Values{
		"name":           {"Hop"},
		"genres":         {"Jazz", "Folk"},
		"seeking_talent": {"y"},
	}), &req))

	require.NotNil(t, req.Name)
	assert.Equal(t, "Hop", *req.Name)
	assert.Nil(t, req.City)
	assert.Equal(t, []string{"Jazz", "Folk"}, req.Genres)
	require.NotNil(t, req.SeekingTalent)
	assert.True(t, bool(*req.SeekingTalent))

	req = VenueRequest{}
	require.NoError(t, Bind(jsonContext(`{"city": "SF"}`), &req))
	assert.Nil(t, req.Name)
	require.NotNil(t, req.City)
	assert.Equal(t, "SF", *req.City)
	assert.Nil(t, req.Genres)
	assert.Nil(t, req.SeekingTalent)
}

func TestCheckboxValues(t *testing.T) {
	for _, on := range []string{"y", "on", "true", "1", "YES"} {
		var req ArtistRequest
		require.NoError(t, Bind(formContext(url.Values{"name": {"a"}, "seeking_venue": {on}}), &req), on)
		assert.True(t, req.ToArtist().SeekingVenue, on)
	}

	var req ArtistRequest
	err := Bind(formContext(url.Values{"seeking_venue": {"maybe"}}), &req)
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "body", ve.Fields[0].Field)
	assert.Contains(t, ve.Fields[0].Message, "maybe")
}

func TestCheckboxLastValueWins(t *testing.T) {
	var cb Checkbox
	require.NoError(t, cb.UnmarshalParams([]string{"n", "y"}))
	assert.True(t, bool(cb))

	require.NoError(t, cb.UnmarshalParams([]string{"y", "off"}))
	assert.False(t, bool(cb))

	assert.Error(t, cb.UnmarshalParams([]string{"y", "perhaps"}))
}

func TestCheckboxJSON(t *testing.T) {
	var req ArtistRequest
	require.NoError(t, Bind(jsonContext(`{"name": "a", "seeking_venue": true}`), &req))
	assert.True(t, req.ToArtist().SeekingVenue)

	req = ArtistRequest{}
	require.NoError(t, Bind(jsonContext(`{"name": "a", "seeking_venue": "off"}`), &req))
	require.NotNil(t, req.SeekingVenue)
	assert.False(t, bool(*req.SeekingVenue))

	req = ArtistRequest{}
	require.NoError(t, Bind(jsonContext(`{"name": "a", "seeking_venue": null}`), &req))
	assert.Nil(t, req.SeekingVenue)
}

func TestSeekingDescriptionKeptWithoutFlag(t *testing.T) {
	var req VenueRequest
	require.NoError(t, Bind(formContext(url.Values{
		"name":                {"Hall"},
		"seeking_description": {"Looking for local bands"},
	}), &req))

	venue := req.ToVenue()
	assert.False(t, venue.SeekingTalent)
	assert.Equal(t, "Looking for local bands", venue.SeekingDescription)
}

func TestVenuePatchOnlySubmittedFields(t *testing.T) {
	var req VenueRequest
	require.NoError(t, Bind(formContext(url.Values{
		"phone":          {" 123-123-1234 "},
		"seeking_talent": {"off"},
	}), &req))

	patch := req.ToPatch()
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.Genres)
	require.NotNil(t, patch.Phone)
	assert.Equal(t, "123-123-1234", *patch.Phone)
	require.NotNil(t, patch.SeekingTalent)
	assert.False(t, *patch.SeekingTalent)
}

func TestArtistPatchFromJSON(t *testing.T) {
	var req ArtistRequest
	require.NoError(t, Bind(jsonContext(
		`{"name": "Guns N Petals", "genres": ["Rock n Roll"], "seeking_venue": true, "website": null}`), &req))

	patch := req.ToPatch()
	require.NotNil(t, patch.Name)
	assert.Equal(t, "Guns N Petals", *patch.Name)
	require.NotNil(t, patch.Genres)
	assert.Equal(t, []string{"Rock n Roll"}, *patch.Genres)
	require.NotNil(t, patch.SeekingVenue)
	assert.True(t, *patch.SeekingVenue)
	assert.Nil(t, patch.Website)
}

func TestBindShow(t *testing.T) {
	want := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)

	var req ShowRequest
	require.NoError(t, Bind(formContext(url.Values{
		"venue_id":   {"1"},
		"artist_id":  {"4"},
		"start_time": {"2035-04-01 20:00:00"},
	}), &req))
	show := req.ToShow()
	assert.Equal(t, uint(1), show.VenueID)
	assert.Equal(t, uint(4), show.ArtistID)
	assert.True(t, show.StartTime.Equal(want))

	req = ShowRequest{}
	require.NoError(t, Bind(jsonContext(
		`{"venue_id": 1, "artist_id": 4, "start_time": "2035-04-01T22:00:00+02:00"}`), &req))
	assert.True(t, req.ToShow().StartTime.Equal(want))
}

func TestBindShowMalformed(t *testing.T) {
	for name, values := range map[string]url.Values{
		"id":        {"venue_id": {"abc"}},
		"timestamp": {"start_time": {"next tuesday"}},
	} {
		var req ShowRequest
		err := Bind(formContext(values), &req)
		var ve *apperr.ValidationError
		assert.ErrorAs(t, err, &ve, name)
	}

	var req ShowRequest
	err := Bind(jsonContext(`{"venue_id": 1, "start_time": 20350401}`), &req)
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestBindShowMissingFieldsLeftToStore(t *testing.T) {
	var req ShowRequest
	require.NoError(t, Bind(formContext(url.Values{"start_time": {""}}), &req))

	show := req.ToShow()
	assert.Zero(t, show.VenueID)
	assert.True(t, show.StartTime.IsZero())
}

func TestBindSearch(t *testing.T) {
	var req SearchRequest
	require.NoError(t, Bind(formContext(url.Values{"search_term": {"  Hop "}}), &req))
	assert.Equal(t, "Hop", req.Term())

	req = SearchRequest{}
	require.NoError(t, Bind(jsonContext(`{"search_term": "MUSIC"}`), &req))
	assert.Equal(t, "MUSIC", req.Term())

	req = SearchRequest{}
	err := Bind(jsonContext(`{"search_term": `), &req)
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)
	for _, s := range []string{
		"2019-05-21T21:30:00.000Z",
		"2019-05-21T23:30:00+02:00",
		"2019-05-21 21:30:00",
		"2019-05-21T21:30",
	} {
		got, err := ParseTimestamp(s)
		require.NoError(t, err, s)
		assert.True(t, want.Equal(got), s)
		assert.Equal(t, time.UTC, got.Location(), s)
	}

	_, err := ParseTimestamp("21/05/2019")
	assert.Error(t, err)
}
