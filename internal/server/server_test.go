package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimap/globe/internal/cache"
	"github.com/unimap/globe/internal/catalog/memory"
	"github.com/unimap/globe/pkg/core"
)

func testAPI(t *testing.T) (*httptest.Server, *memory.Backend) {
	t.Helper()

	b := memory.New()
	require.NoError(t, b.Init())
	require.NoError(t, b.ReplaceUniversities([]core.University{
		{
			ID:       "oxford",
			Name:     "University of Oxford",
			Rank:     2,
			Location: core.Geodetic{Lon: -1.2544, Lat: 51.7548},
			Programs: map[string]core.Program{"law": {}, "medicine": {}},
		},
		{
			ID:       "harvard",
			Name:     "Harvard University",
			Rank:     1,
			Location: core.Geodetic{Lon: -71.1167, Lat: 42.3770},
			Programs: map[string]core.Program{"law": {}},
		},
		{
			ID:       "unranked-tech",
			Name:     "Unranked Tech",
			Location: core.Geodetic{Lon: 0, Lat: 0},
			Programs: map[string]core.Program{"engineering": {}},
		},
	}))

	e := New(b, cache.NewRankingCache(), nil)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, b
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealthz(t *testing.T) {
	srv, _ := testAPI(t)

	resp := getJSON(t, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUniversityQuery_RankedOrder(t *testing.T) {
	srv, _ := testAPI(t)

	var unis []core.University
	resp := getJSON(t, srv.URL+"/api/universities", &unis)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, unis, 3)
	assert.Equal(t, "harvard", unis[0].ID)
	assert.Equal(t, "oxford", unis[1].ID)
	assert.Equal(t, "unranked-tech", unis[2].ID)
}

func TestUniversityQuery_DisciplineFilter(t *testing.T) {
	srv, _ := testAPI(t)

	var unis []core.University
	resp := getJSON(t, srv.URL+"/api/universities?discipline=law", &unis)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, unis, 2)
	assert.Equal(t, "harvard", unis[0].ID)
	assert.Equal(t, "oxford", unis[1].ID)
}

func TestUniversityQuery_Limit(t *testing.T) {
	srv, _ := testAPI(t)

	var unis []core.University
	getJSON(t, srv.URL+"/api/universities?limit=1", &unis)
	require.Len(t, unis, 1)
	assert.Equal(t, "harvard", unis[0].ID)
}

func TestUniversityQuery_LimitLeavesCacheIntact(t *testing.T) {
	b := memory.New()
	require.NoError(t, b.Init())
	require.NoError(t, b.ReplaceUniversities([]core.University{
		{ID: "u1", Name: "First", Rank: 1, Programs: map[string]core.Program{"law": {}}},
		{ID: "u2", Name: "Second", Rank: 2, Programs: map[string]core.Program{"law": {}}},
		{ID: "u3", Name: "Third", Rank: 3, Programs: map[string]core.Program{"law": {}}},
	}))

	rankings := cache.NewRankingCache()
	srv := httptest.NewServer(New(b, rankings, nil))
	t.Cleanup(srv.Close)

	var trimmed []core.University
	getJSON(t, srv.URL+"/api/universities?limit=1", &trimmed)
	require.Len(t, trimmed, 1)

	// The cached ranking keeps its full length; trimming happened on a copy.
	cached, ok := rankings.Get("")
	require.True(t, ok)
	require.Len(t, cached, 3)
	assert.Equal(t, "u1", cached[0].ID)

	var full []core.University
	getJSON(t, srv.URL+"/api/universities", &full)
	require.Len(t, full, 3)
	assert.Equal(t, "u3", full[2].ID)
}

func TestUniversityQuery_BadLimit(t *testing.T) {
	srv, _ := testAPI(t)

	resp := getJSON(t, srv.URL+"/api/universities?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUniversityRetrieve(t *testing.T) {
	srv, _ := testAPI(t)

	var u core.University
	resp := getJSON(t, srv.URL+"/api/universities/oxford", &u)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "University of Oxford", u.Name)
	assert.InDelta(t, 51.7548, u.Location.Lat, 1e-9)
}

func TestUniversityRetrieve_NotFound(t *testing.T) {
	srv, _ := testAPI(t)

	resp := getJSON(t, srv.URL+"/api/universities/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUniversityCreate_InvalidatesRankings(t *testing.T) {
	srv, _ := testAPI(t)

	// Warm the ranking cache.
	var before []core.University
	getJSON(t, srv.URL+"/api/universities?discipline=law", &before)
	require.Len(t, before, 2)

	body := `{
		"id": "yale",
		"name": "Yale University",
		"rank": 3,
		"location": {"lon": -72.9223, "lat": 41.3163},
		"programs": {"law": {}}
	}`
	resp, err := http.Post(srv.URL+"/api/universities", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var after []core.University
	getJSON(t, srv.URL+"/api/universities?discipline=law", &after)
	require.Len(t, after, 3)
	assert.Equal(t, "yale", after[2].ID)
}

func TestUniversityCreate_MissingFields(t *testing.T) {
	srv, _ := testAPI(t)

	resp, err := http.Post(srv.URL+"/api/universities", "application/json", strings.NewReader(`{"name":"No ID"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDisciplines(t *testing.T) {
	srv, _ := testAPI(t)

	var disciplines []string
	resp := getJSON(t, srv.URL+"/api/disciplines", &disciplines)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"engineering", "law", "medicine"}, disciplines)
}

func TestMentors(t *testing.T) {
	srv, _ := testAPI(t)

	body := `{"id": "m1", "name": "Dr. Ada", "expertise": ["engineering"], "universityId": "harvard"}`
	resp, err := http.Post(srv.URL+"/api/mentors", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var mentors []core.Mentor
	getJSON(t, srv.URL+"/api/mentors", &mentors)
	require.Len(t, mentors, 1)
	assert.Equal(t, "Dr. Ada", mentors[0].Name)
	assert.Equal(t, "harvard", mentors[0].UniversityID)
}
