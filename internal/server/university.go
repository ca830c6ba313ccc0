package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/unimap/globe/internal/cache"
	"github.com/unimap/globe/internal/catalog"
	"github.com/unimap/globe/internal/session"
	"github.com/unimap/globe/pkg/core"
)

type universityApi struct {
	backend  catalog.Backend
	rankings *cache.RankingCache
	records  *cache.UniversityCache
}

func registerUniversityAPI(g *echo.Group, backend catalog.Backend, rankings *cache.RankingCache) {
	a := universityApi{
		backend:  backend,
		rankings: rankings,
		records:  cache.NewUniversityCache(),
	}

	ug := g.Group("/universities")
	ug.GET("", a.universityQuery)
	ug.POST("", a.universityCreate)
	ug.GET("/:id", a.universityRetrieve)

	g.GET("/disciplines", a.disciplineList)
}

// universityQuery returns the top-ranked universities, optionally filtered
// by discipline. Full per-discipline rankings are cached; the response is a
// copy so the cached slice is never handed out.
func (a *universityApi) universityQuery(c echo.Context) error {
	discipline := c.QueryParam("discipline")

	limit := session.DefaultEntityLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	ranked, ok := a.rankings.Get(discipline)
	if !ok {
		var err error
		ranked, err = a.backend.TopByDiscipline(discipline, 0)
		if err != nil {
			return err
		}
		a.rankings.Set(discipline, ranked)
	}

	if limit > len(ranked) {
		limit = len(ranked)
	}
	out := make([]core.University, limit)
	copy(out, ranked)
	return c.JSON(http.StatusOK, out)
}

func (a *universityApi) universityRetrieve(c echo.Context) error {
	id := c.Param("id")
	if u, ok := a.records.Get(id); ok {
		return c.JSON(http.StatusOK, u)
	}

	u, err := a.backend.UniversityByID(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "university not found")
		}
		return err
	}
	a.records.Add(u)
	return c.JSON(http.StatusOK, u)
}

func (a *universityApi) universityCreate(c echo.Context) error {
	data := new(core.University)
	if err := c.Bind(data); err != nil {
		return err
	}
	if data.ID == "" || data.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id and name are required")
	}

	if err := a.backend.AddUniversity(*data); err != nil {
		return err
	}
	a.rankings.Reset()
	a.records.Add(*data)

	return c.JSON(http.StatusCreated, data)
}

func (a *universityApi) disciplineList(c echo.Context) error {
	disciplines, err := a.backend.Disciplines()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, disciplines)
}
