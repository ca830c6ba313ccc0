package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/unimap/globe/internal/catalog"
	"github.com/unimap/globe/pkg/core"
)

type mentorApi struct {
	backend catalog.Backend
}

func registerMentorAPI(g *echo.Group, backend catalog.Backend) {
	a := mentorApi{backend: backend}

	mg := g.Group("/mentors")
	mg.GET("", a.mentorList)
	mg.POST("", a.mentorCreate)
}

func (a *mentorApi) mentorList(c echo.Context) error {
	mentors, err := a.backend.ListMentors()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mentors)
}

func (a *mentorApi) mentorCreate(c echo.Context) error {
	data := new(core.Mentor)
	if err := c.Bind(data); err != nil {
		return err
	}
	if data.ID == "" || data.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id and name are required")
	}

	if err := a.backend.AddMentor(*data); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, data)
}
