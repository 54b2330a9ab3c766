package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/assignment"
)

type assignmentApi struct {
	svc assignment.Service
}

func registerAssignmentAPI(g *echo.Group, svc assignment.Service) {
	api := assignmentApi{svc: svc}

	ag := g.Group("/assignments")
	ag.POST("", api.create)
	ag.GET("", api.query)
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := bind(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	a, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

// query lists assignments, narrowed down by `?student_id=`.
func (api *assignmentApi) query(ctx echo.Context) error {
	var filter assignment.QueryFilter
	if err := bind(ctx, &filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	var (
		as  []assignment.Assignment
		err error
	)
	if filter.StudentID != 0 {
		as, err = api.svc.QueryByStudent(ctx.Request().Context(), filter.StudentID)
	} else {
		as, err = api.svc.QueryAll(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	return ctx.JSON(http.StatusOK, as)
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	a, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting assignment")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data assignment.UpdateAssignment
	if err := bind(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}
	a, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}
