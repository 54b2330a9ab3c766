package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/student"
)

type studentApi struct {
	svc student.Service
}

func registerStudentAPI(g *echo.Group, svc student.Service) {
	api := studentApi{svc: svc}

	sg := g.Group("/students")
	sg.POST("", api.create)
	sg.GET("", api.query)
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := bind(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	st, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, st)
}

// query lists students, narrowed down by `?teacher_id=` or `?parent_id=`.
func (api *studentApi) query(ctx echo.Context) error {
	var filter student.QueryFilter
	if err := bind(ctx, &filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	var (
		students []student.Student
		err      error
	)
	c := ctx.Request().Context()
	switch {
	case filter.TeacherID != 0:
		students, err = api.svc.QueryByTeacher(c, filter.TeacherID)
	case filter.ParentID != 0:
		students, err = api.svc.QueryByParent(c, filter.ParentID)
	default:
		students, err = api.svc.QueryAll(c)
	}
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	st, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting student")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentApi) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data student.UpdateStudent
	if err := bind(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	st, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}
