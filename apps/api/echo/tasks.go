package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/task"
)

type taskApi struct {
	svc task.Service
}

func registerTaskAPI(g *echo.Group, svc task.Service) {
	api := taskApi{svc: svc}

	tg := g.Group("/tasks")
	tg.POST("", api.create)
	tg.GET("", api.query)
	tg.GET("/:id", api.retrieve)
	tg.PUT("/:id", api.update)
	tg.DELETE("/:id", api.destroy)
}

func (api *taskApi) create(ctx echo.Context) error {
	var data task.NewTask
	if err := bind(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}
	tsk, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating task")
	}
	return ctx.JSON(http.StatusCreated, tsk)
}

func (api *taskApi) query(ctx echo.Context) error {
	tasks, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying tasks")
	}
	return ctx.JSON(http.StatusOK, tasks)
}

func (api *taskApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	tsk, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting task")
	}
	return ctx.JSON(http.StatusOK, tsk)
}

func (api *taskApi) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data task.UpdateTask
	if err := bind(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to UpdateTask")
	}
	tsk, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating task")
	}
	return ctx.JSON(http.StatusOK, tsk)
}

func (api *taskApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting task")
	}
	return ctx.NoContent(http.StatusNoContent)
}
