package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/homework"
)

type homeworkApi struct {
	svc homework.Service
}

func registerHomeworkAPI(g *echo.Group, svc homework.Service) {
	api := homeworkApi{svc: svc}

	hg := g.Group("/homework")
	hg.POST("", api.create)
	hg.GET("", api.query)
	hg.GET("/:id", api.retrieve)
	hg.PUT("/:id", api.update)
	hg.DELETE("/:id", api.destroy)
}

func (api *homeworkApi) create(ctx echo.Context) error {
	var data homework.NewHomework
	if err := bind(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to NewHomework")
	}
	hw, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating homework")
	}
	return ctx.JSON(http.StatusCreated, hw)
}

func (api *homeworkApi) query(ctx echo.Context) error {
	hws, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying homework")
	}
	return ctx.JSON(http.StatusOK, hws)
}

func (api *homeworkApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	hw, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting homework")
	}
	return ctx.JSON(http.StatusOK, hw)
}

func (api *homeworkApi) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data homework.UpdateHomework
	if err := bind(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to UpdateHomework")
	}
	hw, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating homework")
	}
	return ctx.JSON(http.StatusOK, hw)
}

func (api *homeworkApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting homework")
	}
	return ctx.NoContent(http.StatusNoContent)
}
