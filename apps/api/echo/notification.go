package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/arifa/core"
	"github.com/trezcool/arifa/core/notification"
)

type notificationApi struct {
	svc *notification.Service
}

func registerNotificationAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *notification.Service) {
	api := notificationApi{svc: svc}

	ng := g.Group("/notifications", jwt)
	ng.GET("", api.query)
	ng.GET("/unread-count", api.unreadCount)
	ng.POST("/read-all", api.markAllRead)
	ng.DELETE("", api.destroyMultiple)
	ng.GET("/settings", api.retrieveSettings)
	ng.PUT("/settings", api.updateSettings)
	ng.POST("/:id/read", api.markRead)
	ng.DELETE("/:id", api.destroy)
}

// Handlers

func (api *notificationApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	filter := new(notificationQueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []notification.Notification{})
	}
	if err := filter.Validate(); err != nil {
		return err
	}

	notifs, err := api.svc.Query(ctx.Request().Context(), claims.Subject, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "querying notifications")
	}
	notifs = filter.apply(notifs)
	if notifs == nil {
		notifs = []notification.Notification{}
	}
	return ctx.JSON(http.StatusOK, notifs)
}

func (api *notificationApi) unreadCount(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	count, err := api.svc.Unread(ctx.Request().Context(), claims.Subject, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "counting unread notifications")
	}
	return ctx.JSON(http.StatusOK, UnreadCountResponse{Count: count})
}

func (api *notificationApi) markRead(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.MarkRead(ctx.Request().Context(), claims.Subject, ctx.Param("id")); err != nil {
		if errors.Cause(err) == notification.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "marking notification read")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *notificationApi) markAllRead(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.MarkAllRead(ctx.Request().Context(), claims.Subject); err != nil {
		return errors.Wrap(err, "marking all notifications read")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *notificationApi) destroy(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Dismiss(ctx.Request().Context(), claims.Subject, ctx.Param("id")); err != nil {
		if errors.Cause(err) == notification.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "dismissing notification")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *notificationApi) destroyMultiple(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.svc.Dismiss(ctx.Request().Context(), claims.Subject, query.IDs...); err != nil {
		return errors.Wrap(err, "dismissing notifications")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *notificationApi) retrieveSettings(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	settings, err := api.svc.Settings(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "retrieving settings")
	}
	return ctx.JSON(http.StatusOK, settings)
}

func (api *notificationApi) updateSettings(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data notification.SettingsInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SettingsInput")
	}

	orig, err := api.svc.Settings(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "retrieving settings")
	}
	settings, err := api.svc.UpdateSettings(ctx.Request().Context(), data.Apply(orig))
	if err != nil {
		return errors.Wrap(err, "updating settings")
	}
	return ctx.JSON(http.StatusOK, settings)
}

type (
	notificationQueryFilter struct {
		Category string `query:"category"`
		Priority string `query:"priority"`
		Limit    string `query:"limit"`

		limit int
	}

	UnreadCountResponse struct {
		Count int `json:"count"`
	}

	DestroyMultipleRequest struct {
		IDs []string `query:"id"`
	}
)

func (f *notificationQueryFilter) Validate() error {
	f.limit = -1
	if f.Limit != "" {
		n, err := strconv.Atoi(f.Limit)
		if err != nil || n < 0 {
			return core.NewValidationError(nil, core.FieldError{Field: "limit", Error: "must be a non-negative integer"})
		}
		f.limit = n
	}
	if f.Category != "" && !notification.Category(f.Category).Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "category", Error: "unknown category"})
	}
	if f.Priority != "" && !notification.Priority(f.Priority).Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "priority", Error: "unknown priority"})
	}
	return nil
}

func (f *notificationQueryFilter) apply(notifs []notification.Notification) []notification.Notification {
	if f.Category != "" {
		notifs = notification.ByCategory(notifs, notification.Category(f.Category))
	}
	if f.Priority != "" {
		notifs = notification.ByPriority(notifs, notification.Priority(f.Priority))
	}
	return notification.Recent(notifs, f.limit)
}
