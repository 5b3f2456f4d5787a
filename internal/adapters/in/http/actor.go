package http

import (
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the gateway after token verification. The service
// trusts them; it performs authorization, not authentication.
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserRole  = "X-User-Role"
	HeaderUserEmail = "X-User-Email"
)

// actorFromRequest extracts the authenticated principal from the identity
// headers. The email may be empty; queries that need it enforce that
// themselves.
func actorFromRequest(ctx echo.Context) (user.Actor, string, error) {
	rawID := ctx.Request().Header.Get(HeaderUserID)
	if rawID == "" {
		return user.Actor{}, "", errs.NewValueIsRequiredError(HeaderUserID + " header")
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return user.Actor{}, "", err
	}

	rawRole := ctx.Request().Header.Get(HeaderUserRole)
	if rawRole == "" {
		return user.Actor{}, "", errs.NewValueIsRequiredError(HeaderUserRole + " header")
	}

	role, err := user.RoleFromString(rawRole)
	if err != nil {
		return user.Actor{}, "", err
	}

	return user.Actor{ID: id, Role: role}, ctx.Request().Header.Get(HeaderUserEmail), nil
}
