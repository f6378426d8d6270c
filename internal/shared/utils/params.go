package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/shared/errors"
)

// ParseUintParam parses a numeric URL path parameter. entityName is used in
// the error message (e.g. "ticket", "category").
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s ID: %q", entityName, raw))
	}

	return uint(id), nil
}

// CurrentUserID returns the authenticated user id set by the auth middleware.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// CurrentUserRoles returns the role claims set by the auth middleware.
func CurrentUserRoles(c *gin.Context) []string {
	v, ok := c.Get("user_roles")
	if !ok {
		return nil
	}
	roles, _ := v.([]string)
	return roles
}
