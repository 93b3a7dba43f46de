package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aadit2805/project3-group7-deploy-sub000/selection"
	"github.com/aadit2805/project3-group7-deploy-sub000/services"
	"github.com/aadit2805/project3-group7-deploy-sub000/sessions"
	"github.com/aadit2805/project3-group7-deploy-sub000/utils"
)

// ErrNoPermission is returned when the caller's role may not use an endpoint.
var ErrNoPermission = &CustomError{"You do not have permission"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, sessions.ErrSessionNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrOutOfStock),
		errors.Is(err, services.ErrUnavailable),
		errors.Is(err, sessions.ErrNoActiveLine):
		return http.StatusConflict
	case errors.Is(err, selection.ErrIncompleteLine),
		errors.Is(err, selection.ErrWrongCategory),
		errors.Is(err, selection.ErrLineIndex),
		errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrInvalidSource),
		errors.Is(err, sessions.ErrEmptyCart):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func respondErr(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		utils.ErrorLogger.WithField("path", c.FullPath()).Errorf("request failed: %v", err)
	}
	utils.RespondError(c, code, err)
}

func paramID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

// userID returns the authenticated staff id, if any.
func userID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
