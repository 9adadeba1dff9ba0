package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func getIDParam(ctx *gin.Context, name, label string) (uint, error) {
	value := ctx.Param(name)

	if value == "" {
		return 0, errors.New(label + " ID not found")
	}

	id, err := strconv.ParseUint(value, 10, 32)

	if err != nil || id == 0 {
		return 0, errors.New("Invalid " + label + " ID")
	}

	return uint(id), nil
}

func GetProjectID(ctx *gin.Context) (uint, error) {
	return getIDParam(ctx, "project_id", "Project")
}

func GetUserID(ctx *gin.Context) (uint, error) {
	return getIDParam(ctx, "user_id", "User")
}

func GetProjectUserID(ctx *gin.Context) (uint, uint, error) {
	projectID, err := GetProjectID(ctx)

	if err != nil {
		return 0, 0, err
	}

	userID, err := GetUserID(ctx)

	if err != nil {
		return 0, 0, err
	}

	return projectID, userID, nil
}
