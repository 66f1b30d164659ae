package controllers

import (
	"net/http"

	"MediHub360/httperr"
	"MediHub360/services"

	authorization "github.com/KanapuramVaishnavi/Core/config/authorization"
	util "github.com/KanapuramVaishnavi/Core/util"

	"github.com/gin-gonic/gin"
)

func User(router *gin.Engine) {
	user := router.Group("/user")
	{
		user.GET("/fetch/:userId", authorization.Authorize("user", "view"), FetchUserByCode)
		user.GET("/fetchAll", authorization.Authorize("user", "view"), FetchAllUsers)
		user.PATCH("/update/:userId", authorization.Authorize("user", "update"), UpdateUserByCode)
		user.DELETE("/delete/:userId", authorization.Authorize("user", "delete"), DeleteUserByCode)
	}
}

func FetchUserByCode(c *gin.Context) {
	userId := c.Param("userId")
	user, err := services.FetchUserByCode(c, userId)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(user))
}

func FetchAllUsers(c *gin.Context) {
	users, err := services.FetchAllUsers(c)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(users))
}

/*
* Role and status changes go through here, profile sync included
 */
func UpdateUserByCode(c *gin.Context) {
	userId := c.Param("userId")
	var data map[string]interface{}
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	updated, err := services.UpdateUserByCode(c, userId, data)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(updated))
}

func DeleteUserByCode(c *gin.Context) {
	userId := c.Param("userId")
	msg, err := services.DeleteUserByCode(c, userId)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(msg))
}
