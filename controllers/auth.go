package controllers

import (
	"net/http"

	"MediHub360/httperr"
	"MediHub360/services"

	util "github.com/KanapuramVaishnavi/Core/util"

	"github.com/gin-gonic/gin"
)

func Auth(router *gin.Engine) {
	auth := router.Group("/auth")
	{
		auth.POST("/signup", Signup)
		auth.POST("/verify", VerifyEmail)
		auth.POST("/login", Login)
	}
}

/*
* Here binding happens with the respective fields if any error return error
* And if no error moves to services
 */
func Signup(c *gin.Context) {
	var data map[string]interface{}
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	created, err := services.Signup(c, data)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(created))
}

func VerifyEmail(c *gin.Context) {
	var data map[string]interface{}
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	msg, err := services.VerifyEmail(c, data)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(msg))
}

func Login(c *gin.Context) {
	var data map[string]interface{}
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	session, err := services.Login(c, data)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(session))
}

/*
* Public bootstrap for the first administrator
 */
func CreateAdmin(c *gin.Context) {
	var data map[string]interface{}
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	created, err := services.CreateAdmin(c, data)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(created))
}
