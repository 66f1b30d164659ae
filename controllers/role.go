package controllers

import (
	"net/http"

	"MediHub360/httperr"
	"MediHub360/services"

	authorization "github.com/KanapuramVaishnavi/Core/config/authorization"
	util "github.com/KanapuramVaishnavi/Core/util"

	"github.com/gin-gonic/gin"
)

func Role(router *gin.Engine) {
	roleGroup := router.Group("/role")
	{
		roleGroup.GET("/fetchAll", authorization.Authorize("role", "view"), FetchAllRoles)
		roleGroup.GET("/fetch/:roleCode", authorization.Authorize("role", "view"), FetchRoleByCode)
	}
}

func FetchAllRoles(c *gin.Context) {
	roles, err := services.FetchAllRoles(c)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(roles))
}

func FetchRoleByCode(c *gin.Context) {
	roleCode := c.Param("roleCode")
	roleDoc, err := services.FetchRoleByCode(c, roleCode)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(roleDoc))
}
