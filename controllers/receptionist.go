package controllers

import (
	"net/http"

	"MediHub360/httperr"
	"MediHub360/services"

	authorization "github.com/KanapuramVaishnavi/Core/config/authorization"
	util "github.com/KanapuramVaishnavi/Core/util"

	"github.com/gin-gonic/gin"
)

func Receptionist(router *gin.Engine) {
	receptionist := router.Group("/receptionist")
	{
		receptionist.POST("/create", authorization.Authorize("receptionist", "create"), CreateReceptionist)
		receptionist.GET("/fetch/:receptionistId", authorization.Authorize("receptionist", "view"), FetchReceptionistByCode)
		receptionist.PATCH("/update/:receptionistId", authorization.Authorize("receptionist", "update"), UpdateReceptionistByCode)
		receptionist.GET("/fetchAll", authorization.Authorize("receptionist", "view"), FetchAllReceptionists)
		receptionist.DELETE("/delete/:receptionistId", authorization.Authorize("receptionist", "delete"), DeleteReceptionist)
	}
}

func CreateReceptionist(c *gin.Context) {
	data := make(map[string]interface{})
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	receptionist, err := services.CreateReceptionist(c, data)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(receptionist))
}

func FetchReceptionistByCode(c *gin.Context) {
	receptionistId := c.Param("receptionistId")
	receptionist, err := services.FetchReceptionistByCode(c, receptionistId)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(receptionist))
}

func UpdateReceptionistByCode(c *gin.Context) {
	receptionistId := c.Param("receptionistId")
	data := make(map[string]interface{})
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	updated, err := services.UpdateReceptionistByCode(c, receptionistId, data)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(updated))
}

func FetchAllReceptionists(c *gin.Context) {
	receptionists, err := services.FetchAllReceptionists(c)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(receptionists))
}

func DeleteReceptionist(c *gin.Context) {
	receptionistId := c.Param("receptionistId")
	msg, err := services.DeleteReceptionist(c, receptionistId)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(msg))
}
