package controllers

import (
	"net/http"

	"MediHub360/httperr"
	"MediHub360/services"

	authorization "github.com/KanapuramVaishnavi/Core/config/authorization"
	util "github.com/KanapuramVaishnavi/Core/util"

	"github.com/gin-gonic/gin"
)

func Doctor(router *gin.Engine) {
	doctor := router.Group("/doctor")
	{
		doctor.POST("/create", authorization.Authorize("doctor", "create"), CreateDoctor)
		doctor.GET("/fetch/:doctorId", authorization.Authorize("doctor", "view"), FetchDoctorByCode)
		doctor.PATCH("/update/:doctorId", authorization.Authorize("doctor", "update"), UpdateDoctorByCode)
		doctor.GET("/fetchAll", authorization.Authorize("doctor", "view"), FetchAllDoctors)
		doctor.DELETE("/delete/:doctorId", authorization.Authorize("doctor", "delete"), DeleteDoctor)
	}
}

func CreateDoctor(c *gin.Context) {
	data := make(map[string]interface{})
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	doctor, err := services.CreateDoctor(c, data)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(doctor))
}

func FetchDoctorByCode(c *gin.Context) {
	doctorId := c.Param("doctorId")
	doctor, err := services.FetchDoctorByCode(c, doctorId)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctor))
}

func UpdateDoctorByCode(c *gin.Context) {
	doctorId := c.Param("doctorId")
	data := make(map[string]interface{})
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	updated, err := services.UpdateDoctorByCode(c, doctorId, data)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(updated))
}

func FetchAllDoctors(c *gin.Context) {
	doctors, err := services.FetchAllDoctors(c)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctors))
}

func DeleteDoctor(c *gin.Context) {
	doctorId := c.Param("doctorId")
	msg, err := services.DeleteDoctor(c, doctorId)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(msg))
}
