package controllers

import (
	"net/http"

	"MediHub360/httperr"
	"MediHub360/services"

	authorization "github.com/KanapuramVaishnavi/Core/config/authorization"
	util "github.com/KanapuramVaishnavi/Core/util"

	"github.com/gin-gonic/gin"
)

func Appointment(c *gin.Engine) {
	appointments := c.Group("appointments")
	{
		appointments.POST("/book", authorization.Authorize("appointment", "create"), BookAppointment)
		appointments.GET("/:appointmentId", authorization.Authorize("appointment", "view"), FetchAppointmentByCode)
		appointments.PATCH("/:appointmentId", authorization.Authorize("appointment", "update"), UpdateAppointment)
		appointments.DELETE("/:appointmentId", authorization.Authorize("appointment", "delete"), CancelAppointment)
		appointments.GET("", authorization.Authorize("appointment", "view"), FetchAllAppointments)
	}
}

/*
* Bind JSON
* And pass to the service
 */
func BookAppointment(c *gin.Context) {
	var data map[string]interface{}
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	appointment, err := services.BookAppointment(c, data)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(appointment))
}

func FetchAppointmentByCode(c *gin.Context) {
	appointmentId := c.Param("appointmentId")
	appointment, err := services.FetchAppointmentByCode(c, appointmentId)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(appointment))
}

/*
* Get appointmentId from param
* Bind the partial update and pass to the service
 */
func UpdateAppointment(c *gin.Context) {
	appointmentId := c.Param("appointmentId")
	var data map[string]interface{}
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	updated, err := services.UpdateAppointmentByCode(c, appointmentId, data)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(updated))
}

func CancelAppointment(c *gin.Context) {
	appointmentId := c.Param("appointmentId")
	cancelled, err := services.CancelAppointmentByCode(c, appointmentId)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(cancelled))
}

func FetchAllAppointments(c *gin.Context) {
	appointments, err := services.FetchAllAppointments(c)
	if err != nil {
		c.JSON(httperr.StatusOf(err), util.FailedResponse(httperr.Sanitize(err)))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(appointments))
}
