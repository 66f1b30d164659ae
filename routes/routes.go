package routes

import (
	"MediHub360/controllers"

	authorization "github.com/KanapuramVaishnavi/Core/config/authorization"

	"github.com/gin-gonic/gin"
)

func Routes(r *gin.Engine) {

	//public
	r.POST("/ADMIN/create", controllers.CreateAdmin)
	controllers.Auth(r)
	//privateroutes
	r.Use(authorization.JWTAuth())
	controllers.User(r)
	controllers.Patient(r)
	controllers.Doctor(r)
	controllers.Receptionist(r)
	controllers.Appointment(r)
	controllers.Role(r)
}
