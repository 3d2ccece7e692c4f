package echoServer

import (
	"net/http"

	"carrental/app/echoServer/controller/auth"
	"carrental/app/echoServer/controller/brand"
	"carrental/app/echoServer/controller/client"
	"carrental/app/echoServer/controller/contact"
	"carrental/app/echoServer/controller/contract"
	"carrental/app/echoServer/controller/employee"
	"carrental/app/echoServer/controller/maintenance"
	"carrental/app/echoServer/controller/report"
	"carrental/app/echoServer/controller/reservation"
	"carrental/app/echoServer/controller/vehicle"
	"carrental/app/echoServer/jwtx"
	"carrental/util/httpx"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth        *auth.Controller
	Client      *client.Controller
	Employee    *employee.Controller
	Brand       *brand.Controller
	Vehicle     *vehicle.Controller
	Reservation *reservation.Controller
	Contract    *contract.Controller
	Maintenance *maintenance.Controller
	Report      *report.Controller
	Contact     *contact.Controller
	JWTSecret   string
}

// requireStaff guards routes reserved for employees and managers.
func requireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !jwtx.IsStaff(c) {
			return httpx.Fail(c, http.StatusForbidden, "staff access required", "role")
		}
		return next(c)
	}
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)
	pub.POST("/auth/password-recovery", c.Auth.PasswordRecovery)
	pub.POST("/auth/password-reset", c.Auth.PasswordReset)
	pub.POST("/contact", c.Contact.Send)

	// Authenticated. The token travels either as a Bearer header or as
	// the session cookie the auth endpoints set.
	priv := e.Group("/v1")
	priv.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization:Bearer ,cookie:token",
	}))

	priv.PUT("/auth/password", c.Auth.ChangePassword)

	// Clients manage their own profile; list and delete are staff-only.
	priv.GET("/clients", c.Client.List, requireStaff)
	priv.GET("/clients/:id", c.Client.Detail)
	priv.PUT("/clients/:id", c.Client.Update)
	priv.POST("/clients/:id/email-change", c.Client.RequestEmailChange)
	priv.POST("/clients/:id/email-change/confirm", c.Client.ConfirmEmailChange)
	priv.POST("/clients/:id/documents", c.Client.UploadDocuments)
	priv.DELETE("/clients/:id", c.Client.Delete, requireStaff)

	// Reservations
	priv.POST("/reservations", c.Reservation.Create)
	priv.GET("/reservations", c.Reservation.List, requireStaff)
	priv.GET("/reservations/my-reservations", c.Reservation.Mine)
	priv.GET("/reservations/status/:status", c.Reservation.ByStatus, requireStaff)
	priv.GET("/reservations/vehicle/:vehicleId", c.Reservation.ByVehicle, requireStaff)
	priv.GET("/reservations/:id", c.Reservation.Detail)
	priv.PUT("/reservations/:id", c.Reservation.Update, requireStaff)
	priv.DELETE("/reservations/:id", c.Reservation.Delete, requireStaff)

	// Contracts
	priv.GET("/contracts", c.Contract.List, requireStaff)
	priv.GET("/contracts/:id", c.Contract.Detail, requireStaff)
	priv.GET("/contracts/reservation/:reservationId", c.Contract.ByReservation)
	priv.PUT("/contracts/:id/finalize", c.Contract.Finalize, requireStaff)
	priv.PUT("/contracts/:id/annul", c.Contract.Annul, requireStaff)
	priv.POST("/contracts/:id/regenerate-pdf", c.Contract.RegeneratePdf, requireStaff)

	// Catalog reads for any authenticated user
	priv.GET("/brands", c.Brand.List)
	priv.GET("/brands/:id", c.Brand.Detail)
	priv.GET("/vehicles", c.Vehicle.List)
	priv.GET("/vehicles/:id", c.Vehicle.Detail)

	// Fleet management (staff)
	staff := priv.Group("", requireStaff)
	staff.POST("/brands", c.Brand.Create)
	staff.PUT("/brands/:id", c.Brand.Update)
	staff.DELETE("/brands/:id", c.Brand.Delete)

	staff.POST("/vehicles", c.Vehicle.Create)
	staff.PUT("/vehicles/:id", c.Vehicle.Update)
	staff.POST("/vehicles/:id/images", c.Vehicle.UploadImages)
	staff.DELETE("/vehicles/:id", c.Vehicle.Delete)

	staff.POST("/maintenances", c.Maintenance.Create)
	staff.GET("/maintenances", c.Maintenance.List)
	staff.GET("/maintenances/:id", c.Maintenance.Detail)
	staff.GET("/vehicles/:id/maintenances", c.Maintenance.ByVehicle)
	staff.PUT("/maintenances/:id", c.Maintenance.Update)
	staff.PATCH("/maintenances/:id/status", c.Maintenance.SetStatus)
	staff.DELETE("/maintenances/:id", c.Maintenance.Delete)

	staff.POST("/employees", c.Employee.Create)
	staff.GET("/employees", c.Employee.List)
	staff.GET("/employees/:id", c.Employee.Detail)
	staff.PUT("/employees/:id", c.Employee.Update)
	staff.DELETE("/employees/:id", c.Employee.Delete)

	// Reports hang off the reservations namespace they aggregate.
	staff.GET("/reservations/new-clients-per-day", c.Report.NewClientsPerDay)
	staff.GET("/reservations/most-rented-brands", c.Report.MostRentedBrands)
	staff.GET("/reservations/most-rented-models", c.Report.MostRentedModels)
}
