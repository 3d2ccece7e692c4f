// Package main car rental API.
//
// @title           Car Rental API
// @version         1.0
// @description     Vehicle rental backend (clients, fleet, reservations, contracts, reports).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"carrental/app/echoServer"
	authctrl "carrental/app/echoServer/controller/auth"
	brandctrl "carrental/app/echoServer/controller/brand"
	clientctrl "carrental/app/echoServer/controller/client"
	contactctrl "carrental/app/echoServer/controller/contact"
	contractctrl "carrental/app/echoServer/controller/contract"
	employeectrl "carrental/app/echoServer/controller/employee"
	maintenancectrl "carrental/app/echoServer/controller/maintenance"
	reportctrl "carrental/app/echoServer/controller/report"
	reservationctrl "carrental/app/echoServer/controller/reservation"
	vehiclectrl "carrental/app/echoServer/controller/vehicle"
	"carrental/app/echoServer/validation"
	"carrental/config"
	brandrepo "carrental/repository/brand"
	clientrepo "carrental/repository/client"
	cloudinaryrepo "carrental/repository/cloudinary"
	contractrepo "carrental/repository/contract"
	employeerepo "carrental/repository/employee"
	maintenancerepo "carrental/repository/maintenance"
	mailerrepo "carrental/repository/mailer"
	rendererrepo "carrental/repository/renderer"
	reportrepo "carrental/repository/report"
	reservationrepo "carrental/repository/reservation"
	vehiclerepo "carrental/repository/vehicle"
	authsvc "carrental/service/auth"
	brandsvc "carrental/service/brand"
	clientsvc "carrental/service/client"
	contractsvc "carrental/service/contract"
	employeesvc "carrental/service/employee"
	maintenancesvc "carrental/service/maintenance"
	notifysvc "carrental/service/notify"
	reportsvc "carrental/service/report"
	reservationsvc "carrental/service/reservation"
	vehiclesvc "carrental/service/vehicle"
	"carrental/util/cache"
	"carrental/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// recovery codes live in redis when configured, in-process otherwise
	var codes cache.Cache
	if cfg.RedisURL != "" {
		codes = cache.NewRedis(cfg.RedisURL)
	} else {
		log.Info("REDIS_URL not set, using in-memory code cache")
		codes = cache.NewMemory()
	}

	// repos
	clr := clientrepo.New(db)
	er := employeerepo.New(db)
	br := brandrepo.New(db)
	vr := vehiclerepo.New(db)
	rr := reservationrepo.New(db)
	cor := contractrepo.New(db)
	mr := maintenancerepo.New(db)
	rpr := reportrepo.New(db)

	img := cloudinaryrepo.NewHTTP(cloudinaryrepo.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
	})
	mail := mailerrepo.NewHTTP(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFrom)
	rend := rendererrepo.NewHTTP(cfg.RendererURL, cfg.RendererKey)

	// services
	as := authsvc.New(clr, er, codes, mail, cfg.JWTSecret, log)
	cls := clientsvc.New(clr, img, codes, mail, log)
	es := employeesvc.New(er)
	bs := brandsvc.New(br, img, log)
	vs := vehiclesvc.New(vr, br, img, log)
	cos := contractsvc.New(cor, rr, vr, clr, br, rend, cfg.SignatureCity)
	rs := reservationsvc.New(rr, vr, clr, cos, log)
	ms := maintenancesvc.New(mr, vr)
	rps := reportsvc.New(rpr)
	ns := notifysvc.New(mail, cfg.ContactInbox, log)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	clientC := &clientctrl.Controller{Svc: cls, V: v, Log: log}
	employeeC := &employeectrl.Controller{Svc: es, V: v, Log: log}
	brandC := &brandctrl.Controller{Svc: bs, Log: log}
	vehicleC := &vehiclectrl.Controller{Svc: vs, V: v, Log: log}
	reservationC := &reservationctrl.Controller{Svc: rs, V: v, Log: log}
	contractC := &contractctrl.Controller{Svc: cos, Log: log}
	maintenanceC := &maintenancectrl.Controller{Svc: ms, V: v, Log: log}
	reportC := &reportctrl.Controller{Svc: rps, Log: log}
	contactC := &contactctrl.Controller{Svc: ns, V: v}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:        authC,
		Client:      clientC,
		Employee:    employeeC,
		Brand:       brandC,
		Vehicle:     vehicleC,
		Reservation: reservationC,
		Contract:    contractC,
		Maintenance: maintenanceC,
		Report:      reportC,
		Contact:     contactC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
