package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"

	"mycurrency/internal/api"
	"mycurrency/internal/api/middleware"
	"mycurrency/internal/service"
)

func (app *App) initHTTP(rateService service.RateServiceInterface, redisOpt asynq.RedisClientOpt) {
	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RequestLoggingMiddleware(app.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/rates/latest", api.HandleGetLatestRate(rateService))
	r.Get("/rates/convert", api.HandleConvert(rateService))
	r.Get("/rates/convert/batch", api.HandleConvertBatch(rateService))
	r.Get("/rates/history", api.HandleListHistoricalRates(rateService))
	r.Get("/rates/twrr", api.HandleTWRR(rateService))
	r.Get("/rates/chart", api.HandleChart(rateService))
	r.Post("/rates/backfill", api.HandleRequestBackfill(rateService))
	r.Get("/healthz", api.HandleHealthz())
	r.Get("/readyz", api.HandleReadyz(app.db, app.rdbCache, app.rdbAsynq))

	if app.cfg.Server.ServeSwagger {
		r.Get("/swagger/*", api.SwaggerUIHandler())
		r.Get("/openapi.json", api.OpenAPISpecHandler())
	}

	if app.cfg.Server.ServeAsynqmon {
		mon := asynqmon.New(asynqmon.Options{
			RootPath:     "/monitoring",
			RedisConnOpt: redisOpt,
		})
		r.Mount("/monitoring", mon)
	}

	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
