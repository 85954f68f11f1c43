package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"railpass/internal/cache"
	intconfig "railpass/internal/config"
	"railpass/internal/engine"
	router "railpass/internal/http"
	h "railpass/internal/http/handlers"
	"railpass/internal/registry"
	"railpass/internal/repositories"
	"railpass/internal/services"
	"railpass/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env.DBDSN)
	defer intconfig.CloseDB()
	if err := intconfig.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	redisClient := intconfig.ConnectRedis(env.RedisAddr, env.RedisPass)

	cfg := engine.DefaultConfig()
	now := utils.NowUTC()

	coverage := engine.CoverageChecker{Config: cfg}
	eligibility := engine.EligibilityEngine{Config: cfg}
	decision := engine.ReservationDecisionEngine{Config: cfg, Now: now}
	calculator := engine.TravelDayCalculator{}
	orchestrator := engine.ReservationOrchestrator{Decision: decision}
	constraints := engine.ConstraintsService{
		Config:      cfg,
		Coverage:    coverage,
		Eligibility: eligibility,
		Decision:    decision,
		Calculator:  calculator,
	}
	compliance := engine.ComplianceValidator{Eligibility: eligibility, Calculator: calculator}
	selection := engine.PassSelectionEngine{Calculator: calculator}
	executable := engine.ExecutabilityCheckService{
		Config:      cfg,
		Coverage:    coverage,
		Decision:    decision,
		Calculator:  calculator,
		Constraints: constraints,
		Compliance:  compliance,
	}
	regeneration := engine.PlanRegenerationService{
		Config:       cfg,
		Decision:     decision,
		Calculator:   calculator,
		Orchestrator: orchestrator,
	}

	taskRepo := repositories.TaskRepository{DB: db}
	planning := services.PlanningService{Orchestrator: orchestrator, TaskRepo: taskRepo}
	tripPack := services.TripPackService{Compliance: compliance, Executable: executable}

	reg := registry.New(cache.ResultCache{Client: redisClient})
	registry.RegisterAll(reg, registry.Engines{
		Coverage:     coverage,
		Eligibility:  eligibility,
		Decision:     decision,
		Calculator:   calculator,
		Orchestrator: orchestrator,
		Constraints:  constraints,
		Compliance:   compliance,
		Selection:    selection,
		Executable:   executable,
		Regeneration: regeneration,
	})

	reminder, err := services.StartReminderCron(env.ReminderSpec, services.ReminderService{
		TaskRepo: taskRepo,
		Config:   cfg,
	})
	if err != nil {
		log.Fatalf("failed to schedule reminder cron: %v", err)
	}
	defer reminder.Stop()

	r := router.NewRouter(router.Deps{
		Env: env,
		Engines: h.EngineHandlers{
			Coverage:     coverage,
			Eligibility:  eligibility,
			Decision:     decision,
			Calculator:   calculator,
			Constraints:  constraints,
			Compliance:   compliance,
			Selection:    selection,
			Executable:   executable,
			Regeneration: regeneration,
		},
		Tasks:    h.TaskHandlers{Planning: planning},
		Auth:     h.AuthHandlers{Env: env},
		Registry: h.RegistryHandlers{Registry: reg},
		TripPack: h.TripPackHandlers{TripPack: tripPack},
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}
	log.Println("server stopped")
}
