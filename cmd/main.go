package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipehub/config"
	"recipehub/controllers"
	"recipehub/routes"
	"recipehub/services"
	"recipehub/stores"
	"recipehub/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := utils.NewLogger(cfg.Log)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("recipehub stopped")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDB(cfg.Database, log)
	if err != nil {
		return err
	}

	// AWS is optional: S3 storage, SES mail and Rekognition are enabled
	// only when their settings are present.
	var awsCfg *aws.Config
	if cfg.AWS.Region != "" {
		c, err := utils.LoadAWSConfig(ctx, cfg.AWS.Region)
		if err != nil {
			return err
		}
		awsCfg = &c
	}

	storage, err := newStorage(cfg.Storage, awsCfg)
	if err != nil {
		return err
	}

	var mailer utils.Mailer = utils.LogMailer{Log: log}
	if awsCfg != nil && cfg.AWS.SESEmail != "" {
		mailer = utils.NewSESMailer(*awsCfg, cfg.AWS.SESEmail)
	}

	hub := services.NewRealtimeHub()
	notifiers := services.Notifiers{hub}
	if cfg.RabbitMQ.URL != "" {
		pub, err := services.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.WithError(err).Warn("rabbitmq disabled")
		} else {
			defer pub.Close()
			notifiers = append(notifiers, pub)
		}
	}

	spoon := services.NewSpoonacularService(cfg.Spoonacular.BaseURL, cfg.Spoonacular.APIKey)
	mealdb := services.NewMealDBService(cfg.MealDB.BaseURL)
	recipeSvc := services.NewRecipeService(spoon, mealdb, db, log)
	if awsCfg != nil {
		recipeSvc.WithRecognizer(services.NewRekognitionService(*awsCfg))
	}

	dailyLogs := services.NewDailyLogService(db, notifiers)

	router := routes.SetupRouter(routes.Deps{
		Log:         log,
		JWTSecret:   cfg.Auth.JWTSecret,
		CORSOrigins: cfg.Server.CORSOrigins,
		Auth:        controllers.NewAuthController(services.NewAuthService(db, mailer, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.ResetTTL)),
		Recipes:     controllers.NewRecipeController(recipeSvc),
		Planner:     controllers.NewPlannerController(services.NewPlannerService(spoon, log)),
		Goals:       controllers.NewGoalController(services.NewGoalService(db)),
		DailyLogs:   controllers.NewDailyLogController(dailyLogs),
		Meals:       controllers.NewMealController(services.NewMealService(db, dailyLogs)),
		Activity:    controllers.NewActivityLogController(services.NewActivityLogService(db, dailyLogs)),
		Schedules:   controllers.NewScheduleController(services.NewScheduleService(db, recipeSvc)),
		Ratings:     controllers.NewRatingController(services.NewRatingService(db)),
		Shopping:    controllers.NewShoppingController(services.NewShoppingService(db, recipeSvc)),
		Dashboard:   controllers.NewDashboardController(services.NewDashboardService(db, dailyLogs)),
		Stores:      controllers.NewStoreController(stores.NewRegistry(storage, cfg.Storage.Prefix)),
		Realtime:    controllers.NewRealtimeController(hub),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newStorage(cfg config.Storage, awsCfg *aws.Config) (stores.Storage, error) {
	switch cfg.Driver {
	case "s3":
		if awsCfg == nil || cfg.Bucket == "" {
			return nil, errors.New("s3 storage needs aws.region and storage.bucket")
		}
		return stores.NewS3Storage(*awsCfg, cfg.Bucket, ""), nil
	case "file", "":
		return stores.NewFileStorage(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
