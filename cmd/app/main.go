package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/carrierapi"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/packagerepo"
	"fulfillment/internal/adapters/out/postgres/selectionrepo"
	"fulfillment/internal/jobs"
)

func main() {
	configs := getConfigs()

	gormDB := mustOpenDatabase(configs)
	gateway := carrierapi.NewGateway(configs.CarrierAPIURL, configs.CarrierAPIKey)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app := cmd.NewCompositionRoot(configs, gormDB, gateway, logger)

	jobManager := jobs.NewJobManager(app.CreateRefreshTrackingCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:      goDotEnvVariable("HTTP_PORT"),
		DBHost:        goDotEnvVariable("DB_HOST"),
		DBPort:        goDotEnvVariable("DB_PORT"),
		DBUser:        goDotEnvVariable("DB_USER"),
		DBPassword:    goDotEnvVariable("DB_PASSWORD"),
		DBName:        goDotEnvVariable("DB_NAME"),
		DBSslMode:     goDotEnvVariable("DB_SSLMODE"),
		CarrierAPIURL: goDotEnvVariable("CARRIER_API_URL"),
		CarrierAPIKey: goDotEnvVariable("CARRIER_API_KEY"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	if err := createDbIfNotExists(configs); err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	// The connection runs over lib/pq so repositories can inspect postgres
	// error codes.
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&packagerepo.PackageDTO{},
		&packagerepo.ContentDTO{},
		&selectionrepo.SelectionDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

// createDbIfNotExists connects to the maintenance database and creates the
// application database when it is missing. CREATE DATABASE cannot run inside
// a transaction, so this goes through database/sql directly.
func createDbIfNotExists(configs cmd.Config) error {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBSslMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open maintenance connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	var exists bool
	err = db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)",
		configs.DBName,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err = db.Exec(fmt.Sprintf("CREATE DATABASE %q", configs.DBName)); err != nil {
		return fmt.Errorf("create database %s: %w", configs.DBName, err)
	}
	return nil
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateSavePackagesCommandHandler(),
		app.CreateAssignPackageCarrierCommandHandler(),
		app.CreateGenerateLabelCommandHandler(),
		app.CreateGenerateLabelsCommandHandler(),
		app.CreateSelectOrderCarrierCommandHandler(),
		app.CreateSetLineCarriersCommandHandler(),
		app.CreateCreateDispatchPlanCommandHandler(),
		app.CreateGetPackagesQueryHandler(),
		app.CreatePreviewPackagesQueryHandler(),
		app.CreateGetLineCarriersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
