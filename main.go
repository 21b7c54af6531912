package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"todo-project/task-manager/config"
	"todo-project/task-manager/db"
	"todo-project/task-manager/handlers"
	"todo-project/task-manager/logging"
	"todo-project/task-manager/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting task-manager service...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_SKIPPED, Description: No .env file loaded, using environment and defaults: %v", err)
	}
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := db.Connect(ctx, cfg.DatabaseURI)
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: %v", err)
	}
	defer client.Disconnect(context.Background())
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", cfg.DatabaseURI)

	database := client.Database(cfg.DatabaseName)
	if err := db.EnsureCollections(ctx, database); err != nil {
		logging.Logger.Fatalf("Event ID: DB_BOOTSTRAP_FAILED, Description: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_BOOTSTRAP_DONE, Description: Collections and indexes ensured on database %s.", cfg.DatabaseName)

	healthBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "MongoHealthCB",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	taskService := services.NewTaskService(database)
	projectService := services.NewProjectService(database)
	reportService := services.NewReportService(database)

	taskHandler := handlers.NewTaskHandler(taskService)
	projectHandler := handlers.NewProjectHandler(projectService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(healthBreaker, func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	})

	r := mux.NewRouter()

	// Task routes. The fixed paths are registered before the {id} routes so
	// mux does not swallow them as path parameters.
	r.HandleFunc("/api/task/filter", taskHandler.FilterTasksByStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/task/search", taskHandler.SearchTasksByName).Methods(http.MethodGet)
	r.HandleFunc("/api/task/sort", taskHandler.GetTasksSortedByDate).Methods(http.MethodGet)
	r.HandleFunc("/api/task/mark/{id}", taskHandler.MarkTaskStatus).Methods(http.MethodPatch)
	r.HandleFunc("/api/task/{id}", taskHandler.UpdateTask).Methods(http.MethodPatch)
	r.HandleFunc("/api/task/{id}", taskHandler.DeleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/api/task", taskHandler.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/api/task", taskHandler.GetAllTasks).Methods(http.MethodGet)

	// Project routes.
	r.HandleFunc("/api/project/assignTask", projectHandler.AssignTask).Methods(http.MethodPost)
	r.HandleFunc("/api/project/filter", projectHandler.FilterTasksByProjectName).Methods(http.MethodGet)
	r.HandleFunc("/api/project/sort", projectHandler.GetProjectsSortedByDate).Methods(http.MethodGet)
	r.HandleFunc("/api/project/{id}", projectHandler.UpdateProject).Methods(http.MethodPatch)
	r.HandleFunc("/api/project/{id}", projectHandler.DeleteProject).Methods(http.MethodDelete)
	r.HandleFunc("/api/project", projectHandler.CreateProject).Methods(http.MethodPost)
	r.HandleFunc("/api/project", projectHandler.GetAllProjects).Methods(http.MethodGet)

	// Reports and health.
	r.HandleFunc("/api/report/projects-due-today", reportHandler.ProjectsDueToday).Methods(http.MethodGet)
	r.HandleFunc("/api/report/tasks-due-today", reportHandler.TasksDueToday).Methods(http.MethodGet)
	r.HandleFunc("/api/health", healthHandler.Health).Methods(http.MethodGet)

	corsRouter := enableCORS(r)

	serverAddress := fmt.Sprintf(":%s", cfg.Port)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
