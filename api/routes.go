package api

import (
	"github.com/gorilla/mux"

	"github.com/talentflow/talentflow/internal/config"
	"github.com/talentflow/talentflow/pkg/repository"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, store repository.Store) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Create handlers
	systemHandler := &SystemHandler{}
	jobsHandler := NewJobsHandler(store)
	candidatesHandler := NewCandidatesHandler(store, store)
	assessmentsHandler := NewAssessmentsHandler(store, store)

	// System endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	// The store API sits behind the fault injector, which simulates the
	// latency and write failures of an unreliable transport.
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(NewFaultInjector(cfg.Faults).Middleware)

	// Jobs endpoints
	apiRouter.HandleFunc("/jobs", jobsHandler.ListJobs).Methods("GET")
	apiRouter.HandleFunc("/jobs", jobsHandler.CreateJob).Methods("POST")
	apiRouter.HandleFunc("/jobs/{id}", jobsHandler.GetJob).Methods("GET")
	apiRouter.HandleFunc("/jobs/{id}", jobsHandler.PatchJob).Methods("PATCH")
	apiRouter.HandleFunc("/jobs/{id}", jobsHandler.DeleteJob).Methods("DELETE")
	apiRouter.HandleFunc("/jobs/{id}/reorder", jobsHandler.ReorderJob).Methods("PATCH")

	// Candidates endpoints
	apiRouter.HandleFunc("/candidates", candidatesHandler.ListCandidates).Methods("GET")
	apiRouter.HandleFunc("/candidates", candidatesHandler.CreateCandidate).Methods("POST")
	apiRouter.HandleFunc("/candidates/{id}", candidatesHandler.GetCandidate).Methods("GET")
	apiRouter.HandleFunc("/candidates/{id}", candidatesHandler.PatchCandidate).Methods("PATCH")
	apiRouter.HandleFunc("/candidates/{id}/move", candidatesHandler.MoveCandidate).Methods("PATCH")
	apiRouter.HandleFunc("/candidates/{id}/timeline", candidatesHandler.GetTimeline).Methods("GET")
	apiRouter.HandleFunc("/candidates/{id}/notes", candidatesHandler.AddNote).Methods("POST")

	// Assessments endpoints
	apiRouter.HandleFunc("/assessments/{jobId}", assessmentsHandler.GetAssessment).Methods("GET")
	apiRouter.HandleFunc("/assessments/{jobId}", assessmentsHandler.PutAssessment).Methods("PUT")
	apiRouter.HandleFunc("/assessments/{jobId}/submit", assessmentsHandler.SubmitResponse).Methods("POST")
	apiRouter.HandleFunc("/assessments/{jobId}/responses", assessmentsHandler.ListResponses).Methods("GET")

	return r
}
