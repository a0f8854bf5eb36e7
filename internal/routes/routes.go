package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tahsin0604/harmony-academy-server/internal/auth"
	"github.com/Tahsin0604/harmony-academy-server/internal/catalog"
	"github.com/Tahsin0604/harmony-academy-server/internal/enroll"
	"github.com/Tahsin0604/harmony-academy-server/internal/handlers"
	"github.com/Tahsin0604/harmony-academy-server/internal/middleware"
	"github.com/Tahsin0604/harmony-academy-server/internal/models"
	"github.com/Tahsin0604/harmony-academy-server/internal/payment"
	"github.com/Tahsin0604/harmony-academy-server/internal/repository"
	"github.com/Tahsin0604/harmony-academy-server/internal/stats"
)

// SetupRouter builds the repositories, services and handlers and wires
// every route with its middleware chain.
func SetupRouter(client *mongo.Client, dbName string, tokens *auth.TokenService, gateway payment.Gateway, log zerolog.Logger) *mux.Router {
	users := repository.NewUserRepo(client, dbName)
	classes := repository.NewClassRepo(client, dbName)
	selections := repository.NewSelectionRepo(client, dbName)
	enrollments := repository.NewEnrollmentRepo(client, dbName)
	reviews := repository.NewReviewRepo(client, dbName)
	txn := repository.NewTxn(client)

	engine := catalog.NewEngine(classes, users)
	workflow := enroll.NewWorkflow(selections, enrollments, classes, txn, log)
	aggregator := stats.NewAggregator(classes, selections, enrollments, users)

	tokenHandler := handlers.NewTokenHandler(tokens)
	userHandler := handlers.NewUserHandler(users, log)
	classHandler := handlers.NewClassHandler(engine, classes, log)
	instructorHandler := handlers.NewInstructorHandler(engine)
	selectionHandler := handlers.NewSelectionHandler(workflow, log)
	enrollmentHandler := handlers.NewEnrollmentHandler(workflow, log)
	paymentHandler := handlers.NewPaymentHandler(gateway, log)
	statsHandler := handlers.NewStatsHandler(aggregator)
	reviewHandler := handlers.NewReviewHandler(reviews)

	authMW := middleware.NewAuth(tokens, users, log)
	authed := func(h http.HandlerFunc) http.Handler {
		return authMW.RequireAuth(h)
	}
	roleOnly := func(role models.UserRole, h http.HandlerFunc) http.Handler {
		return authMW.RequireAuth(authMW.RequireRole(role)(h))
	}

	router := mux.NewRouter()

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Harmony Academy server"))
	}).Methods("GET")

	// public
	router.HandleFunc("/jwt", tokenHandler.IssueToken).Methods("POST")
	router.HandleFunc("/users", userHandler.CreateUser).Methods("POST")
	router.HandleFunc("/classes", classHandler.GetClasses).Methods("GET")
	router.HandleFunc("/classes-count", classHandler.GetClassesCount).Methods("GET")
	router.HandleFunc("/instructors", instructorHandler.GetInstructors).Methods("GET")
	router.HandleFunc("/instructors-count", instructorHandler.GetInstructorsCount).Methods("GET")
	router.HandleFunc("/instructors/{id}", instructorHandler.GetInstructorByID).Methods("GET")
	router.HandleFunc("/reviews", reviewHandler.GetReviews).Methods("GET")

	// any signed-in user
	router.Handle("/users/role/{email}", authed(userHandler.GetUserRole)).Methods("GET")

	// student
	router.Handle("/selectedClasses", roleOnly(models.RoleStudent, selectionHandler.SelectClass)).Methods("POST")
	router.Handle("/selectedClasses", roleOnly(models.RoleStudent, selectionHandler.GetSelections)).Methods("GET")
	router.Handle("/selectedClasses/availability", roleOnly(models.RoleStudent, selectionHandler.CheckAvailability)).Methods("GET")
	router.Handle("/selectedClasses/{id}", roleOnly(models.RoleStudent, selectionHandler.Unselect)).Methods("DELETE")
	router.Handle("/enrolledClasses", roleOnly(models.RoleStudent, enrollmentHandler.GetEnrolledClasses)).Methods("GET")
	router.Handle("/create-payment-intent", roleOnly(models.RoleStudent, paymentHandler.CreatePaymentIntent)).Methods("POST")
	router.Handle("/payment", roleOnly(models.RoleStudent, enrollmentHandler.CompletePayment)).Methods("POST")
	router.Handle("/stats/student", roleOnly(models.RoleStudent, statsHandler.GetStudentStats)).Methods("GET")

	// instructor
	router.Handle("/classes", roleOnly(models.RoleInstructor, classHandler.CreateClass)).Methods("POST")
	router.Handle("/classes/mine", roleOnly(models.RoleInstructor, classHandler.GetMyClasses)).Methods("GET")
	router.Handle("/stats/instructor", roleOnly(models.RoleInstructor, statsHandler.GetInstructorStats)).Methods("GET")

	// admin
	router.Handle("/users", roleOnly(models.RoleAdmin, userHandler.GetUsers)).Methods("GET")
	router.Handle("/users/role/{id}", roleOnly(models.RoleAdmin, userHandler.SetUserRole)).Methods("PATCH")
	router.Handle("/classes/all", roleOnly(models.RoleAdmin, classHandler.GetAllClasses)).Methods("GET")
	router.Handle("/classes/{id}/status", roleOnly(models.RoleAdmin, classHandler.UpdateClassStatus)).Methods("PATCH")
	router.Handle("/classes/{id}/feedback", roleOnly(models.RoleAdmin, classHandler.UpdateClassFeedback)).Methods("PATCH")
	router.Handle("/stats/admin", roleOnly(models.RoleAdmin, statsHandler.GetAdminStats)).Methods("GET")

	return router
}
