package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"

	"github.com/lawconnect/lawconnect-api/api"
	"github.com/lawconnect/lawconnect-api/api/scheduler"
	"github.com/lawconnect/lawconnect-api/config"
	"github.com/lawconnect/lawconnect-api/databases"
	"github.com/lawconnect/lawconnect-api/gemini"
	"github.com/lawconnect/lawconnect-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	AI       gemini.Client
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	u := User{DB: databases.NewUserDatabase(a.dbHelper), LDB: databases.NewLawyerProfileDatabase(a.dbHelper)}
	q := Question{DB: databases.NewQuestionDatabase(a.dbHelper), ADB: databases.NewAnswerDatabase(a.dbHelper), QLDB: databases.NewQuestionLikeDatabase(a.dbHelper), AI: a.AI}
	ans := Answer{DB: databases.NewAnswerDatabase(a.dbHelper), QDB: databases.NewQuestionDatabase(a.dbHelper), ALDB: databases.NewAnswerLikeDatabase(a.dbHelper)}
	preview := AIPreview{AI: a.AI}
	law := Lawyer{DB: databases.NewLawyerProfileDatabase(a.dbHelper), UDB: databases.NewUserDatabase(a.dbHelper)}
	rating := Rating{DB: databases.NewRatingDatabase(a.dbHelper), LDB: databases.NewLawyerProfileDatabase(a.dbHelper)}
	appt := Appointment{DB: databases.NewAppointmentDatabase(a.dbHelper), UDB: databases.NewUserDatabase(a.dbHelper), LDB: databases.NewLawyerProfileDatabase(a.dbHelper)}
	follow := Follow{DB: databases.NewFollowDatabase(a.dbHelper), UDB: databases.NewUserDatabase(a.dbHelper)}
	blog := Blog{DB: databases.NewBlogPostDatabase(a.dbHelper), QDB: databases.NewQuestionDatabase(a.dbHelper), ADB: databases.NewAnswerDatabase(a.dbHelper), AI: a.AI}
	admin := Admin{UDB: databases.NewUserDatabase(a.dbHelper), BDB: databases.NewBlogPostDatabase(a.dbHelper), LDB: databases.NewLawyerProfileDatabase(a.dbHelper)}
	cloudinaryHandler := CloudinaryHandler{}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/signup", http.HandlerFunc(u.SignupHandler)).Methods("POST")
	apiCreate.Handle("/auth/check-email", http.HandlerFunc(u.CheckEmailHandler)).Methods("POST")
	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/ai/preview", http.HandlerFunc(preview.PreviewHandler)).Methods("POST")

	apiCreate.Handle("/questions", http.HandlerFunc(q.QuestionsHandler)).Methods("GET")
	apiCreate.Handle("/questions", api.Middleware(http.HandlerFunc(q.CreateQuestionHandler))).Methods("POST")
	apiCreate.Handle("/questions/{question_id}", http.HandlerFunc(q.QuestionByIDHandler)).Methods("GET")
	apiCreate.Handle("/questions/{question_id}/like", api.Middleware(http.HandlerFunc(q.LikeQuestionHandler))).Methods("POST")
	apiCreate.Handle("/questions/{question_id}/like", api.Middleware(http.HandlerFunc(q.UnlikeQuestionHandler))).Methods("DELETE")
	apiCreate.Handle("/questions/{question_id}/answers", http.HandlerFunc(ans.AnswersByQuestionIDHandler)).Methods("GET")
	apiCreate.Handle("/questions/{question_id}/answers", api.Middleware(http.HandlerFunc(ans.CreateAnswerHandler))).Methods("POST")

	apiCreate.Handle("/answers/{answer_id}/best", api.Middleware(http.HandlerFunc(ans.MarkBestAnswerHandler))).Methods("PUT")
	apiCreate.Handle("/answers/{answer_id}/like", api.Middleware(http.HandlerFunc(ans.LikeAnswerHandler))).Methods("POST")
	apiCreate.Handle("/answers/{answer_id}/like", api.Middleware(http.HandlerFunc(ans.UnlikeAnswerHandler))).Methods("DELETE")

	apiCreate.Handle("/lawyers", http.HandlerFunc(law.LawyersHandler)).Methods("GET")
	apiCreate.Handle("/lawyers/{lawyer_id}", http.HandlerFunc(law.LawyerByIDHandler)).Methods("GET")
	apiCreate.Handle("/lawyers/{lawyer_id}", api.Middleware(http.HandlerFunc(law.UpdateLawyerProfileHandler))).Methods("PUT")
	apiCreate.Handle("/lawyers/{lawyer_id}/ratings", http.HandlerFunc(rating.RatingsByLawyerIDHandler)).Methods("GET")
	apiCreate.Handle("/lawyers/{lawyer_id}/ratings", api.Middleware(http.HandlerFunc(rating.CreateRatingHandler))).Methods("POST")

	apiCreate.Handle("/appointments", api.Middleware(http.HandlerFunc(appt.AppointmentsHandler))).Methods("GET")
	apiCreate.Handle("/appointments", api.Middleware(http.HandlerFunc(appt.CreateAppointmentHandler))).Methods("POST")
	apiCreate.Handle("/appointments/{appointment_id}/status", api.Middleware(http.HandlerFunc(appt.UpdateAppointmentStatusHandler))).Methods("PUT")
	apiCreate.Handle("/appointments/{appointment_id}/checkout", api.Middleware(http.HandlerFunc(appt.CreateCheckoutSessionHandler))).Methods("POST")

	apiCreate.Handle("/users/{user_id}", api.Middleware(http.HandlerFunc(u.UserHandler))).Methods("GET")
	apiCreate.Handle("/users/{user_id}/follow", api.Middleware(http.HandlerFunc(follow.FollowUserHandler))).Methods("POST")
	apiCreate.Handle("/users/{user_id}/follow", api.Middleware(http.HandlerFunc(follow.UnfollowUserHandler))).Methods("DELETE")
	apiCreate.Handle("/users/{user_id}/followers", http.HandlerFunc(follow.FollowersHandler)).Methods("GET")
	apiCreate.Handle("/users/{user_id}/following", http.HandlerFunc(follow.FollowingHandler)).Methods("GET")

	apiCreate.Handle("/blog", http.HandlerFunc(blog.BlogPostsHandler)).Methods("GET")
	apiCreate.Handle("/blog", api.Middleware(http.HandlerFunc(blog.CreateBlogDraftHandler))).Methods("POST")
	apiCreate.Handle("/blog/{slug}", http.HandlerFunc(blog.BlogPostBySlugHandler)).Methods("GET")

	apiCreate.Handle("/admin/login", http.HandlerFunc(admin.LoginHandler)).Methods("POST")
	apiCreate.Handle("/admin/blog/{post_id}/status", api.AdminMiddleware(http.HandlerFunc(admin.UpdateBlogStatusHandler))).Methods("PUT")
	apiCreate.Handle("/admin/lawyers/{lawyer_id}/verify", api.AdminMiddleware(http.HandlerFunc(admin.VerifyLawyerHandler))).Methods("PUT")
	apiCreate.Handle("/admin/users/{user_id}/role", api.AdminMiddleware(http.HandlerFunc(admin.UpdateUserRoleHandler))).Methods("PUT")

	apiCreate.Handle("/generate-signature", api.Middleware(http.HandlerFunc(cloudinaryHandler.GenerateSignature))).Methods("POST")

	apiCreate.Handle("/success", http.HandlerFunc(appt.handleSuccessRedirect)).Methods("GET")
	apiCreate.Handle("/cancel", http.HandlerFunc(appt.handleCancelRedirect)).Methods("GET")

	r.Use(api.LoggingMiddleware)
	r.Use(api.TimeoutMiddleware(30 * time.Second))
	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("lawconnect-api has connected to the database")

	a.AI, err = gemini.NewClient(gemini.Config{APIKey: a.Config.GeminiAPIKey})
	if err != nil {
		zap.S().With(err).Error("failed to create gemini client")
		return err
	}

	// stripe is optional; checkout endpoints fail per-request without it
	stripeKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeKey == "" {
		zap.S().Warn("stripe secret key is not set, checkout is disabled")
	}
	stripe.Key = stripeKey

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// StartScheduler wires the nightly jobs against the live database and
// starts them. Must be called after Initialize.
func (a *App) StartScheduler() *scheduler.Scheduler {
	s := scheduler.NewScheduler(
		databases.NewRatingDatabase(a.dbHelper),
		databases.NewLawyerProfileDatabase(a.dbHelper),
	)
	s.Start()
	return s
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
