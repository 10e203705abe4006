// internal/app/bootstrap/routes.go
package bootstrap

import (
	"encoding/hex"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"

	candidatesfeature "github.com/talentgate/hirehub/internal/app/features/candidates"
	eventsfeature "github.com/talentgate/hirehub/internal/app/features/events"
	feedbackfeature "github.com/talentgate/hirehub/internal/app/features/feedback"
	healthfeature "github.com/talentgate/hirehub/internal/app/features/health"
	invoicesfeature "github.com/talentgate/hirehub/internal/app/features/invoices"
	jobsfeature "github.com/talentgate/hirehub/internal/app/features/jobs"
	organizationsfeature "github.com/talentgate/hirehub/internal/app/features/organizations"
	uploadsfeature "github.com/talentgate/hirehub/internal/app/features/uploads"
	usersfeature "github.com/talentgate/hirehub/internal/app/features/users"
	"github.com/talentgate/hirehub/internal/app/interview"
	"github.com/talentgate/hirehub/internal/app/lifecycle"
	candidatestore "github.com/talentgate/hirehub/internal/app/store/candidates"
	eventstore "github.com/talentgate/hirehub/internal/app/store/events"
	feedbackstore "github.com/talentgate/hirehub/internal/app/store/feedback"
	invoicestore "github.com/talentgate/hirehub/internal/app/store/invoices"
	jobstore "github.com/talentgate/hirehub/internal/app/store/jobs"
	organizationstore "github.com/talentgate/hirehub/internal/app/store/organizations"
	uploadstore "github.com/talentgate/hirehub/internal/app/store/uploads"
	userstore "github.com/talentgate/hirehub/internal/app/store/users"
	"github.com/talentgate/hirehub/internal/app/system/auth"
	"github.com/talentgate/hirehub/internal/app/system/mailer"
	"github.com/talentgate/hirehub/internal/app/system/pdfextract"
)

// devSessionKey is the shipped default; a fresh random key replaces it
// outside production so sessions are never signed with a public value.
const devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. HireHub builds the stores, the
// two engines, and the shared mailer here, then mounts the feature
// routers under their base paths.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	sessionKey := appCfg.SessionKey
	if sessionKey == devSessionKey && !secure {
		sessionKey = hex.EncodeToString(securecookie.GenerateRandomKey(32))
		logger.Warn("session_key not configured; using a per-boot random key")
	}
	sessionMgr, err := auth.NewSessionManager(sessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// One mailer instance serves every notification path.
	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)

	// Stores.
	db := deps.MongoDatabase
	candidates := candidatestore.New(db)
	events := eventstore.New(db)
	feedbacks := feedbackstore.New(db)
	users := userstore.New(db)
	organizations := organizationstore.New(db)
	jobPosts := jobstore.New(db)
	invoices := invoicestore.New(db)
	uploads := uploadstore.New(db)

	// Engines.
	lifecycleEngine := lifecycle.New(candidates, users, mail, lifecycle.Config{
		ReapplyCooldown: appCfg.ReapplyCooldown,
	}, logger)
	interviewEngine := interview.New(events, feedbacks, candidates, mail, interview.Config{
		FeedbackBaseURL: appCfg.BaseURL,
	}, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, mail, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	candidatesHandler := candidatesfeature.NewHandler(lifecycleEngine, candidates, users, logger)
	r.Mount("/candidates", candidatesfeature.Routes(candidatesHandler, sessionMgr))

	eventsHandler := eventsfeature.NewHandler(interviewEngine, events, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler, sessionMgr))

	feedbackHandler := feedbackfeature.NewHandler(interviewEngine, logger)
	r.Mount("/feedback", feedbackfeature.Routes(feedbackHandler))

	jobsHandler := jobsfeature.NewHandler(jobPosts, logger)
	r.Mount("/jobs", jobsfeature.Routes(jobsHandler, sessionMgr))

	invoicesHandler := invoicesfeature.NewHandler(invoices, pdfextract.New(), mail, logger)
	r.Mount("/invoices", invoicesfeature.Routes(invoicesHandler, sessionMgr))

	usersHandler := usersfeature.NewHandler(users, sessionMgr, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, sessionMgr))

	organizationsHandler := organizationsfeature.NewHandler(organizations, logger)
	r.Mount("/organizations", organizationsfeature.Routes(organizationsHandler, sessionMgr))

	uploadsHandler := uploadsfeature.NewHandler(uploads, appCfg.UploadDir, logger)
	r.Mount("/uploads", uploadsfeature.Routes(uploadsHandler))

	return r, nil
}
