package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	categoryusecases "helpdesk/internal/application/category/usecases"
	"helpdesk/internal/application/inbound"
	appnotification "helpdesk/internal/application/notification"
	notificationusecases "helpdesk/internal/application/notification/usecases"
	projectusecases "helpdesk/internal/application/project/usecases"
	ticketusecases "helpdesk/internal/application/ticket/usecases"
	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/infrastructure/email"
	"helpdesk/internal/infrastructure/identity"
	"helpdesk/internal/infrastructure/llm"
	"helpdesk/internal/infrastructure/mailbox"
	"helpdesk/internal/infrastructure/ratelimit"
	"helpdesk/internal/infrastructure/repository"
	"helpdesk/internal/infrastructure/storage"
	categoryhandler "helpdesk/internal/interfaces/http/handlers/category"
	inboundhandler "helpdesk/internal/interfaces/http/handlers/inbound"
	notificationhandler "helpdesk/internal/interfaces/http/handlers/notification"
	projecthandler "helpdesk/internal/interfaces/http/handlers/project"
	tickethandler "helpdesk/internal/interfaces/http/handlers/ticket"
	"helpdesk/internal/interfaces/http/middleware"
	"helpdesk/internal/shared/db"
	"helpdesk/internal/shared/logger"
)

const (
	ingestRateLimit  = 6
	ingestRateWindow = time.Minute
)

// Router wires repositories, gateways and use cases into the HTTP surface.
type Router struct {
	engine              *gin.Engine
	cfg                 *config.Config
	limiter             *ratelimit.Limiter
	ticketHandler       *tickethandler.Handler
	categoryHandler     *categoryhandler.Handler
	projectHandler      *projecthandler.Handler
	notificationHandler *notificationhandler.Handler
	inboundHandler      *inboundhandler.Handler

	processInbox *inbound.ProcessInboxUseCase
}

func NewRouter(database *gorm.DB, cfg *config.Config, dispatcher *email.Dispatcher, limiter *ratelimit.Limiter, log logger.Interface) *Router {
	engine := gin.New()

	ticketRepo := repository.NewTicketRepository(database)
	commentRepo := repository.NewCommentRepository(database)
	assignmentRepo := repository.NewAssignmentRepository(database)
	statusLogRepo := repository.NewStatusLogRepository(database)
	followUpRepo := repository.NewFollowUpRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	projectRepo := repository.NewProjectRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	recordRepo := repository.NewProcessedMessageRepository(database)

	txManager := db.NewTransactionManager(database)

	identityClient := identity.NewClient(&cfg.Identity)
	mailboxClient := mailbox.NewClient(&cfg.Mailbox)
	llmClient := llm.NewClient(&cfg.LLM, log)
	storageClient := storage.NewClient(&cfg.Storage)

	notifier := appnotification.NewNotifier(
		notificationRepo,
		&directoryAdapter{client: identityClient},
		&mailerAdapter{dispatcher: dispatcher, log: log},
		log,
	)

	createTicketUC := ticketusecases.NewCreateTicketUseCase(ticketRepo, categoryRepo, assignmentRepo, notifier, txManager, log)
	updateTicketUC := ticketusecases.NewUpdateTicketUseCase(ticketRepo, categoryRepo, log)
	changeStatusUC := ticketusecases.NewChangeStatusUseCase(ticketRepo, statusLogRepo, followUpRepo, notifier, txManager, log)
	assignTicketUC := ticketusecases.NewAssignTicketUseCase(ticketRepo, assignmentRepo, notifier, txManager, log)
	addCommentUC := ticketusecases.NewAddCommentUseCase(ticketRepo, commentRepo, followUpRepo, notifier, log)
	getTicketUC := ticketusecases.NewGetTicketUseCase(ticketRepo, commentRepo, assignmentRepo, statusLogRepo, followUpRepo)
	listTicketsUC := ticketusecases.NewListTicketsUseCase(ticketRepo)
	ticketStatsUC := ticketusecases.NewTicketStatsUseCase(ticketRepo)
	followTicketUC := ticketusecases.NewFollowTicketUseCase(ticketRepo, followUpRepo, log)
	deleteTicketUC := ticketusecases.NewDeleteTicketUseCase(ticketRepo, commentRepo, assignmentRepo, statusLogRepo, followUpRepo, txManager, log)
	attachFileUC := ticketusecases.NewAttachFileUseCase(ticketRepo, commentRepo, storageClient, log)

	refiner := inbound.NewRefiner(llmClient, &cfg.LLM, log)
	pipeline := inbound.NewPipeline(
		recordRepo,
		ticketRepo,
		commentRepo,
		assignmentRepo,
		categoryRepo,
		&identityGatewayAdapter{client: identityClient},
		refiner,
		notifier,
		txManager,
		&cfg.Ingest,
		log,
	)
	processInboxUC := inbound.NewProcessInboxUseCase(mailboxClient, pipeline, &cfg.Ingest, log)
	reprocessUC := inbound.NewReprocessMessageUseCase(mailboxClient, recordRepo, pipeline, log)
	missingTicketsUC := inbound.NewMissingTicketsUseCase(recordRepo)
	readInboxUC := inbound.NewReadInboxUseCase(mailboxClient, recordRepo)

	return &Router{
		engine:  engine,
		cfg:     cfg,
		limiter: limiter,
		ticketHandler: tickethandler.NewHandler(
			createTicketUC, updateTicketUC, changeStatusUC, assignTicketUC, addCommentUC,
			getTicketUC, listTicketsUC, ticketStatsUC, followTicketUC, deleteTicketUC, attachFileUC,
		),
		categoryHandler:     categoryhandler.NewHandler(categoryusecases.NewManageCategoriesUseCase(categoryRepo, log)),
		projectHandler:      projecthandler.NewHandler(projectusecases.NewManageProjectsUseCase(projectRepo, ticketRepo, log)),
		notificationHandler: notificationhandler.NewHandler(notificationusecases.NewListNotificationsUseCase(notificationRepo), notificationusecases.NewMarkReadUseCase(notificationRepo)),
		inboundHandler:      inboundhandler.NewHandler(processInboxUC, reprocessUC, missingTicketsUC, readInboxUC),
		processInbox:        processInboxUC,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestLogger())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api")
	api.Use(middleware.Auth(&r.cfg.Auth.JWT))
	{
		tickets := api.Group("/tickets")
		{
			tickets.POST("", r.ticketHandler.Create)
			tickets.GET("", r.ticketHandler.List)
			tickets.GET("/stats", r.ticketHandler.Stats)
			tickets.GET("/:id", r.ticketHandler.Get)
			tickets.PUT("/:id", r.ticketHandler.Update)
			tickets.DELETE("/:id", r.ticketHandler.Delete)
			tickets.PUT("/:id/status", r.ticketHandler.ChangeStatus)
			tickets.PUT("/:id/assignee", r.ticketHandler.Assign)
			tickets.GET("/:id/comments", r.ticketHandler.Comments)
			tickets.POST("/:id/comments", r.ticketHandler.AddComment)
			tickets.POST("/:id/followers", r.ticketHandler.Follow)
			tickets.DELETE("/:id/followers", r.ticketHandler.Unfollow)
			tickets.POST("/:id/attachments", r.ticketHandler.Attach)
		}

		categories := api.Group("/categories")
		{
			categories.POST("", r.categoryHandler.Create)
			categories.GET("", r.categoryHandler.List)
			categories.GET("/:id", r.categoryHandler.Get)
			categories.PUT("/:id", r.categoryHandler.Update)
			categories.DELETE("/:id", r.categoryHandler.Delete)
		}

		projects := api.Group("/projects")
		{
			projects.POST("", r.projectHandler.Create)
			projects.GET("", r.projectHandler.List)
			projects.GET("/:id", r.projectHandler.Get)
			projects.PUT("/:id", r.projectHandler.Update)
			projects.DELETE("/:id", r.projectHandler.Delete)
			projects.POST("/:id/archive", r.projectHandler.Archive)
			projects.POST("/:id/members", r.projectHandler.AddMember)
			projects.DELETE("/:id/members/:user_id", r.projectHandler.RemoveMember)
			projects.POST("/:id/tags", r.projectHandler.AddTag)
			projects.DELETE("/:id/tags/:name", r.projectHandler.RemoveTag)
			projects.POST("/:id/tickets", r.projectHandler.LinkTicket)
			projects.DELETE("/:id/tickets/:ticket_id", r.projectHandler.UnlinkTicket)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("", r.notificationHandler.List)
			notifications.PUT("/:id/read", r.notificationHandler.MarkRead)
			notifications.PUT("/read-all", r.notificationHandler.MarkAllRead)
		}

		inboundGroup := api.Group("/inbound")
		{
			inboundGroup.POST("/process", middleware.RateLimit(r.limiter, ingestRateLimit, ingestRateWindow), r.inboundHandler.Process)
			inboundGroup.POST("/reprocess/:message_id", r.inboundHandler.Reprocess)
			inboundGroup.GET("/missing-tickets", r.inboundHandler.MissingTickets)
			inboundGroup.GET("/emails", r.inboundHandler.Emails)
		}
	}
}

// ProcessInboxUseCase exposes the ingestion batch runner for the scheduler.
func (r *Router) ProcessInboxUseCase() *inbound.ProcessInboxUseCase {
	return r.processInbox
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
