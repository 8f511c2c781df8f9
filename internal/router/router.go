package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/craftify/backend/internal/handlers"
	"github.com/craftify/backend/internal/middleware"
	"github.com/craftify/backend/internal/models"
	"github.com/craftify/backend/internal/repositories"
	"github.com/craftify/backend/internal/services"
	"github.com/craftify/backend/pkg/config"
	"github.com/craftify/backend/pkg/functions"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes migrates the relational schema, wires repositories into
// services and handlers, and registers all application routes.
func SetupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	pgdb *gorm.DB,
	mgClient *mongo.Client,
	firebaseAuthClient *auth.Client,
	executor functions.Executor,
	logger *zap.Logger,
) error {
	if err := pgdb.AutoMigrate(
		&models.User{},
		&models.Like{},
		&models.Save{},
		&models.ItemLike{},
		&models.Comment{},
		&models.Feedback{},
		&models.CommentReply{},
		&models.FeedbackReply{},
		&models.Notification{},
		&models.Ping{},
		&models.SupportEdge{},
	); err != nil {
		return err
	}
	// The community space shares the Notification struct but lives in its
	// own table, so it gets its own migration pass.
	if err := pgdb.Table(models.SpaceCommunity.Table()).AutoMigrate(&models.Notification{}); err != nil {
		return err
	}
	logger.Info("postgres migrations completed")

	// Health check, always accessible
	e.GET("/health", handlers.HealthCheck)

	mongoDB := mgClient.Database(cfg.MongoDatabase)

	userRepo := repositories.NewPostgresUserRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	saveRepo := repositories.NewPostgresSaveRepository(pgdb)
	itemLikeRepo := repositories.NewPostgresItemLikeRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	replyRepo := repositories.NewPostgresReplyRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	pingRepo := repositories.NewPostgresPingRepository(pgdb)
	supportRepo := repositories.NewPostgresSupportRepository(pgdb)
	subjectRepo := repositories.NewMongoSubjectRepository(mongoDB)
	communityRepo := repositories.NewMongoCommunityRepository(mongoDB)

	grants := services.GrantFunctions{
		UserNotifications:      cfg.GrantFnUserNotifications,
		CommunityNotifications: cfg.GrantFnCommunityNotifications,
		Interactions:           cfg.GrantFnInteractions,
		Comments:               cfg.GrantFnComments,
		Feedback:               cfg.GrantFnFeedback,
		Replies:                cfg.GrantFnReplies,
	}

	notificationService := services.NewNotificationService(notificationRepo, userRepo, executor, grants, logger)
	interactionService := services.NewInteractionService(likeRepo, saveRepo, itemLikeRepo, subjectRepo, userRepo, notificationService, executor, grants, logger)
	cascadeService := services.NewCascadeService(commentRepo, replyRepo, itemLikeRepo, likeRepo, saveRepo, subjectRepo, userRepo, notificationService, executor, grants, logger)
	pingService := services.NewPingService(pingRepo, communityRepo, cfg.PingBatchSize, logger)
	supportService := services.NewSupportService(supportRepo, userRepo, logger)
	reconcileService := services.NewReconcileService(supportRepo, userRepo, commentRepo, subjectRepo, logger)
	subjectService := services.NewSubjectService(subjectRepo, userRepo, cascadeService, pingService, logger)

	api := e.Group("/api/v1")
	api.Use(middleware.PrincipalAuthMiddleware(firebaseAuthClient))

	handlers.NewUserHandler(userRepo).RegisterUserRoutes(api)
	handlers.NewSubjectHandler(subjectService, reconcileService, userRepo).RegisterSubjectRoutes(api)
	handlers.NewInteractionHandler(interactionService, userRepo).RegisterInteractionRoutes(api)
	handlers.NewCommentHandler(cascadeService, commentRepo, subjectRepo, userRepo).RegisterCommentRoutes(api)
	handlers.NewNotificationHandler(notificationService, userRepo).RegisterNotificationRoutes(api)
	handlers.NewPingHandler(pingService, userRepo).RegisterPingRoutes(api)
	handlers.NewSupportHandler(supportService, reconcileService, userRepo).RegisterSupportRoutes(api)
	handlers.NewCommunityHandler(communityRepo, userRepo).RegisterCommunityRoutes(api)

	logger.Info("all routes configured")
	return nil
}
