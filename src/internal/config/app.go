package config

import (
	"tour-service/src/internal/delivery/http"
	"tour-service/src/internal/delivery/http/middleware"
	"tour-service/src/internal/delivery/http/route"
	"tour-service/src/internal/gateway/cache"
	"tour-service/src/internal/gateway/messaging"
	"tour-service/src/internal/gateway/storage"
	"tour-service/src/internal/model"
	"tour-service/src/internal/repository"
	"tour-service/src/internal/usecase"
	"tour-service/src/pkg/databases/mysql"
	"tour-service/src/pkg/kafka"
	"tour-service/src/pkg/log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	DB       mysql.DBInterface
	App      *fiber.App
	Log      log.Log
	Validate *validator.Validate
	Config   *viper.Viper
	Producer kafka.Producer
	Redis    redis.UniversalClient
	Uploader storage.Uploader
}

func NotifyPolicies(config *viper.Viper) map[model.NotificationKind]usecase.NotifyPolicy {
	policies := make(map[model.NotificationKind]usecase.NotifyPolicy)
	for _, kind := range model.NotificationKinds {
		if value := config.GetString("notification.policy." + string(kind)); value != "" {
			policies[kind] = usecase.NotifyPolicy(value)
		}
	}
	return policies
}

func Bootstrap(config *BootstrapConfig) {
	// setup repositories
	bookingRepository := repository.NewBookingRepository(config.DB)
	paymentRepository := repository.NewPaymentRepository(config.DB)
	orderRepository := repository.NewOrderRepository(config.DB)
	reviewRepository := repository.NewReviewRepository(config.DB)
	productRepository := repository.NewProductRepository(config.DB)
	userRepository := repository.NewUserRepository(config.DB)

	// setup gateways
	notificationProducer := messaging.NewNotificationProducer(config.Producer, config.Config.GetString("notification.topic"), config.Log)
	dispatcher := usecase.NewNotificationDispatcher(
		notificationProducer,
		config.Log,
		config.Config.GetStringSlice("notification.admin_emails"),
		NotifyPolicies(config.Config),
	)
	var ratingCache usecase.RatingCache
	if config.Redis != nil {
		ratingCache = cache.NewRatingCache(config.Redis, config.Config.GetDuration("cache.rating_ttl"))
	}

	// setup use cases
	paymentUseCase := usecase.NewPaymentUseCase(
		config.Log,
		config.Validate,
		config.DB,
		bookingRepository,
		paymentRepository,
		productRepository,
		userRepository,
		config.Uploader,
		dispatcher,
		usecase.PaymentSettings{
			Tax:           config.Config.GetFloat64("payment.tax"),
			ProofMaxBytes: config.Config.GetInt("payment.proof_max_bytes"),
		},
	)
	bookingUseCase := usecase.NewBookingUseCase(
		config.Log,
		config.Validate,
		config.DB,
		bookingRepository,
		paymentRepository,
		productRepository,
		userRepository,
		dispatcher,
		paymentUseCase,
	)
	adjudicationUseCase := usecase.NewAdjudicationUseCase(
		config.Log,
		config.Validate,
		config.DB,
		bookingRepository,
		paymentRepository,
		orderRepository,
		productRepository,
		userRepository,
		dispatcher,
	)
	orderUseCase := usecase.NewOrderUseCase(
		config.Log,
		config.Validate,
		config.DB,
		orderRepository,
		reviewRepository,
		productRepository,
		dispatcher,
		ratingCache,
	)

	// setup controller
	bookingController := http.NewBookingController(bookingUseCase, config.Log)
	paymentController := http.NewPaymentController(paymentUseCase, config.Log)
	orderController := http.NewOrderController(orderUseCase, config.Log)
	adminController := http.NewAdminController(bookingUseCase, paymentUseCase, adjudicationUseCase, orderUseCase, config.Log)

	// setup middleware
	authMiddleware := middleware.VerifyBearer(config.Config)
	routeConfig := route.RouteConfig{
		App:               config.App,
		BookingController: bookingController,
		PaymentController: paymentController,
		OrderController:   orderController,
		AdminController:   adminController,
		AuthMiddleware:    authMiddleware,
	}
	routeConfig.Setup()
}
