package provider

import (
	"github.com/milktea-next/internal/authz"
	"github.com/milktea-next/internal/cache"
	"github.com/milktea-next/internal/config"
	"github.com/milktea-next/internal/events"
	"github.com/milktea-next/internal/logger"
	"github.com/milktea-next/internal/models"
	"github.com/milktea-next/internal/queue"
	"github.com/milktea-next/internal/repository"
	"github.com/milktea-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	EventBus    events.Bus

	// Repositories
	AdminRepo        repository.AdminRepository
	UserRepo         repository.UserRepository
	OrderRepo        repository.OrderRepository
	ProductRepo      repository.ProductRepository
	ToppingRepo      repository.ToppingRepository
	CartRepo         repository.CartRepository
	VoucherRepo      repository.VoucherRepository
	PostRepo         repository.PostRepository
	CategoryRepo     repository.CategoryRepository
	BannerRepo       repository.BannerRepository
	SettingRepo      repository.SettingRepository
	NotificationRepo repository.NotificationRepository
	AuthzAuditRepo   repository.AuthzAuditLogRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserAuthService     *service.UserAuthService
	CaptchaService      *service.CaptchaService
	ProductService      *service.ProductService
	ToppingService      *service.ToppingService
	PostService         *service.PostService
	CategoryService     *service.CategoryService
	SettingService      *service.SettingService
	CartService         *service.CartService
	OrderService        *service.OrderService
	VoucherService      *service.VoucherService
	VoucherAdminService *service.VoucherAdminService
	BannerService       *service.BannerService
	NotificationService *service.NotificationService
	AuthzAuditService   *service.AuthzAuditService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		EventBus:    events.NewBus(cache.Client(), cfg.Redis.Prefix),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ToppingRepo = repository.NewToppingRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.VoucherRepo = repository.NewVoucherRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.BannerRepo = repository.NewBannerRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
	c.AuthzAuditRepo = repository.NewAuthzAuditLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo)
	captchaSetting, err := c.SettingService.GetCaptchaSetting(c.Config.Captcha)
	if err != nil {
		logger.Warnw("provider_load_captcha_setting_failed", "error", err)
	} else {
		c.Config.Captcha = service.CaptchaSettingToConfig(captchaSetting)
	}

	c.CaptchaService = service.NewCaptchaService(c.SettingService, c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.ToppingRepo)
	c.ToppingService = service.NewToppingService(c.ToppingRepo)
	c.PostService = service.NewPostService(c.PostRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.ToppingRepo)
	c.VoucherService = service.NewVoucherService(c.VoucherRepo, c.OrderRepo)
	c.VoucherAdminService = service.NewVoucherAdminService(c.VoucherRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.VoucherService, c.SettingService, c.QueueClient, c.EventBus)
	c.BannerService = service.NewBannerService(c.BannerRepo)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo, c.OrderRepo)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditRepo)
}
