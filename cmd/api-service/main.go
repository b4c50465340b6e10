package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/gorodok/gorodok-api/internal/config"
	"github.com/gorodok/gorodok-api/internal/db"
	"github.com/gorodok/gorodok-api/internal/favorites"
	"github.com/gorodok/gorodok-api/internal/moderation"
	"github.com/gorodok/gorodok-api/internal/services/admin"
	"github.com/gorodok/gorodok-api/internal/services/advertisement"
	"github.com/gorodok/gorodok-api/internal/services/auth"
	"github.com/gorodok/gorodok-api/internal/services/catalog"
	"github.com/gorodok/gorodok-api/internal/services/event"
	"github.com/gorodok/gorodok-api/internal/services/favorite"
	"github.com/gorodok/gorodok-api/internal/services/media"
	"github.com/gorodok/gorodok-api/internal/services/shop"
	"github.com/gorodok/gorodok-api/internal/websocket"
)

// Сессии избранного живут в Redis не дольше месяца без обращений
const favoritesTTL = 30 * 24 * time.Hour

func main() {
	// Загружаем конфигурацию
	cfg := config.LoadConfig()

	// Инициализируем базу данных
	if err := db.InitDB(cfg); err != nil {
		log.Fatalf("❌ Ошибка при инициализации базы данных: %v", err)
	}
	defer db.CloseDB()

	// Хранилище избранного: Redis, при недоступности — деградация в память
	favoritesStorage := setupFavoritesStorage(cfg)
	favoritesManager := favorites.NewManager(favoritesStorage)

	// WebSocket-канал консоли администратора
	wsManager := websocket.NewManager()
	defer wsManager.Shutdown()

	// Цикл модерации поверх базы данных с трансляцией событий консоли
	eventBridge := admin.NewEventBridge(wsManager)
	lifecycle := moderation.NewLifecycle(db.NewModerationBackend(),
		moderation.WithNotifier(eventBridge))
	eventBridge.Bind(lifecycle)
	if err := lifecycle.Load(context.Background()); err != nil {
		log.Fatalf("❌ Ошибка загрузки данных модерации: %v", err)
	}

	// Создаём экземпляр Fiber
	app := fiber.New(fiber.Config{
		AppName:      "Gorodok API (MVP)",
		ErrorHandler: errorHandler,
	})

	// Добавляем middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: false,
	}))

	// Создаём сервисы
	authService := auth.NewAuthService(cfg)
	favoriteService := favorite.NewFavoriteService(cfg, favoritesManager)
	shopService := shop.NewShopService(cfg, lifecycle)
	advertisementService := advertisement.NewAdvertisementService(cfg, lifecycle)
	adminService := admin.NewAdminService(cfg, lifecycle, wsManager)
	catalogService := catalog.NewCatalogService(cfg)
	eventService := event.NewEventService(cfg)
	mediaService := media.NewMediaService(cfg)

	// Регистрируем маршруты
	authService.SetupRoutes(app)
	favoriteService.SetupRoutes(app)
	shopService.SetupRoutes(app)
	advertisementService.SetupRoutes(app)
	adminService.SetupRoutes(app)
	catalogService.SetupRoutes(app)
	eventService.SetupRoutes(app)
	mediaService.SetupRoutes(app)

	// Канал событий консоли живет на отдельном порту
	go runAdminEventsServer(cfg, wsManager, adminService)

	// Запускаем сервер
	log.Printf("✅ Gorodok API запущен на порту %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

// setupFavoritesStorage подключается к Redis; при недоступности сервис
// продолжает работу с хранилищем в памяти
func setupFavoritesStorage(cfg *config.Config) favorites.Storage {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConfig.Addr,
		Password: cfg.RedisConfig.Password,
		DB:       cfg.RedisConfig.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis недоступен (%v), избранное хранится в памяти", err)
		return favorites.NewMemoryStorage()
	}

	log.Println("✅ Подключение к Redis установлено")
	return favorites.NewRedisStorage(client, favoritesTTL)
}

// runAdminEventsServer поднимает HTTP-сервер WebSocket-канала консоли
func runAdminEventsServer(cfg *config.Config, wsManager *websocket.Manager, adminService *admin.AdminService) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/admin/events", wsManager.UpgradeHandler(adminService.AuthorizeEventToken))

	log.Printf("✅ Канал событий консоли запущен на порту %s", cfg.AdminEventsPort)
	if err := http.ListenAndServe(":"+cfg.AdminEventsPort, mux); err != nil {
		log.Printf("❌ Ошибка сервера событий консоли: %v", err)
	}
}

// errorHandler обрабатывает ошибки Fiber
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	// Проверяем, является ли ошибка из Fiber
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	// Отправляем ошибку в JSON
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
