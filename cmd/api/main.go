package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/duartesilva/plantshop/internal/community"
	"github.com/duartesilva/plantshop/internal/config"
	"github.com/duartesilva/plantshop/internal/database"
	"github.com/duartesilva/plantshop/internal/logging"
	"github.com/duartesilva/plantshop/internal/media"
	"github.com/duartesilva/plantshop/internal/messaging"
	"github.com/duartesilva/plantshop/internal/shop"
	"github.com/duartesilva/plantshop/internal/store"
)

type api struct {
	logger     *zap.Logger
	categories *shop.CategoryService
	articles   *shop.ArticleService
	orders     *shop.OrderService
	users      *shop.ProfileService
	community  *community.Service
	mediaRoot  string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Init logger: %v", err)
	}
	defer logging.Sync(logger)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("connected to database")

	st := store.New(db)

	docs, err := community.NewRedisStore(cfg.Redis.URL, "plantshop")
	if err != nil {
		logger.Fatal("connect to redis", zap.Error(err))
	}
	defer docs.Close()

	logger.Info("connected to redis")

	publisher := messaging.NewKafkaPublisher(logger, cfg.Kafka.Brokers, cfg.Kafka.ShippingTopic)
	defer publisher.Close()

	files := media.NewDiskStore(cfg.Media.Root, cfg.Media.BaseURL, logger)

	a := &api{
		logger:     logger,
		categories: shop.NewCategoryService(st),
		articles:   shop.NewArticleService(st, st, files, logger),
		orders:     shop.NewOrderService(st, st, publisher, logger),
		users:      shop.NewProfileService(st),
		community:  community.NewService(docs, files, logger),
		mediaRoot:  cfg.Media.Root,
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      a.routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func (a *api) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		a.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(a.mediaRoot))))

	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", a.handleListCategories)
			r.Post("/", a.handleCreateCategory)
			r.Get("/{id}", a.handleGetCategory)
			r.Put("/{id}", a.handleUpdateCategory)
			r.Delete("/{id}", a.handleDeleteCategory)
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", a.handleListArticles)
			r.Post("/", a.handleCreateArticle)
			r.Get("/{id}", a.handleGetArticle)
			r.Put("/{id}", a.handleUpdateArticle)
			r.Delete("/{id}", a.handleDeleteArticle)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", a.handleListUsers)
			r.Post("/", a.handleCreateUser)
			r.Get("/{id}", a.handleGetUser)
			r.Put("/{id}/profile", a.handleUpdateProfile)
			r.Get("/{id}/orders", a.handleListUserOrders)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", a.handleListOrders)
			r.Post("/", a.handlePlaceOrder)
			r.Get("/{id}", a.handleGetOrder)
			r.Post("/{id}/ship", a.handleShipOrder)
		})

		r.Route("/community", func(r chi.Router) {
			r.Route("/challenges", func(r chi.Router) {
				r.Get("/", a.handleChallengeArchive)
				r.Post("/", a.handleCreateChallenge)
				r.Get("/today", a.handleTodaysChallenge)
				r.Get("/{id}", a.handleGetChallenge)
				r.Delete("/{id}", a.handleDeleteChallenge)
				r.Post("/{id}/guesses", a.handleSubmitGuess)
			})

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", a.handleListPosts)
				r.Post("/", a.handleCreatePost)
				r.Get("/{id}", a.handleGetPost)
				r.Post("/{id}/comments", a.handleAddComment)
			})
		})
	})

	return r
}
