package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boogo/backend/config"
	"github.com/boogo/backend/handlers"
	"github.com/boogo/backend/middleware"
	"github.com/boogo/backend/service"
	"github.com/boogo/backend/store"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	ctx := context.Background()
	db, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal("mongodb:", err)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Println("mongodb disconnect:", err)
		}
	}()
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal("mongodb indexes:", err)
	}

	books := db.BookRepo()
	authors := db.AuthorRepo()
	genres := db.GenreRepo()
	contents := db.ContentRepo()
	reviews := db.ReviewRepo()
	collections := db.CollectionRepo()
	subscriptions := db.SubscriptionRepo()
	plans := db.PlanRepo()
	payments := db.PaymentRepo()
	progress := db.ProgressRepo()
	users := db.UserRepo()
	blacklist := db.BlacklistRepo()

	authSvc := &service.AuthService{Users: users, Blacklist: blacklist, JWTSecret: cfg.JWTSecret}
	bookSvc := &service.BookService{Books: books, Authors: authors, Genres: genres, Contents: contents, Tx: db}
	authorSvc := &service.AuthorService{Authors: authors, Books: books, Tx: db}
	genreSvc := &service.GenreService{Genres: genres, Books: books, Tx: db}
	contentSvc := &service.ContentService{Books: books, Contents: contents, Progress: progress, Tx: db}
	reviewSvc := &service.ReviewService{Reviews: reviews, Books: books, Tx: db}
	collectionSvc := &service.CollectionService{Collections: collections, Books: books}
	subscriptionSvc := &service.SubscriptionService{Subscriptions: subscriptions, Plans: plans, Payments: payments, Tx: db}

	var coverSvc *service.CoverService
	if cfg.S3Bucket != "" {
		coverSvc, err = service.NewCoverService(ctx, books, cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretKey)
		if err != nil {
			log.Fatal("s3:", err)
		}
	} else {
		log.Println("warning: AWS_S3_BUCKET not set; cover uploads will fail")
	}

	validate := validator.New()
	authHandler := &handlers.AuthHandler{Auth: authSvc, Validate: validate}
	booksHandler := &handlers.BooksHandler{Books: bookSvc, Content: contentSvc, Covers: coverSvc, Validate: validate}
	authorsHandler := &handlers.AuthorsHandler{Authors: authorSvc, Validate: validate}
	genresHandler := &handlers.GenresHandler{Genres: genreSvc, Validate: validate}
	reviewsHandler := &handlers.ReviewsHandler{Reviews: reviewSvc, Validate: validate}
	collectionsHandler := &handlers.CollectionsHandler{Collections: collectionSvc, Validate: validate}
	subscriptionsHandler := &handlers.SubscriptionsHandler{Subscriptions: subscriptionSvc, Validate: validate}

	auth := middleware.Auth(authSvc)
	admin := middleware.Admin
	subscribed := middleware.SubscriptionRequired(subscriptionSvc)

	r := chi.NewRouter()
	r.Use(middleware.AllowAll())
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"welcome to boogo."}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireLoggedOut(authSvc))
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
			})
			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/info", authHandler.Info)
				r.Get("/logout", authHandler.Logout)
			})
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", booksHandler.List)
			r.Get("/top10", booksHandler.TopTen)
			r.Get("/{bookId}", booksHandler.Get)
			r.Get("/{bookId}/chapters", booksHandler.Chapters)

			r.Group(func(r chi.Router) {
				r.Use(auth, admin)
				r.Post("/", booksHandler.Create)
				r.Patch("/{bookId}", booksHandler.Update)
				r.Delete("/{bookId}", booksHandler.Delete)
				r.Post("/{bookId}/genres", booksHandler.AddGenres)
				r.Post("/{bookId}/cover", booksHandler.UploadCover)
				r.Post("/{bookId}/content", booksHandler.CreateChapter)
				r.Patch("/{bookId}/content/{chapterNo}", booksHandler.UpdateChapter)
				r.Delete("/{bookId}/content/{chapterNo}", booksHandler.DeleteChapter)
			})
			r.Group(func(r chi.Router) {
				r.Use(auth, subscribed)
				r.Get("/{bookId}/content", booksHandler.ReadChapter)
				r.Get("/{bookId}/content/{chapterNo}", booksHandler.ReadChapter)
			})
		})

		r.Route("/authors", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/", authorsHandler.List)
				r.Get("/{authorId}", authorsHandler.Get)
			})
			r.Group(func(r chi.Router) {
				r.Use(auth, admin)
				r.Post("/", authorsHandler.Create)
				r.Patch("/{authorId}", authorsHandler.Update)
				r.Delete("/{authorId}", authorsHandler.Delete)
				r.Post("/{authorId}/books", authorsHandler.AddBooks)
				r.Delete("/{authorId}/books/{bookId}", authorsHandler.RemoveBook)
			})
		})

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", genresHandler.List)
			r.Get("/{genreId}", genresHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(auth, admin)
				r.Post("/", genresHandler.Create)
				r.Patch("/{genreId}", genresHandler.Update)
				r.Delete("/{genreId}", genresHandler.Delete)
				r.Post("/{genreId}/books", genresHandler.AddBooks)
			})
		})

		// One param name for the whole subtree: chi rejects two different
		// wildcard names in the same position. GET/POST take a book id,
		// DELETE takes a review id.
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/{id}", reviewsHandler.ByBook)
			r.Group(func(r chi.Router) {
				r.Use(auth, subscribed)
				r.Post("/{id}", reviewsHandler.Create)
			})
			r.Group(func(r chi.Router) {
				r.Use(auth, admin)
				r.Delete("/{id}", reviewsHandler.Delete)
			})
		})

		r.Route("/collections", func(r chi.Router) {
			r.Use(auth)
			r.Get("/", collectionsHandler.List)
			r.Post("/", collectionsHandler.Create)
			r.Delete("/{collectionId}", collectionsHandler.Delete)
			r.Get("/{collectionId}/books", collectionsHandler.Books)
			r.Post("/{collectionId}/books", collectionsHandler.AddBook)
			r.Delete("/{collectionId}/books/{bookId}", collectionsHandler.RemoveBook)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/plans", subscriptionsHandler.ListPlans)
			r.Group(func(r chi.Router) {
				r.Use(auth, admin)
				r.Post("/plans", subscriptionsHandler.CreatePlan)
				r.Patch("/plans/{planId}", subscriptionsHandler.UpdatePlan)
				r.Delete("/plans/{planId}", subscriptionsHandler.DeletePlan)
			})
			r.Group(func(r chi.Router) {
				r.Use(auth, middleware.PreventDuplicateSubscription(subscriptionSvc))
				r.Post("/{planId}", subscriptionsHandler.Subscribe)
			})
			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Delete("/", subscriptionsHandler.Unsubscribe)
			})
		})

		r.Get("/search/{query}", booksHandler.Search)
	})

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Println("server listening on :" + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("shutdown:", err)
	}
}
