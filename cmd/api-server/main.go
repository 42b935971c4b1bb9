package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"flixhub/internal/catalog"
	"flixhub/internal/ingest"
	"flixhub/internal/report"
	"flixhub/pkg/database"
	"flixhub/pkg/utils"
)

func main() {
	srvCfg := utils.LoadServerConfig()

	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	// Full-replace load before serving anything; a broken source needs
	// an operator, not a half-served catalog.
	loader := ingest.NewLoader(db)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	res, err := loader.LoadFile(ctx, srvCfg.DatasetPath)
	cancel()
	if err != nil {
		log.Fatalf("dataset load failed: %v", err)
	}
	log.Printf("dataset loaded: %d records, %d rejected, %d warnings",
		res.RecordsLoaded, res.RowsRejected, len(res.Diagnostics))

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.Use(cors.New(cors.Config{
		AllowOrigins: srvCfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Content-Type"},
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "not_ready",
				"db_error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "db": "ok"})
	})

	api := router.Group("/api")

	typeRepo := catalog.NewCategoryRepo(db, ingest.TableContentTypes)
	catalog.NewCategoryHandler(typeRepo).RegisterRoutes(api.Group("/content-types"))

	countryRepo := catalog.NewCategoryRepo(db, ingest.TableCountries)
	catalog.NewCategoryHandler(countryRepo).RegisterRoutes(api.Group("/countries"))

	ratingRepo := catalog.NewCategoryRepo(db, ingest.TableRatings)
	catalog.NewCategoryHandler(ratingRepo).RegisterRoutes(api.Group("/ratings"))

	contentRepo := catalog.NewContentRepo(db)
	catalog.NewContentHandler(contentRepo).RegisterRoutes(api.Group("/content"))

	reportRepo := report.NewRepo(db)
	report.NewHandler(reportRepo).RegisterRoutes(api.Group("/reports"), api.Group("/stats"))

	httpSrv := &http.Server{
		Addr:    srvCfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API server listening on %s", srvCfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	log.Println("server stopped")
}
