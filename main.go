package main

import (
	"strings"
	"time"

	"ecotravel/auth"
	"ecotravel/config"
	"ecotravel/db"
	"ecotravel/favorites"
	"ecotravel/gallery"
	"ecotravel/handlers"
	"ecotravel/images"
	"ecotravel/logger"
	"ecotravel/storage"
	"ecotravel/utils"
	"ecotravel/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

func sessionStore() sessions.Store {
	if config.SQLConfigured() {
		instance, err := db.Open(config.MYSQL_DSN, config.SQLITE_FILE)
		if err != nil {
			logger.Log.WithError(err).Fatal("Cannot open session database")
		}
		return gormsessions.NewStore(instance, true, []byte(config.SESSION_KEY))
	}
	return cookie.NewStore([]byte(config.SESSION_KEY))
}

func main() {
	logger.Init(config.LOG_LEVEL, config.LOG_JSON)

	store, err := storage.New(storage.StorageType(config.STORE_TYPE))
	if err != nil {
		logger.Log.WithError(err).Fatal("Cannot open durable store")
	}
	table, err := images.LoadTable(config.IMAGE_TABLE_FILE)
	if err != nil {
		logger.Log.WithError(err).Fatal("Cannot load image table")
	}
	pages, err := images.HarvestDir(config.SITE_DIR, config.BASE_URL)
	if err != nil {
		// The site can still be served, images fall back to the table
		logger.Log.WithError(err).Warn("Cannot harvest site pages")
		pages = images.NewIndex()
	}
	favoritesHandler := &handlers.Favorites{
		Store:   store,
		Key:     config.FAVORITES_KEY,
		Pages:   pages,
		Table:   table,
		BaseURL: config.BASE_URL,
	}
	if favoritesHandler.Key == "" {
		favoritesHandler.Key = favorites.DefaultKey
	}

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))
	web.LoadTemplates(router)

	cookieStore := sessionStore()
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: auth.SessionExpirationTime, HttpOnly: true})
	router.Use(sessions.Sessions(auth.SessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/gallery/thumb"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // individual end-points can override that

	// Favorite buttons and counter
	favoritesHandler.RegisterRoutes(router)
	// Favorites modal
	router.GET("/favorites", web.FavoritesModal(favoritesHandler))
	// Lightbox
	router.GET("/gallery/thumb", web.GalleryThumb(gallery.NewThumbnailer(config.SITE_DIR, uint(config.THUMB_MAX_SIZE))))
	// Misc
	router.GET("/robots.txt", web.DisallowRobots)
	router.NoRoute(web.Site(config.SITE_DIR))

	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	logger.Log.Fatalf("Server stopped: %v", err)
}
