package router

import (
	"database/sql"
	"log/slog"
	"net/http"

	mem "shelter-outcomes/internal/adapters/storage/memory"
	pg "shelter-outcomes/internal/adapters/storage/postgres"
	_ "shelter-outcomes/internal/docs"
	"shelter-outcomes/internal/domain/animals"
	"shelter-outcomes/internal/domain/rescue"
	"shelter-outcomes/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Log *slog.Logger // puede ser nil (usa slog.Default)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
}

// NewRouter arma todo el wiring. Devuelve además la función de parada del
// janitor del cache de scores; llamarla en el shutdown del proceso.
func NewRouter(opts Options) (http.Handler, func()) {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var animalsRepo animals.Repository
	if opts.DB != nil {
		animalsRepo = pg.NewAnimalsRepo(opts.DB)
	} else {
		animalsRepo = mem.NewAnimalsRepo()
	}

	// Services por módulo
	animalsSvc := animals.NewService(animalsRepo)

	// El cache de scores es un objeto propio inyectado al engine: cada router
	// (y cada test) tiene el suyo, aislado.
	scoreCache := rescue.NewScoreCache(rescue.DefaultCacheTTL)
	stopJanitor := scoreCache.StartJanitor()
	rescueSvc := rescue.NewService(scoreCache, log)

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc, rescue.FilterResolver{})
	rescue.RegisterRoutes(r, rescueSvc, animalsSvc)

	r.Get("/swagger/*", httpSwagger.Handler())

	return r, stopJanitor
}
