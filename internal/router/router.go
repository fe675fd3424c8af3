package router

import (
	"sync"
	"time"

	"tienda/internal/config"
	"tienda/internal/handler"
	"tienda/internal/middleware"
	"tienda/internal/repository"
	"tienda/internal/service"
	"tienda/internal/store"

	"github.com/gin-gonic/gin"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← KV store
func New(cfg *config.Config, kv store.KV) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	catalogoRepo := repository.NewCatalogoRepository(kv)
	carritoRepo := repository.NewCarritoRepository(kv)
	pedidoRepo := repository.NewPedidoRepository(kv)
	secuenciaRepo := repository.NewSecuenciaRepository(kv)
	usuarioRepo := repository.NewUsuarioRepository(kv)

	// ── Services ─────────────────────────────────────────────────────────────
	// Catalog, cart and checkout mutate the same stock figures, so they
	// share one mutex: each operation runs to completion before the next.
	var mu sync.Mutex

	authSvc := service.NewAuthService(kv, usuarioRepo, cfg)
	catalogoSvc := service.NewCatalogoService(kv, catalogoRepo, &mu)
	carritoSvc := service.NewCarritoService(kv, catalogoRepo, carritoRepo, &mu)
	secuenciaSvc := service.NewSecuenciaService(secuenciaRepo)
	checkoutSvc := service.NewCheckoutService(kv, carritoRepo, pedidoRepo, secuenciaSvc, &mu)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(catalogoSvc)
	carritoH := handler.NewCarritoHandler(carritoSvc)
	checkoutH := handler.NewCheckoutHandler(checkoutSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(kv))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Storefront — no auth required
	r.GET("/v1/productos", productosH.Listar)
	r.GET("/v1/productos/:id", productosH.ObtenerPorID)

	carrito := r.Group("/v1/carrito")
	{
		carrito.GET("", carritoH.Ver)
		carrito.POST("/:id", carritoH.Agregar)
		carrito.PUT("/:id", carritoH.FijarCantidad)
		carrito.DELETE("/:id", carritoH.Quitar)
		carrito.DELETE("", carritoH.Vaciar)
	}

	checkout := r.Group("/v1/checkout")
	{
		checkout.POST("", checkoutH.Iniciar)
		checkout.POST("/:id/confirmar", checkoutH.Confirmar)
		checkout.POST("/:id/cancelar", checkoutH.Cancelar)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Catalog write operations — administrador only
		prods := v1.Group("/productos", middleware.RequireRole("administrador"))
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
			prods.PATCH("/:id/stock", productosH.AjustarStock)
		}

		pedidos := v1.Group("/pedidos", middleware.RequireRole("administrador"))
		{
			pedidos.GET("", checkoutH.ListarPedidos)
			pedidos.GET("/:numero", checkoutH.ObtenerPedido)
		}
	}

	return r
}
