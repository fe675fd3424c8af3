package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"tienda/internal/dto"
	"tienda/internal/model"
	"tienda/internal/repository"
	"tienda/internal/store"
	"tienda/internal/validate"

	"github.com/rs/zerolog/log"
)

// CatalogoService is the authoritative product list and stock counters.
type CatalogoService interface {
	// Inicializar seeds the catalog from the static seed document when the
	// store has no productos entry yet.
	Inicializar(ctx context.Context, seedPath string) error

	ObtenerPorID(ctx context.Context, id int) (*dto.ProductoResponse, error)
	// Listar returns products for display; disponibles=true filters to stock > 0.
	Listar(ctx context.Context, soloDisponibles bool) (*dto.ProductoListResponse, error)

	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id int, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id int) error
	AjustarStock(ctx context.Context, id int, req dto.AjustarStockRequest) (*dto.ProductoResponse, error)
}

type catalogoService struct {
	kv   store.KV
	repo repository.CatalogoRepository
	mu   *sync.Mutex
}

// NewCatalogoService builds the catalog store. mu is the engine-wide lock
// shared with the cart ledger: both mutate the productos entry, and every
// operation must run to completion before the next starts.
func NewCatalogoService(kv store.KV, repo repository.CatalogoRepository, mu *sync.Mutex) CatalogoService {
	return &catalogoService{kv: kv, repo: repo, mu: mu}
}

func (s *catalogoService) Inicializar(ctx context.Context, seedPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.repo.Cargar(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrClaveNoEncontrada) {
		return err
	}

	datos, err := os.ReadFile(seedPath)
	if err != nil {
		return fmt.Errorf("leyendo catalogo inicial %q: %w", seedPath, err)
	}
	var productos []model.Producto
	if err := json.Unmarshal(datos, &productos); err != nil {
		return fmt.Errorf("catalogo inicial invalido: %w", err)
	}
	maxID := 0
	for i := range productos {
		if err := validate.Struct(&productos[i]); err != nil {
			return fmt.Errorf("producto inicial %d invalido: %w", i, err)
		}
		if productos[i].ID > maxID {
			maxID = productos[i].ID
		}
	}

	err = s.kv.Update(ctx, func(tx store.Tx) error {
		if err := s.repo.GuardarTx(tx, productos); err != nil {
			return err
		}
		// Seed the ID counter past the highest seeded id so later Crear
		// calls never collide.
		tx.Set(store.ClaveUltimoID, []byte(fmt.Sprintf("%d", maxID)))
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Int("productos", len(productos)).Str("seed", seedPath).Msg("catalogo inicial cargado")
	return nil
}

func (s *catalogoService) ObtenerPorID(ctx context.Context, id int) (*dto.ProductoResponse, error) {
	productos, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}
	p := buscarProducto(productos, id)
	if p == nil {
		return nil, ErrProductoNoEncontrado
	}
	resp := productoToResponse(*p)
	return &resp, nil
}

func (s *catalogoService) Listar(ctx context.Context, soloDisponibles bool) (*dto.ProductoListResponse, error) {
	productos, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		if soloDisponibles && p.Stock <= 0 {
			continue
		}
		data = append(data, productoToResponse(p))
	}
	return &dto.ProductoListResponse{Data: data, Total: len(data)}, nil
}

func (s *catalogoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	productos, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}

	var creado model.Producto
	err = s.kv.Update(ctx, func(tx store.Tx) error {
		id, err := s.repo.SiguienteIDTx(tx)
		if err != nil {
			return err
		}
		creado = model.Producto{
			ID:          id,
			Nombre:      req.Nombre,
			Descripcion: req.Descripcion,
			Precio:      req.Precio,
			Stock:       req.Stock,
			Categoria:   req.Categoria,
			Imagen:      req.Imagen,
		}
		return s.repo.GuardarTx(tx, append(productos, creado))
	})
	if err != nil {
		return nil, err
	}
	resp := productoToResponse(creado)
	return &resp, nil
}

func (s *catalogoService) Actualizar(ctx context.Context, id int, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	productos, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}
	p := buscarProducto(productos, id)
	if p == nil {
		return nil, ErrProductoNoEncontrado
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = *req.Descripcion
	}
	if req.Precio != nil {
		p.Precio = *req.Precio
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Categoria != nil {
		p.Categoria = *req.Categoria
	}
	if req.Imagen != nil {
		p.Imagen = *req.Imagen
	}

	err = s.kv.Update(ctx, func(tx store.Tx) error {
		return s.repo.GuardarTx(tx, productos)
	})
	if err != nil {
		return nil, err
	}
	resp := productoToResponse(*p)
	return &resp, nil
}

// Eliminar removes the product outright. Any cart line still referencing
// it becomes an orphan reservation, which the ledger tolerates and drops
// on clear.
func (s *catalogoService) Eliminar(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	productos, err := s.cargar(ctx)
	if err != nil {
		return err
	}
	filtrados := productos[:0]
	encontrado := false
	for _, p := range productos {
		if p.ID == id {
			encontrado = true
			continue
		}
		filtrados = append(filtrados, p)
	}
	if !encontrado {
		return ErrProductoNoEncontrado
	}
	return s.kv.Update(ctx, func(tx store.Tx) error {
		return s.repo.GuardarTx(tx, filtrados)
	})
}

func (s *catalogoService) AjustarStock(ctx context.Context, id int, req dto.AjustarStockRequest) (*dto.ProductoResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	productos, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}
	p := buscarProducto(productos, id)
	if p == nil {
		return nil, ErrProductoNoEncontrado
	}
	if p.Stock+req.Delta < 0 {
		return nil, ErrStockInsuficiente
	}
	p.Stock += req.Delta

	err = s.kv.Update(ctx, func(tx store.Tx) error {
		return s.repo.GuardarTx(tx, productos)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int("producto_id", id).Int("delta", req.Delta).Int("stock", p.Stock).
		Str("motivo", req.Motivo).Msg("stock ajustado")
	resp := productoToResponse(*p)
	return &resp, nil
}

// cargar treats a missing productos entry as an empty catalog; the
// bootstrap path is the only caller that cares about the distinction.
func (s *catalogoService) cargar(ctx context.Context) ([]model.Producto, error) {
	productos, err := s.repo.Cargar(ctx)
	if errors.Is(err, store.ErrClaveNoEncontrada) {
		return []model.Producto{}, nil
	}
	return productos, err
}

func buscarProducto(productos []model.Producto, id int) *model.Producto {
	for i := range productos {
		if productos[i].ID == id {
			return &productos[i]
		}
	}
	return nil
}

func productoToResponse(p model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Stock:       p.Stock,
		Categoria:   p.Categoria,
		Imagen:      p.Imagen,
	}
}
