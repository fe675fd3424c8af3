package service

import (
	"context"
	"errors"
	"sync"

	"tienda/internal/dto"
	"tienda/internal/model"
	"tienda/internal/repository"
	"tienda/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CarritoService is the cart ledger: it owns the cart lines and keeps them
// consistent with catalog stock. Stock reserved by a line and the catalog's
// free stock are two views of one pool — every mutation moves quantity
// between them and persists both sides as a single unit.
type CarritoService interface {
	Ver(ctx context.Context) (*dto.CarritoView, error)
	// Agregar adds one unit of the product (creating the line at 1).
	Agregar(ctx context.Context, productoID int) (*dto.CarritoView, error)
	// FijarCantidad sets the line's absolute quantity. Cantidad < 1 is a
	// removal request answered with ErrConfirmacionRequerida, not a mutation.
	FijarCantidad(ctx context.Context, productoID, cantidad int) (*dto.CarritoView, error)
	// Quitar commits a confirmed removal, returning the full reserved
	// quantity to the product's stock.
	Quitar(ctx context.Context, productoID int) (*dto.CarritoView, error)
	// Vaciar abandons the whole cart, returning every reservation to stock.
	Vaciar(ctx context.Context) (*dto.CarritoView, error)
}

type carritoService struct {
	kv       store.KV
	catalogo repository.CatalogoRepository
	carrito  repository.CarritoRepository
	mu       *sync.Mutex
}

func NewCarritoService(kv store.KV, catalogo repository.CatalogoRepository, carrito repository.CarritoRepository, mu *sync.Mutex) CarritoService {
	return &carritoService{kv: kv, catalogo: catalogo, carrito: carrito, mu: mu}
}

func (s *carritoService) Ver(ctx context.Context) (*dto.CarritoView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	productos, items, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}
	return armarVista(productos, items), nil
}

func (s *carritoService) Agregar(ctx context.Context, productoID int) (*dto.CarritoView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	productos, items, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}
	p := buscarProducto(productos, productoID)
	if p == nil {
		return nil, ErrProductoNoEncontrado
	}
	linea := buscarItem(items, productoID)
	if linea == nil && p.Stock <= 0 {
		// Silent no-op territory: the renderer shows a notice, nothing mutates.
		return nil, ErrSinStock
	}
	actual := 0
	if linea != nil {
		actual = linea.Cantidad
	}
	return s.fijar(ctx, productos, items, p, linea, actual+1)
}

func (s *carritoService) FijarCantidad(ctx context.Context, productoID, cantidad int) (*dto.CarritoView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	productos, items, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}
	p := buscarProducto(productos, productoID)
	if p == nil {
		return nil, ErrProductoNoEncontrado
	}
	return s.fijar(ctx, productos, items, p, buscarItem(items, productoID), cantidad)
}

// fijar is the core reservation algorithm. The line's own reservation
// counts as available for this operation — it is owned by the cart and
// reclaimable here, just not by anyone else.
func (s *carritoService) fijar(ctx context.Context, productos []model.Producto, items []model.CarritoItem, p *model.Producto, linea *model.CarritoItem, deseada int) (*dto.CarritoView, error) {
	actual := 0
	if linea != nil {
		actual = linea.Cantidad
	}
	disponible := p.Stock + actual
	if deseada > disponible {
		return nil, ErrStockInsuficiente
	}
	if deseada < 1 {
		return nil, ErrConfirmacionRequerida
	}

	// May increase stock when deseada < actual.
	p.Stock -= deseada - actual
	if linea != nil {
		linea.Cantidad = deseada
	} else {
		items = append(items, model.CarritoItem{
			ID:       p.ID,
			Nombre:   p.Nombre,
			Precio:   p.Precio,
			Cantidad: deseada,
		})
	}

	if err := s.persistir(ctx, productos, items); err != nil {
		return nil, err
	}
	log.Debug().Int("producto_id", p.ID).Int("cantidad", deseada).Int("stock", p.Stock).Msg("carrito actualizado")
	return armarVista(productos, items), nil
}

func (s *carritoService) Quitar(ctx context.Context, productoID int) (*dto.CarritoView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	productos, items, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}

	restantes := make([]model.CarritoItem, 0, len(items))
	for _, item := range items {
		if item.ID != productoID {
			restantes = append(restantes, item)
			continue
		}
		// Return the reservation; a vanished product just drops it.
		if p := buscarProducto(productos, productoID); p != nil {
			p.Stock += item.Cantidad
		}
	}
	if len(restantes) == len(items) {
		// Nothing to remove — report the current view unchanged.
		return armarVista(productos, items), nil
	}

	if err := s.persistir(ctx, productos, restantes); err != nil {
		return nil, err
	}
	return armarVista(productos, restantes), nil
}

func (s *carritoService) Vaciar(ctx context.Context) (*dto.CarritoView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	productos, items, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if p := buscarProducto(productos, item.ID); p != nil {
			p.Stock += item.Cantidad
		}
	}
	vacio := []model.CarritoItem{}
	if err := s.persistir(ctx, productos, vacio); err != nil {
		return nil, err
	}
	return armarVista(productos, vacio), nil
}

func (s *carritoService) cargar(ctx context.Context) ([]model.Producto, []model.CarritoItem, error) {
	productos, err := s.catalogo.Cargar(ctx)
	if errors.Is(err, store.ErrClaveNoEncontrada) {
		productos = []model.Producto{}
	} else if err != nil {
		return nil, nil, err
	}
	items, err := s.carrito.Cargar(ctx)
	if err != nil {
		return nil, nil, err
	}
	return productos, items, nil
}

// persistir writes catalog and ledger as one atomic unit. A partial
// application — stock decremented but line not updated — would be a
// correctness bug, so both land in one store transaction or neither does.
func (s *carritoService) persistir(ctx context.Context, productos []model.Producto, items []model.CarritoItem) error {
	return s.kv.Update(ctx, func(tx store.Tx) error {
		if err := s.catalogo.GuardarTx(tx, productos); err != nil {
			return err
		}
		return s.carrito.GuardarTx(tx, items)
	})
}

func buscarItem(items []model.CarritoItem, id int) *model.CarritoItem {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

func armarVista(productos []model.Producto, items []model.CarritoItem) *dto.CarritoView {
	vista := &dto.CarritoView{
		Items:    make([]dto.CarritoItemResponse, 0, len(items)),
		Total:    decimal.Zero,
		Catalogo: make([]dto.ProductoResponse, 0, len(productos)),
	}
	for _, item := range items {
		sub := item.Subtotal()
		vista.Total = vista.Total.Add(sub)
		vista.Items = append(vista.Items, dto.CarritoItemResponse{
			ID:       item.ID,
			Nombre:   item.Nombre,
			Precio:   item.Precio,
			Cantidad: item.Cantidad,
			Subtotal: sub,
		})
	}
	for _, p := range productos {
		vista.Catalogo = append(vista.Catalogo, productoToResponse(p))
	}
	return vista
}
