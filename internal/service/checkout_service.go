package service

import (
	"context"
	"sync"
	"time"

	"tienda/internal/dto"
	"tienda/internal/model"
	"tienda/internal/repository"
	"tienda/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Checkout revision states. A revision is a suspension point: it waits in
// "revision" for the external confirm/cancel resumption, with no timeout.
const (
	EstadoRevision   = "revision"
	EstadoConfirmado = "confirmado"
	EstadoCompletado = "completado"
)

// CheckoutService orchestrates the cart → order conversion.
type CheckoutService interface {
	// Iniciar snapshots the cart read-only for review. No side effects.
	Iniciar(ctx context.Context) (*dto.RevisionResponse, error)
	// Confirmar is the explicit user confirmation: issues the order number,
	// freezes the snapshot into a Pedido and consumes the reserved stock
	// permanently (the cart is emptied WITHOUT returning stock).
	Confirmar(ctx context.Context, revisionID string, req dto.ConfirmarCompraRequest) (*dto.PedidoResponse, error)
	// Cancelar discards the snapshot; cart and stock stay untouched.
	Cancelar(ctx context.Context, revisionID string) error

	ListarPedidos(ctx context.Context) (*dto.PedidoListResponse, error)
	ObtenerPedido(ctx context.Context, numero string) (*dto.PedidoResponse, error)
}

// revision is the in-memory Reviewing snapshot. Deliberately not persisted:
// a process restart discards it, and the engine reconstructs from the
// persisted cart ledger instead.
type revision struct {
	id     string
	estado string
	items  []model.CarritoItem
	total  decimal.Decimal
}

type checkoutService struct {
	kv        store.KV
	carrito   repository.CarritoRepository
	pedidos   repository.PedidoRepository
	secuencia SecuenciaService
	mu        *sync.Mutex
	revisiones map[string]*revision
}

func NewCheckoutService(kv store.KV, carrito repository.CarritoRepository, pedidos repository.PedidoRepository, secuencia SecuenciaService, mu *sync.Mutex) CheckoutService {
	return &checkoutService{
		kv:         kv,
		carrito:    carrito,
		pedidos:    pedidos,
		secuencia:  secuencia,
		mu:         mu,
		revisiones: make(map[string]*revision),
	}
}

func (s *checkoutService) Iniciar(ctx context.Context) (*dto.RevisionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.carrito.Cargar(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCarritoVacio
	}

	// Deep copy: the snapshot must not alias the live ledger.
	copia := make([]model.CarritoItem, len(items))
	copy(copia, items)

	total := decimal.Zero
	for _, item := range copia {
		total = total.Add(item.Subtotal())
	}

	rev := &revision{
		id:     uuid.NewString(),
		estado: EstadoRevision,
		items:  copia,
		total:  total,
	}
	s.revisiones[rev.id] = rev

	return &dto.RevisionResponse{
		RevisionID: rev.id,
		Estado:     rev.estado,
		Items:      itemsToResponse(rev.items),
		Total:      rev.total,
	}, nil
}

func (s *checkoutService) Confirmar(ctx context.Context, revisionID string, req dto.ConfirmarCompraRequest) (*dto.PedidoResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rev, ok := s.revisiones[revisionID]
	if !ok || rev.estado != EstadoRevision {
		return nil, ErrRevisionNoEncontrada
	}

	// The order must record exactly what the shopper reviewed. If the cart
	// moved underneath the snapshot, force a fresh review.
	vivos, err := s.carrito.Cargar(ctx)
	if err != nil {
		return nil, err
	}
	if !mismasLineas(rev.items, vivos) {
		delete(s.revisiones, revisionID)
		return nil, ErrRevisionObsoleta
	}

	historial, err := s.pedidos.Cargar(ctx)
	if err != nil {
		return nil, err
	}

	var pedido model.Pedido
	err = s.kv.Update(ctx, func(tx store.Tx) error {
		numero, err := s.secuencia.Siguiente(ctx, tx)
		if err != nil {
			return err
		}
		rev.estado = EstadoConfirmado

		pedido = model.Pedido{
			Numero:   numero,
			Items:    itemsToPedido(rev.items),
			Total:    rev.total,
			Envio:    envioToModel(req.Envio),
			CreadoEn: time.Now().UTC(),
		}
		if err := s.pedidos.GuardarTx(tx, append(historial, pedido)); err != nil {
			return err
		}
		// A completed sale consumes stock permanently: the cart entry is
		// dropped without crediting anything back to the catalog.
		s.carrito.EliminarTx(tx)
		return nil
	})
	if err != nil {
		rev.estado = EstadoRevision
		return nil, err
	}

	rev.estado = EstadoCompletado
	delete(s.revisiones, revisionID)

	log.Info().Str("numero", pedido.Numero).Str("total", pedido.Total.String()).
		Int("items", len(pedido.Items)).Msg("compra completada")
	return pedidoToResponse(pedido), nil
}

func (s *checkoutService) Cancelar(ctx context.Context, revisionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rev, ok := s.revisiones[revisionID]
	if !ok || rev.estado != EstadoRevision {
		return ErrRevisionNoEncontrada
	}
	delete(s.revisiones, revisionID)
	return nil
}

func (s *checkoutService) ListarPedidos(ctx context.Context) (*dto.PedidoListResponse, error) {
	historial, err := s.pedidos.Cargar(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PedidoResponse, 0, len(historial))
	for _, p := range historial {
		data = append(data, *pedidoToResponse(p))
	}
	return &dto.PedidoListResponse{Data: data, Total: len(data)}, nil
}

func (s *checkoutService) ObtenerPedido(ctx context.Context, numero string) (*dto.PedidoResponse, error) {
	historial, err := s.pedidos.Cargar(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range historial {
		if p.Numero == numero {
			return pedidoToResponse(p), nil
		}
	}
	return nil, ErrPedidoNoEncontrado
}

func mismasLineas(a, b []model.CarritoItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Cantidad != b[i].Cantidad || !a[i].Precio.Equal(b[i].Precio) {
			return false
		}
	}
	return true
}

func itemsToResponse(items []model.CarritoItem) []dto.CarritoItemResponse {
	out := make([]dto.CarritoItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.CarritoItemResponse{
			ID:       item.ID,
			Nombre:   item.Nombre,
			Precio:   item.Precio,
			Cantidad: item.Cantidad,
			Subtotal: item.Subtotal(),
		})
	}
	return out
}

func itemsToPedido(items []model.CarritoItem) []model.PedidoItem {
	out := make([]model.PedidoItem, 0, len(items))
	for _, item := range items {
		out = append(out, model.PedidoItem{
			ProductoID: item.ID,
			Nombre:     item.Nombre,
			Precio:     item.Precio,
			Cantidad:   item.Cantidad,
			Subtotal:   item.Subtotal(),
		})
	}
	return out
}

func envioToModel(e *dto.DatosEnvioRequest) *model.DatosEnvio {
	if e == nil {
		return nil
	}
	return &model.DatosEnvio{Pais: e.Pais, Provincia: e.Provincia, Localidad: e.Localidad, Direccion: e.Direccion}
}

func envioToResponse(e *model.DatosEnvio) *dto.DatosEnvioRequest {
	if e == nil {
		return nil
	}
	return &dto.DatosEnvioRequest{Pais: e.Pais, Provincia: e.Provincia, Localidad: e.Localidad, Direccion: e.Direccion}
}

func pedidoToResponse(p model.Pedido) *dto.PedidoResponse {
	items := make([]dto.CarritoItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, dto.CarritoItemResponse{
			ID:       item.ProductoID,
			Nombre:   item.Nombre,
			Precio:   item.Precio,
			Cantidad: item.Cantidad,
			Subtotal: item.Subtotal,
		})
	}
	return &dto.PedidoResponse{
		Numero:   p.Numero,
		Items:    items,
		Total:    p.Total,
		Envio:    envioToResponse(p.Envio),
		CreadoEn: p.CreadoEn.Format(time.RFC3339),
	}
}
