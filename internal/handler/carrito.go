package handler

import (
	"net/http"

	"tienda/internal/dto"
	"tienda/internal/service"

	"github.com/gin-gonic/gin"
)

type CarritoHandler struct{ svc service.CarritoService }

func NewCarritoHandler(svc service.CarritoService) *CarritoHandler {
	return &CarritoHandler{svc: svc}
}

func (h *CarritoHandler) Ver(c *gin.Context) {
	vista, err := h.svc.Ver(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vista)
}

// Agregar adds one unit of the product to the cart.
func (h *CarritoHandler) Agregar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	vista, err := h.svc.Agregar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vista)
}

func (h *CarritoHandler) FijarCantidad(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.FijarCantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	vista, err := h.svc.FijarCantidad(c.Request.Context(), id, *req.Cantidad)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vista)
}

// Quitar removes the whole line. Also the confirmed second step after
// a confirmacion_requerida response.
func (h *CarritoHandler) Quitar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	vista, err := h.svc.Quitar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vista)
}

func (h *CarritoHandler) Vaciar(c *gin.Context) {
	vista, err := h.svc.Vaciar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vista)
}
