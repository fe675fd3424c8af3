package handler

import (
	"errors"
	"net/http"
	"strconv"

	"tienda/internal/apierror"
	"tienda/internal/dto"
	"tienda/internal/service"
	"tienda/internal/validate"

	"github.com/gin-gonic/gin"
)

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := validate.Fields(err)
		if fields == nil {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// paramID parses the numeric :id path parameter.
func paramID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return 0, false
	}
	return id, true
}

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a persistence or internal failure: logged by the
// error middleware, reported as an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductoNoEncontrado),
		errors.Is(err, service.ErrPedidoNoEncontrado),
		errors.Is(err, service.ErrRevisionNoEncontrada):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrStockInsuficiente),
		errors.Is(err, service.ErrSinStock),
		errors.Is(err, service.ErrCarritoVacio),
		errors.Is(err, service.ErrRevisionObsoleta),
		errors.Is(err, service.ErrSecuenciaAgotada):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrConfirmacionRequerida):
		c.JSON(http.StatusConflict, dto.ConfirmacionRequeridaResponse{
			ConfirmacionRequerida: true,
			Detalle:               "Cantidad menor a 1: confirme la eliminacion con DELETE",
		})
	case errors.Is(err, service.ErrCredenciales):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
