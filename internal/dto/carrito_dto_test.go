package dto_test

import (
	"testing"

	"tienda/internal/dto"
	"tienda/internal/validate"

	"github.com/stretchr/testify/assert"
)

func TestFijarCantidadRequestAdmiteNegativos(t *testing.T) {
	// Any value below 1 must reach the service, which answers it with the
	// removal-confirmation round trip instead of rejecting the request.
	for _, cantidad := range []int{-3, 0, 1, 50} {
		c := cantidad
		assert.NoError(t, validate.Struct(&dto.FijarCantidadRequest{Cantidad: &c}), "cantidad %d", c)
	}
}

func TestFijarCantidadRequestExigeElCampo(t *testing.T) {
	assert.Error(t, validate.Struct(&dto.FijarCantidadRequest{}))
}
