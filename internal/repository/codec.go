package repository

import (
	"encoding/json"
	"fmt"

	"tienda/internal/validate"
)

// decodificarLista unmarshals a JSON sequence and validates every record.
// Malformed or invariant-breaking records fail the whole load: the engine
// refuses to operate on data it cannot trust, rather than propagating
// zero values.
func decodificarLista[T any](clave string, datos []byte) ([]T, error) {
	var lista []T
	if err := json.Unmarshal(datos, &lista); err != nil {
		return nil, fmt.Errorf("decodificando %q: %w", clave, err)
	}
	for i := range lista {
		if err := validate.Struct(&lista[i]); err != nil {
			return nil, fmt.Errorf("registro %d de %q invalido: %w", i, clave, err)
		}
	}
	return lista, nil
}

func codificarLista[T any](clave string, lista []T) ([]byte, error) {
	if lista == nil {
		lista = []T{}
	}
	b, err := json.Marshal(lista)
	if err != nil {
		return nil, fmt.Errorf("codificando %q: %w", clave, err)
	}
	return b, nil
}
