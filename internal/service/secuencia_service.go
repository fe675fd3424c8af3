package service

import (
	"context"
	"fmt"

	"tienda/internal/repository"
	"tienda/internal/store"
)

// SecuenciaService issues order numbers: A-0001 … A-9999, B-0001 … Z-9999.
// Strictly increasing, never reused, one per confirmed checkout.
type SecuenciaService interface {
	// Siguiente advances the persisted counter inside the caller's store
	// transaction, so the number is only consumed if the order lands.
	Siguiente(ctx context.Context, tx store.Tx) (string, error)
}

type secuenciaService struct {
	repo repository.SecuenciaRepository
}

func NewSecuenciaService(repo repository.SecuenciaRepository) SecuenciaService {
	return &secuenciaService{repo: repo}
}

func (s *secuenciaService) Siguiente(_ context.Context, tx store.Tx) (string, error) {
	estado, err := s.repo.CargarTx(tx)
	if err != nil {
		return "", err
	}

	if estado.UltimoNumero >= 9999 {
		if estado.UltimaLetra >= 'Z' {
			// Z-9999 was the last defined number. Fail loudly; the state is
			// left in place so the condition is permanent, not wrapping.
			return "", ErrSecuenciaAgotada
		}
		estado.UltimaLetra++
		estado.UltimoNumero = 1
	} else {
		estado.UltimoNumero++
	}

	s.repo.GuardarTx(tx, estado)
	return fmt.Sprintf("%c-%04d", estado.UltimaLetra, estado.UltimoNumero), nil
}
