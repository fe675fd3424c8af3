package service_test

import (
	"context"
	"testing"

	"tienda/internal/repository"
	"tienda/internal/service"
	"tienda/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// siguiente issues one number inside its own store transaction, the way
// checkout confirmation does.
func siguiente(t *testing.T, kv store.KV, svc service.SecuenciaService) (string, error) {
	t.Helper()
	var numero string
	err := kv.Update(context.Background(), func(tx store.Tx) error {
		var err error
		numero, err = svc.Siguiente(context.Background(), tx)
		return err
	})
	return numero, err
}

func seedSecuencia(t *testing.T, kv *memKV, letra byte, numero string) {
	t.Helper()
	kv.datos[store.ClaveUltimaLetra] = []byte{letra}
	kv.datos[store.ClaveUltimoNumero] = []byte(numero)
}

func TestSecuenciaPrimerNumero(t *testing.T) {
	kv := newMemKV()
	svc := service.NewSecuenciaService(repository.NewSecuenciaRepository(kv))

	numero, err := siguiente(t, kv, svc)
	require.NoError(t, err)
	assert.Equal(t, "A-0001", numero)
}

func TestSecuenciaAvanzaYPersiste(t *testing.T) {
	kv := newMemKV()
	svc := service.NewSecuenciaService(repository.NewSecuenciaRepository(kv))

	n1, err := siguiente(t, kv, svc)
	require.NoError(t, err)
	n2, err := siguiente(t, kv, svc)
	require.NoError(t, err)
	assert.Equal(t, "A-0001", n1)
	assert.Equal(t, "A-0002", n2)

	// A fresh service over the same store continues, never restarts.
	svc2 := service.NewSecuenciaService(repository.NewSecuenciaRepository(kv))
	n3, err := siguiente(t, kv, svc2)
	require.NoError(t, err)
	assert.Equal(t, "A-0003", n3)
}

func TestSecuenciaRolloverDeLetra(t *testing.T) {
	kv := newMemKV()
	seedSecuencia(t, kv, 'A', "9999")
	svc := service.NewSecuenciaService(repository.NewSecuenciaRepository(kv))

	numero, err := siguiente(t, kv, svc)
	require.NoError(t, err)
	assert.Equal(t, "B-0001", numero)
}

func TestSecuenciaAgotada(t *testing.T) {
	kv := newMemKV()
	seedSecuencia(t, kv, 'Z', "9999")
	svc := service.NewSecuenciaService(repository.NewSecuenciaRepository(kv))

	_, err := siguiente(t, kv, svc)
	assert.ErrorIs(t, err, service.ErrSecuenciaAgotada)

	// Permanent: the counter stays at Z-9999 and keeps failing.
	_, err = siguiente(t, kv, svc)
	assert.ErrorIs(t, err, service.ErrSecuenciaAgotada)
	assert.Equal(t, []byte("9999"), kv.datos[store.ClaveUltimoNumero])
	assert.Equal(t, []byte{'Z'}, kv.datos[store.ClaveUltimaLetra])
}

func TestSecuenciaEstadoCorrupto(t *testing.T) {
	kv := newMemKV()
	seedSecuencia(t, kv, 'A', "no-es-numero")
	svc := service.NewSecuenciaService(repository.NewSecuenciaRepository(kv))

	_, err := siguiente(t, kv, svc)
	assert.Error(t, err)
}
