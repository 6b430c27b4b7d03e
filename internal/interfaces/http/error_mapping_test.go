package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-retail/internal/application/dto"
	"github.com/tu-usuario/pos-retail/internal/domain"
)

// respondWith monta una ruta que devuelve el error dado vía writeError.
func respondWith(t *testing.T, err error) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return writeError(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, reqErr)
	t.Cleanup(func() { resp.Body.Close() })

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

// Un error no clasificado (fallo de infraestructura) nunca debe llegar al
// cliente con su detalle: el DSN de una conexión fallida incluye credenciales.
func TestWriteError_InternoNoFiltraDetalle(t *testing.T) {
	infraErr := errors.New("pgx: connect failed dsn=postgres://user:hunter2@db/pos")
	resp, body := respondWith(t, infraErr)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Equal(t, "error interno del servidor", body.Message)
	assert.NotContains(t, body.Message, "hunter2")
	assert.NotContains(t, body.Message, "dsn=")
}

func TestWriteError_ConflictosMapeanA409(t *testing.T) {
	cases := map[string]struct {
		err  error
		code string
	}{
		"devolución duplicada": {domain.ErrDuplicateReturn, "DUPLICATE_RETURN"},
		"carrera perdida":      {&domain.StockDiscrepancyError{Product: "Queso"}, "STOCK_DISCREPANCY"},
		"stock insuficiente":   {&domain.InsufficientStockError{Product: "Pan", Available: 1, Requested: 3}, "INSUFFICIENT_STOCK"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp, body := respondWith(t, tc.err)
			assert.Equal(t, http.StatusConflict, resp.StatusCode)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestWriteError_ValidacionConservaSuMensaje(t *testing.T) {
	resp, body := respondWith(t, &domain.ValidationError{Line: 2, Msg: "la cantidad debe ser un entero positivo"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Message, "la cantidad debe ser un entero positivo")
}
