package controller_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contribuyenteModel "tributos_backend/internals/features/tributos/contribuyentes/model"
	"tributos_backend/internals/features/tributos/contribuyentes/repository"
	contribuyenteRoute "tributos_backend/internals/features/tributos/contribuyentes/route"
)

func setupApp(t *testing.T) (*fiber.App, *repository.InMemory) {
	t.Helper()

	store := repository.NewInMemory()
	app := fiber.New()
	contribuyenteRoute.ContribuyenteRoutes(app, store)

	require.NoError(t, store.Upsert(context.Background(), &contribuyenteModel.Contribuyente{
		ContribuyenteIdentificador: "12345678",
		ContribuyenteNombre:        "Juan Pérez",
		ContribuyenteMontoMensual:  decimal.NewFromInt(500),
		ContribuyenteTipoImpuesto:  "Tasa Retributiva",
	}))

	return app, store
}

func TestObtenerContribuyente(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/contribuyentes/12345678", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cuerpo, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(cuerpo, &out))
	assert.Equal(t, "Juan Pérez", out["contribuyente_nombre"])
	assert.Equal(t, "pendiente", out["contribuyente_estado_suscripcion"])
}

func TestObtenerContribuyenteInexistente(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/contribuyentes/99999999", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
