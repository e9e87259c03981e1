package pos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/application/pos"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
)

func TestLocalCart_AgregarDosVecesIncrementaCantidad(t *testing.T) {
	ctx := context.Background()
	cart := pos.NewLocalCart()
	p := producto(t, "P1", "Gaseosa", "10.00", 5)

	require.NoError(t, cart.AddLine(ctx, p))
	require.NoError(t, cart.AddLine(ctx, p))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	eqDec(t, "20.00", lines[0].Subtotal)
}

func TestLocalCart_TopeConsultivoDeStock(t *testing.T) {
	ctx := context.Background()
	cart := pos.NewLocalCart()
	p := producto(t, "P1", "Gaseosa", "10.00", 2)

	// El tercer agregar no tiene efecto: quantity ≤ stock.current.
	require.NoError(t, cart.AddLine(ctx, p))
	require.NoError(t, cart.AddLine(ctx, p))
	require.NoError(t, cart.AddLine(ctx, p))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestLocalCart_SinStockNoInserta(t *testing.T) {
	ctx := context.Background()
	cart := pos.NewLocalCart()

	require.NoError(t, cart.AddLine(ctx, producto(t, "P1", "Agotado", "10.00", 0)))

	assert.Empty(t, cart.Lines())
}

func TestLocalCart_CantidadCeroEliminaLinea(t *testing.T) {
	ctx := context.Background()
	cart := pos.NewLocalCart()
	require.NoError(t, cart.AddLine(ctx, producto(t, "P1", "Gaseosa", "10.00", 5)))

	require.NoError(t, cart.ChangeQuantity(ctx, "P1", -1))

	assert.Empty(t, cart.Lines())
}

func TestLocalCart_DeltaBajoCeroTambienElimina(t *testing.T) {
	ctx := context.Background()
	cart := pos.NewLocalCart()
	require.NoError(t, cart.AddLine(ctx, producto(t, "P1", "Gaseosa", "10.00", 5)))
	require.NoError(t, cart.AddLine(ctx, producto(t, "P1", "Gaseosa", "10.00", 5)))

	require.NoError(t, cart.ChangeQuantity(ctx, "P1", -5))

	assert.Empty(t, cart.Lines())
}

func TestLocalCart_CambiarCantidadDeLineaInexistente(t *testing.T) {
	ctx := context.Background()
	cart := pos.NewLocalCart()
	require.NoError(t, cart.AddLine(ctx, producto(t, "P1", "Gaseosa", "10.00", 5)))

	require.NoError(t, cart.ChangeQuantity(ctx, "NOEXISTE", 1))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestLocalCart_RemoveLineEsIdempotente(t *testing.T) {
	ctx := context.Background()
	cart := pos.NewLocalCart()
	require.NoError(t, cart.AddLine(ctx, producto(t, "P1", "Gaseosa", "10.00", 5)))

	require.NoError(t, cart.RemoveLine(ctx, "P1"))
	require.NoError(t, cart.RemoveLine(ctx, "P1"))

	assert.Empty(t, cart.Lines())
}

func TestLocalCart_OrdenDeInsercionYSubtotales(t *testing.T) {
	ctx := context.Background()
	cart := pos.NewLocalCart()

	require.NoError(t, cart.AddLine(ctx, producto(t, "P2", "Galleta", "1.50", 10)))
	require.NoError(t, cart.AddLine(ctx, producto(t, "P1", "Gaseosa", "10.00", 5)))
	require.NoError(t, cart.AddLine(ctx, producto(t, "P2", "Galleta", "1.50", 10)))
	require.NoError(t, cart.ChangeQuantity(ctx, "P1", 2))

	lines := cart.Lines()
	require.Len(t, lines, 2)
	// El orden de inserción se conserva aunque P1 se haya mutado después.
	assert.Equal(t, "P2", lines[0].ProductID)
	assert.Equal(t, "P1", lines[1].ProductID)

	// Invariantes: cantidad positiva y subtotal derivado en cada línea.
	for _, line := range lines {
		assert.Positive(t, line.Quantity)
		eqDec(t, entity.LineSubtotal(line.Quantity, line.UnitPrice).String(), line.Subtotal)
	}

	sum := cart.Summary()
	eqDec(t, "23.00", sum.Subtotal)
	eqDec(t, "4.14", sum.Tax)
	eqDec(t, "27.14", sum.Total)
}

func TestLocalCart_ClearVacia(t *testing.T) {
	ctx := context.Background()
	cart := pos.NewLocalCart()
	require.NoError(t, cart.AddLine(ctx, producto(t, "P1", "Gaseosa", "10.00", 5)))

	require.NoError(t, cart.Clear(ctx))

	assert.Empty(t, cart.Lines())
	eqDec(t, "0", cart.Summary().Total)
}
