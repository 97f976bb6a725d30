package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const halProductList = `{
  "_embedded": {
    "productoList": [
      {"id": 1, "nombre": "Teclado", "descripcion": "Mecánico", "precio": 25990,
       "categorias": [{"id": 2, "nombre": "Periféricos"}], "imagen": "teclado.png", "stock": 12},
      {"id": 2, "nombre": "Mouse", "descripcion": "Inalámbrico", "precio": 9990,
       "categorias": [], "imagen": "mouse.png", "stock": 30}
    ]
  }
}`

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/productos", r.URL.Path)
		_, _ = w.Write([]byte(halProductList))
	}))
	defer srv.Close()

	products, err := NewClient(srv.URL).ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Teclado", products[0].Name)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(25990)))
	assert.Equal(t, "Periféricos", products[0].Categories[0].Name)
	assert.Equal(t, 12, products[0].Stock)
}

func TestListProductsUnexpectedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected": true}`))
	}))
	defer srv.Close()

	products, err := NewClient(srv.URL).ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestGetProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/productos/5", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":5,"nombre":"Monitor","precio":119990,"stock":4}`))
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL).GetProduct(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Monitor", p.Name)
	assert.Equal(t, 4, p.Stock)
}

func TestGetProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such product", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetProduct(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateProductSendsWireFormat(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":10,"nombre":"Audífonos","precio":15990,"stock":8}`))
	}))
	defer srv.Close()

	created, err := NewClient(srv.URL).CreateProduct(context.Background(), Product{
		Name:        "Audífonos",
		Description: "Over-ear",
		Price:       decimal.NewFromInt(15990),
		Stock:       8,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, "Audífonos", got["nombre"])
	assert.Equal(t, "Over-ear", got["descripcion"])
	assert.EqualValues(t, 15990, got["precio"])
}

func TestDeleteProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/productos/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, NewClient(srv.URL).DeleteProduct(context.Background(), 7))
}

func TestListCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/categorias", r.URL.Path)
		_, _ = w.Write([]byte(`{"_embedded":{"categoriaList":[{"id":1,"nombre":"Computación"}]}}`))
	}))
	defer srv.Close()

	cats, err := NewClient(srv.URL).ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Computación", cats[0].Name)
}

func TestSearchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/productos/buscar", r.URL.Path)
		require.Equal(t, "teclado gamer", r.URL.Query().Get("filtro"))
		_, _ = w.Write([]byte(`[{"id":1,"nombre":"Teclado Gamer","precio":39990,"stock":2}]`))
	}))
	defer srv.Close()

	products, err := NewClient(srv.URL).SearchProducts(context.Background(), "teclado gamer")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Teclado Gamer", products[0].Name)
}

func TestProductsGroupedByCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/productos/productos-agrupados-categoria", r.URL.Path)
		_, _ = w.Write([]byte(`[{"categoria":"Periféricos","productos":[{"id":1,"nombre":"Teclado"}]}]`))
	}))
	defer srv.Close()

	groups, err := NewClient(srv.URL).ProductsGroupedByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Periféricos", groups[0].Category)
	require.Len(t, groups[0].Products, 1)
	assert.Equal(t, "Teclado", groups[0].Products[0].Name)
}
