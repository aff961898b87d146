package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-admin/internal/application/analytics"
	"github.com/jhoicas/tienda-admin/internal/application/audit"
	"github.com/jhoicas/tienda-admin/internal/application/auth"
	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/application/usecase"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository/mocks"
	apphttp "github.com/jhoicas/tienda-admin/internal/interfaces/http"
)

type fakeUploader struct {
	mu      sync.Mutex
	n       int
	saved   []string
	removed []string
}

func (f *fakeUploader) Save(field, originalName string, r io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	url := fmt.Sprintf("/uploads/%s-%d.png", field, f.n)
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeUploader) Remove(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, url)
	return nil
}

type pdfStub struct{}

func (pdfStub) GenerateAdminLogReport(entries []*entity.AdminLogEntry) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

type apiFixture struct {
	app      *fiber.App
	store    *mocks.Store
	audit    *audit.Logger
	uploader *fakeUploader
	iconID   int64
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := mocks.NewStore()
	logger := audit.NewLogger(store.AdminLogs(), zerolog.Nop(), audit.Config{QueueSize: 64})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = logger.Close(ctx)
	})
	uploader := &fakeUploader{}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(store.Admins(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		CatalogUC:   usecase.NewCatalogUseCase(store.Categories(), store.Subcategories(), store.Icons(), logger),
		ShippingUC:  usecase.NewShippingUseCase(store.Shipping(), logger),
		AdminUC:     usecase.NewAdminUseCase(store.Admins(), logger).WithBcryptCost(bcrypt.MinCost),
		ProductUC:   usecase.NewProductUseCase(store.Products(), store.Subcategories(), store.TxRunner(), uploader, logger),
		AdminLogUC:  usecase.NewAdminLogUseCase(store.AdminLogs(), pdfStub{}),
		DashboardUC: analytics.NewDashboardUseCase(store.Dashboard()),
		Images:      uploader,
		JWTSecret:   testJWTSecret,
	})
	return &apiFixture{
		app:      app,
		store:    store,
		audit:    logger,
		uploader: uploader,
		iconID:   store.SeedIcon("tecnologia", "fa-laptop"),
	}
}

// do envía body como JSON con el token del rol indicado ("" sin token).
func (a *apiFixture) do(t *testing.T, method, path, role string, body any) (int, dto.ErrorResponse, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	return a.send(t, req)
}

func (a *apiFixture) send(t *testing.T, req *http.Request) (int, dto.ErrorResponse, []byte) {
	t.Helper()
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var e dto.ErrorResponse
	if resp.StatusCode >= 400 {
		require.NoError(t, json.Unmarshal(raw, &e), string(raw))
	}
	return resp.StatusCode, e, raw
}

func (a *apiFixture) createCategory(t *testing.T, name string) int64 {
	t.Helper()
	status, _, raw := a.do(t, http.MethodPost, "/api/categories", entity.RoleSuperAdmin,
		dto.CreateCategoryRequest{Name: name, Description: "desc " + name, IconID: a.iconID})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var out dto.IDResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out.ID
}

func (a *apiFixture) createSubcategory(t *testing.T, categoryID int64, name string) int64 {
	t.Helper()
	status, _, raw := a.do(t, http.MethodPost, "/api/subcategories", entity.RoleSuperAdmin,
		dto.CreateSubcategoryRequest{CategoryID: categoryID, Name: name})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var out dto.IDResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out.ID
}

func TestRouter_CategoriaCicloCompleto(t *testing.T) {
	api := newAPI(t)
	id := api.createCategory(t, "Tecnología")

	status, _, raw := api.do(t, http.MethodGet, "/api/categories", entity.RoleSuperAdmin, nil)
	require.Equal(t, http.StatusOK, status)
	var list dto.CategoryListResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Tecnología", list.Items[0].Name)
	assert.Equal(t, "fa-laptop", list.Items[0].IconClass)

	status, _, _ = api.do(t, http.MethodPut, fmt.Sprintf("/api/categories/%d", id), entity.RoleSuperAdmin,
		dto.UpdateCategoryRequest{Name: "Electrónica", Description: "nueva", IconID: api.iconID})
	assert.Equal(t, http.StatusOK, status)

	status, _, _ = api.do(t, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), entity.RoleSuperAdmin, nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestRouter_CategoriaDuplicada_409(t *testing.T) {
	api := newAPI(t)
	api.createCategory(t, "Hogar")

	status, e, _ := api.do(t, http.MethodPost, "/api/categories", entity.RoleSuperAdmin,
		dto.CreateCategoryRequest{Name: "Hogar", Description: "otra", IconID: api.iconID})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apphttp.CodeDuplicate, e.Code)
}

func TestRouter_CategoriaConSubcategorias_NoSeElimina(t *testing.T) {
	api := newAPI(t)
	catID := api.createCategory(t, "Deportes")
	api.createSubcategory(t, catID, "Fútbol")

	status, e, _ := api.do(t, http.MethodDelete, fmt.Sprintf("/api/categories/%d", catID), entity.RoleSuperAdmin, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apphttp.CodeHasDependents, e.Code)
}

func TestRouter_RutaHeredadaEliminaLaCategoria(t *testing.T) {
	api := newAPI(t)
	catID := api.createCategory(t, "Mascotas")

	status, _, _ := api.do(t, http.MethodDelete, fmt.Sprintf("/api/categories/%d/subcategories", catID), entity.RoleSuperAdmin, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _, _ = api.do(t, http.MethodPut, fmt.Sprintf("/api/categories/%d", catID), entity.RoleSuperAdmin,
		dto.UpdateCategoryRequest{Name: "Mascotas", Description: "x", IconID: api.iconID})
	assert.Equal(t, http.StatusNotFound, status, "la categoría ya no debe existir")
}

func TestRouter_ErroresDeEntrada(t *testing.T) {
	api := newAPI(t)

	t.Run("campos obligatorios", func(t *testing.T) {
		status, e, _ := api.do(t, http.MethodPost, "/api/categories", entity.RoleSuperAdmin,
			dto.CreateCategoryRequest{Description: "sin nombre", IconID: api.iconID})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apphttp.CodeValidation, e.Code)
	})

	t.Run("ícono inexistente", func(t *testing.T) {
		status, e, _ := api.do(t, http.MethodPost, "/api/categories", entity.RoleSuperAdmin,
			dto.CreateCategoryRequest{Name: "Ropa", Description: "x", IconID: 999})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "icon_id", e.Field)
	})

	t.Run("id no numérico", func(t *testing.T) {
		status, e, _ := api.do(t, http.MethodDelete, "/api/categories/abc", entity.RoleSuperAdmin, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "id", e.Field)
	})

	t.Run("cuerpo inválido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader([]byte("{no es json")))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		req.Header.Set("Authorization", tokenForRole(t, entity.RoleSuperAdmin))
		status, e, _ := api.send(t, req)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apphttp.CodeInvalidBody, e.Code)
	})

	t.Run("subcategoría inexistente", func(t *testing.T) {
		status, e, _ := api.do(t, http.MethodPut, "/api/subcategories/404", entity.RoleSuperAdmin,
			dto.RenameSubcategoryRequest{Name: "Nada"})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, apphttp.CodeNotFound, e.Code)
	})
}

func TestRouter_RBAC(t *testing.T) {
	api := newAPI(t)

	cases := []struct {
		name   string
		method string
		path   string
		role   string
		want   int
	}{
		{"admin no gestiona categorías", http.MethodGet, "/api/categories", entity.RoleAdmin, http.StatusForbidden},
		{"admin no gestiona envíos", http.MethodGet, "/api/shipping", entity.RoleAdmin, http.StatusForbidden},
		{"admin no gestiona administradores", http.MethodGet, "/api/admins", entity.RoleAdmin, http.StatusForbidden},
		{"admin no ve el registro", http.MethodGet, "/api/admin-logs", entity.RoleAdmin, http.StatusForbidden},
		{"admin lista productos", http.MethodGet, "/api/products", entity.RoleAdmin, http.StatusOK},
		{"admin ve el tablero", http.MethodGet, "/api/dashboard/summary", entity.RoleAdmin, http.StatusOK},
		{"superadmin ve íconos", http.MethodGet, "/api/icons", entity.RoleSuperAdmin, http.StatusOK},
		{"sin token", http.MethodGet, "/api/products", "", http.StatusUnauthorized},
		{"lookup público", http.MethodGet, "/api/subcategories/by-category/Nada", "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, raw := api.do(t, tc.method, tc.path, tc.role, nil)
			assert.Equal(t, tc.want, status, string(raw))
		})
	}
}

func TestRouter_Login(t *testing.T) {
	api := newAPI(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.MinCost)
	require.NoError(t, err)
	api.store.SeedAdmin("Root", "root@tienda.co", string(hash), entity.RoleSuperAdmin)

	status, _, raw := api.do(t, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: "ROOT@tienda.co", Password: "secreta123"})
	require.Equal(t, http.StatusOK, status, string(raw))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleSuperAdmin, out.Admin.Role)

	status, e, _ := api.do(t, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: "root@tienda.co", Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apphttp.CodeUnauthorized, e.Code)
}

func TestRouter_AuditoriaDeAcciones(t *testing.T) {
	api := newAPI(t)
	api.createCategory(t, "Libros")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, api.audit.Close(ctx))

	logs := api.store.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionCreate, logs[0].Action)
	assert.Equal(t, entity.TableCategories, logs[0].TableName)
	assert.Equal(t, testAdminID, logs[0].AdminID)
}

// productForm arma un multipart con los campos del producto y las imágenes pedidas.
// productForm arma el multipart de un producto; override reemplaza campos y
// un valor vacío omite el campo.
func productForm(t *testing.T, subID int64, withMain bool, extra int, override map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"subcategory_id": fmt.Sprint(subID),
		"name":           "Balón",
		"description":    "Balón número 5",
		"cost":           "25000.50",
		"price":          "39900",
		"stock":          "12",
	}
	for k, v := range override {
		fields[k] = v
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		require.NoError(t, w.WriteField(k, v))
	}
	png := []byte("\x89PNG\r\n\x1a\n")
	if withMain {
		fw, err := w.CreateFormFile("main_image", "principal.png")
		require.NoError(t, err)
		_, _ = fw.Write(png)
	}
	for i := 0; i < extra; i++ {
		fw, err := w.CreateFormFile("additional_images", fmt.Sprintf("extra%d.png", i))
		require.NoError(t, err)
		_, _ = fw.Write(png)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestRouter_ProductoMultipart(t *testing.T) {
	api := newAPI(t)
	catID := api.createCategory(t, "Deportes")
	subID := api.createSubcategory(t, catID, "Fútbol")

	t.Run("alta con imágenes", func(t *testing.T) {
		body, ct := productForm(t, subID, true, 2, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/products", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
		status, _, raw := api.send(t, req)
		require.Equal(t, http.StatusCreated, status, string(raw))

		var out dto.IDResponse
		require.NoError(t, json.Unmarshal(raw, &out))
		status, _, raw = api.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", out.ID), entity.RoleAdmin, nil)
		require.Equal(t, http.StatusOK, status)
		var p dto.ProductResponse
		require.NoError(t, json.Unmarshal(raw, &p))
		assert.Equal(t, "Balón", p.Name)
		assert.Equal(t, "39900", p.Price.String())
		assert.Len(t, p.Images, 3)
	})

	t.Run("sin imagen principal se rechaza y se descartan archivos", func(t *testing.T) {
		before := len(api.uploader.removed)
		body, ct := productForm(t, subID, false, 1, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/products", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
		status, e, _ := api.send(t, req)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "main_image", e.Field)
		assert.Len(t, api.uploader.removed, before+1)
	})

	t.Run("más de cuatro adicionales", func(t *testing.T) {
		body, ct := productForm(t, subID, true, 5, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/products", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
		status, e, _ := api.send(t, req)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "additional_images", e.Field)
	})
}

func TestRouter_ProductoCamposNumericos(t *testing.T) {
	api := newAPI(t)
	catID := api.createCategory(t, "Deportes")
	subID := api.createSubcategory(t, catID, "Fútbol")

	cases := []struct {
		name     string
		override map[string]string
		field    string
	}{
		{"sin precio", map[string]string{"price": ""}, "price"},
		{"sin costo", map[string]string{"cost": ""}, "cost"},
		{"sin stock", map[string]string{"stock": ""}, "stock"},
		{"sin subcategoría", map[string]string{"subcategory_id": ""}, "subcategory_id"},
		{"stock fuera de rango", map[string]string{"stock": "2147483648"}, "stock"},
		{"precio no numérico", map[string]string{"price": "gratis"}, "price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			live := len(api.uploader.saved) - len(api.uploader.removed)
			body, ct := productForm(t, subID, true, 0, tc.override)
			req := httptest.NewRequest(http.MethodPost, "/api/products", body)
			req.Header.Set("Content-Type", ct)
			req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
			status, e, raw := api.send(t, req)
			require.Equal(t, http.StatusBadRequest, status, string(raw))
			assert.Equal(t, apphttp.CodeValidation, e.Code)
			assert.Equal(t, tc.field, e.Field)
			assert.Equal(t, live, len(api.uploader.saved)-len(api.uploader.removed), "no deben quedar imágenes guardadas")
		})
	}

	status, _, raw := api.do(t, http.MethodGet, "/api/products", entity.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(raw), "Balón")
}

func TestRouter_FiltroDeSubcategoriasPorCategoria(t *testing.T) {
	api := newAPI(t)
	catID := api.createCategory(t, "Deportes")
	api.createSubcategory(t, catID, "Fútbol")

	for _, v := range []string{"abc", "-3", "0"} {
		t.Run(v, func(t *testing.T) {
			status, e, _ := api.do(t, http.MethodGet, "/api/subcategories?category_id="+v, entity.RoleSuperAdmin, nil)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "category_id", e.Field)
		})
	}

	status, _, raw := api.do(t, http.MethodGet, fmt.Sprintf("/api/subcategories?category_id=%d", catID), entity.RoleSuperAdmin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "Fútbol")
}

func TestRouter_ReporteDelRegistro(t *testing.T) {
	api := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/admin-logs/report.pdf", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleSuperAdmin))
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
}
