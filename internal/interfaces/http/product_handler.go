package http

import (
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/application/usecase"
	"github.com/jhoicas/tienda-admin/internal/domain"
)

// Campos de archivo del formulario de producto.
const (
	formMainImage        = "main_image"
	formAdditionalImages = "additional_images"
)

// ImageUploader guarda archivos subidos y devuelve su URL pública.
type ImageUploader interface {
	Save(field, originalName string, r io.Reader) (string, error)
	Remove(url string) error
}

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc     *usecase.ProductUseCase
	images ImageUploader
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, images ImageUploader) *ProductHandler {
	return &ProductHandler{uc: uc, images: images}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search       query  string  false  "Texto en nombre o descripción"
// @Param        category_id  query  int     false  "Categoría"
// @Param        stock        query  string  false  "low | out"
// @Param        status       query  string  false  "active | inactive"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var in dto.ProductFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return writeError(c, &domain.ValidationError{Field: "query", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto con imágenes
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        subcategory_id     formData  int     true   "Subcategoría"
// @Param        name               formData  string  true   "Nombre"
// @Param        description        formData  string  true   "Descripción"
// @Param        cost               formData  number  true   "Costo"
// @Param        price              formData  number  true   "Precio"
// @Param        stock              formData  int     true   "Stock"
// @Param        main_image         formData  file    true   "Imagen principal"
// @Param        additional_images  formData  file    false  "Hasta 4 imágenes adicionales"
// @Success      201  {object}  dto.IDResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	in, err := productForm(c)
	if err != nil {
		return writeError(c, err)
	}
	main, extra, saved, err := h.saveImages(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := h.uc.Create(c.UserContext(), GetActor(c), in, main, extra)
	if err != nil {
		h.discard(saved)
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// Update godoc
// @Summary      Editar producto (imágenes opcionales: si llega main_image se reemplazan todas)
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	in, err := productForm(c)
	if err != nil {
		return writeError(c, err)
	}
	main, extra, saved, err := h.saveImages(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Update(c.UserContext(), GetActor(c), id, in, main, extra); err != nil {
		h.discard(saved)
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Producto actualizado correctamente"})
}

// Deactivate godoc
// @Summary      Desactivar producto (baja lógica)
// @Tags         products
// @Security     Bearer
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/products/{id}/deactivate [post]
func (h *ProductHandler) Deactivate(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Deactivate(c.UserContext(), GetActor(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Producto desactivado correctamente"})
}

// Reactivate godoc
// @Summary      Reactivar producto
// @Tags         products
// @Security     Bearer
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/products/{id}/reactivate [post]
func (h *ProductHandler) Reactivate(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Reactivate(c.UserContext(), GetActor(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Producto reactivado correctamente"})
}

// productForm lee los campos de texto; los decimales se parsean a mano porque el
// decodificador de formularios de Fiber no conoce decimal.Decimal.
func productForm(c *fiber.Ctx) (dto.ProductRequest, error) {
	var in dto.ProductRequest
	var err error
	if in.SubcategoryID, err = formInt64(c, "subcategory_id"); err != nil {
		return in, err
	}
	in.Name = c.FormValue("name")
	in.Description = c.FormValue("description")
	if in.Cost, err = formDecimal(c, "cost"); err != nil {
		return in, err
	}
	if in.Price, err = formDecimal(c, "price"); err != nil {
		return in, err
	}
	stock, err := formInt64(c, "stock")
	if err != nil {
		return in, err
	}
	in.Stock = int(stock)
	return in, nil
}

// formInt64 y formDecimal tratan el campo como obligatorio: vacío no equivale a cero.
func formInt64(c *fiber.Ctx, field string) (int64, error) {
	v := strings.TrimSpace(c.FormValue(field))
	if v == "" {
		return 0, requiredField(field)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &domain.ValidationError{Field: field, Message: field + " debe ser un número entero"}
	}
	return n, nil
}

func formDecimal(c *fiber.Ctx, field string) (decimal.Decimal, error) {
	v := strings.TrimSpace(c.FormValue(field))
	if v == "" {
		return decimal.Zero, requiredField(field)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, &domain.ValidationError{Field: field, Message: field + " debe ser un número"}
	}
	return d, nil
}

func requiredField(field string) error {
	return &domain.ValidationError{Field: field, Message: "el campo " + field + " es obligatorio"}
}

// saveImages guarda main_image y additional_images. saved lista todo lo escrito en disco
// para poder descartarlo si el caso de uso rechaza la operación.
func (h *ProductHandler) saveImages(c *fiber.Ctx) (main *dto.UploadedImage, extra []dto.UploadedImage, saved []string, err error) {
	form, ferr := c.MultipartForm()
	if ferr != nil {
		// sin multipart no hay imágenes; el caso de uso decide si eran obligatorias
		return nil, nil, nil, nil
	}
	if files := form.File[formMainImage]; len(files) > 0 {
		url, err := h.saveOne(formMainImage, files[0])
		if err != nil {
			return nil, nil, saved, err
		}
		saved = append(saved, url)
		main = &dto.UploadedImage{URL: url}
	}
	additional := form.File[formAdditionalImages]
	if len(additional) > usecase.MaxAdditionalImages {
		h.discard(saved)
		return nil, nil, nil, &domain.ValidationError{Field: formAdditionalImages, Message: "máximo 4 imágenes adicionales"}
	}
	for _, fh := range additional {
		url, err := h.saveOne(formAdditionalImages, fh)
		if err != nil {
			h.discard(saved)
			return nil, nil, nil, err
		}
		saved = append(saved, url)
		extra = append(extra, dto.UploadedImage{URL: url})
	}
	return main, extra, saved, nil
}

func (h *ProductHandler) saveOne(field string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", &domain.ValidationError{Field: field, Message: "no se pudo leer la imagen"}
	}
	defer f.Close()
	return h.images.Save(field, fh.Filename, f)
}

func (h *ProductHandler) discard(urls []string) {
	for _, u := range urls {
		_ = h.images.Remove(u)
	}
}
