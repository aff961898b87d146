package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/tienda-admin/internal/application/audit"
	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/application/validation"
	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

// MaxAdditionalImages imágenes adicionales permitidas además de la principal.
const MaxAdditionalImages = 4

// ProductUseCase administración de productos. Los productos no se eliminan: se desactivan.
type ProductUseCase struct {
	repo          repository.ProductRepository
	subcategories repository.SubcategoryRepository
	tx            ProductTxRunner
	images        ImageStore
	audit         audit.Recorder
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	subcategories repository.SubcategoryRepository,
	tx ProductTxRunner,
	images ImageStore,
	recorder audit.Recorder,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, subcategories: subcategories, tx: tx, images: images, audit: recorder}
}

// List listado paginado con filtros de búsqueda, categoría, stock y estado.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductFilterRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	filter := entity.ProductFilter{
		Search: strings.TrimSpace(in.Search),
		Stock:  in.Stock,
		Status: in.Status,
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if in.CategoryID > 0 {
		id := in.CategoryID
		filter.CategoryID = &id
	}
	items, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, domain.AsStoreError("listar productos", err)
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, p := range items {
		out.Items = append(out.Items, toProductResponse(p))
	}
	return out, nil
}

// GetByID detalle del producto con imágenes.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, domain.AsStoreError("obtener producto", err)
	}
	if p == nil {
		return nil, &domain.NotFoundError{Entity: entity.TableProducts, ID: id}
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// Create crea un producto activo con su imagen principal (obligatoria) y hasta cuatro adicionales.
// Producto e imágenes se persisten en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, actor entity.Actor, in dto.ProductRequest, main *dto.UploadedImage, extra []dto.UploadedImage) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validateProduct(in, extra); err != nil {
		return 0, err
	}
	if main == nil {
		return 0, &domain.ValidationError{Field: "main_image", Message: "la imagen principal es obligatoria"}
	}
	if err := uc.requireSubcategory(ctx, in.SubcategoryID); err != nil {
		return 0, err
	}

	product := &entity.Product{
		SubcategoryID: in.SubcategoryID,
		Name:          in.Name,
		Description:   in.Description,
		Cost:          in.Cost,
		Price:         in.Price,
		Stock:         in.Stock,
		IsActive:      true,
	}
	var id int64
	err := uc.tx.RunProducts(ctx, func(products repository.ProductRepository) error {
		var err error
		id, err = products.Create(ctx, product)
		if err != nil {
			return err
		}
		return products.AddImages(ctx, id, toImages(main, extra))
	})
	if err != nil {
		return 0, domain.AsStoreError("crear producto", err)
	}

	uc.audit.Record(audit.Entry(actor, entity.ActionCreate, entity.TableProducts, id,
		fmt.Sprintf("Agregó el producto: %s", in.Name)))
	return id, nil
}

// Update edita los datos del producto. Si llega una imagen principal nueva, las imágenes se
// reemplazan y los archivos anteriores se borran después del commit.
func (uc *ProductUseCase) Update(ctx context.Context, actor entity.Actor, id int64, in dto.ProductRequest, main *dto.UploadedImage, extra []dto.UploadedImage) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Required("id", id); err != nil {
		return err
	}
	if err := validateProduct(in, extra); err != nil {
		return err
	}
	if main == nil && len(extra) > 0 {
		return &domain.ValidationError{Field: "main_image", Message: "para reemplazar las imágenes se requiere la imagen principal"}
	}

	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.AsStoreError("obtener producto", err)
	}
	if current == nil {
		return &domain.NotFoundError{Entity: entity.TableProducts, ID: id}
	}
	if err := uc.requireSubcategory(ctx, in.SubcategoryID); err != nil {
		return err
	}

	current.SubcategoryID = in.SubcategoryID
	current.Name = in.Name
	current.Description = in.Description
	current.Cost = in.Cost
	current.Price = in.Price
	current.Stock = in.Stock

	var replaced []string
	err = uc.tx.RunProducts(ctx, func(products repository.ProductRepository) error {
		if err := products.Update(ctx, current); err != nil {
			return err
		}
		if main == nil {
			return nil
		}
		var err error
		replaced, err = products.ReplaceImages(ctx, id, toImages(main, extra))
		return err
	})
	if err != nil {
		return domain.AsStoreError("actualizar producto", err)
	}
	uc.removeFiles(replaced)

	uc.audit.Record(audit.Entry(actor, entity.ActionUpdate, entity.TableProducts, id,
		fmt.Sprintf("Editó el producto: %s", in.Name)))
	return nil
}

// Deactivate oculta el producto de la tienda sin borrarlo.
func (uc *ProductUseCase) Deactivate(ctx context.Context, actor entity.Actor, id int64) error {
	return uc.setActive(ctx, actor, id, false)
}

// Reactivate vuelve a publicar un producto desactivado.
func (uc *ProductUseCase) Reactivate(ctx context.Context, actor entity.Actor, id int64) error {
	return uc.setActive(ctx, actor, id, true)
}

func (uc *ProductUseCase) setActive(ctx context.Context, actor entity.Actor, id int64, active bool) error {
	if err := validation.Required("id", id); err != nil {
		return err
	}
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.AsStoreError("obtener producto", err)
	}
	if current == nil {
		return &domain.NotFoundError{Entity: entity.TableProducts, ID: id}
	}
	if err := uc.repo.SetActive(ctx, id, active); err != nil {
		return domain.AsStoreError("cambiar estado del producto", err)
	}

	action, verb := entity.ActionDeactivate, "Desactivó"
	if active {
		action, verb = entity.ActionReactivate, "Reactivó"
	}
	uc.audit.Record(audit.Entry(actor, action, entity.TableProducts, id,
		fmt.Sprintf("%s el producto: %s", verb, current.Name)))
	return nil
}

func (uc *ProductUseCase) requireSubcategory(ctx context.Context, id int64) error {
	sub, err := uc.subcategories.GetByID(ctx, id)
	if err != nil {
		return domain.AsStoreError("obtener subcategoría", err)
	}
	if sub == nil {
		return &domain.ValidationError{Field: "subcategory_id", Message: "la subcategoría no existe"}
	}
	return nil
}

// removeFiles borra archivos reemplazados. Un fallo deja un archivo huérfano, no afecta la operación.
func (uc *ProductUseCase) removeFiles(urls []string) {
	if uc.images == nil {
		return
	}
	for _, u := range urls {
		_ = uc.images.Remove(u)
	}
}

func validateProduct(in dto.ProductRequest, extra []dto.UploadedImage) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if err := validation.NonNegative("cost", in.Cost); err != nil {
		return err
	}
	if err := validation.NonNegative("price", in.Price); err != nil {
		return err
	}
	if len(extra) > MaxAdditionalImages {
		return &domain.ValidationError{
			Field:   "additional_images",
			Message: fmt.Sprintf("máximo %d imágenes adicionales", MaxAdditionalImages),
		}
	}
	return nil
}

func toImages(main *dto.UploadedImage, extra []dto.UploadedImage) []entity.ProductImage {
	images := make([]entity.ProductImage, 0, 1+len(extra))
	images = append(images, entity.ProductImage{URL: main.URL, IsMain: true})
	for _, e := range extra {
		images = append(images, entity.ProductImage{URL: e.URL})
	}
	return images
}

func toProductResponse(p *entity.ProductDetail) dto.ProductResponse {
	out := dto.ProductResponse{
		ID:              p.ID,
		SubcategoryID:   p.SubcategoryID,
		SubcategoryName: p.SubcategoryName,
		CategoryID:      p.CategoryID,
		CategoryName:    p.CategoryName,
		Name:            p.Name,
		Description:     p.Description,
		Cost:            p.Cost,
		Price:           p.Price,
		Stock:           p.Stock,
		IsActive:        p.IsActive,
		MainImage:       p.MainImage,
		CreatedAt:       p.CreatedAt,
	}
	for _, img := range p.Images {
		out.Images = append(out.Images, dto.ProductImageResponse{ID: img.ID, URL: img.URL, IsMain: img.IsMain})
	}
	return out
}
