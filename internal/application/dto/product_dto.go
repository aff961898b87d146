package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest campos de texto del formulario de producto (alta y edición).
type ProductRequest struct {
	SubcategoryID int64           `json:"subcategory_id" form:"subcategory_id" validate:"required,gt=0"`
	Name          string          `json:"name" form:"name" validate:"required,max=200"`
	Description   string          `json:"description" form:"description" validate:"required"`
	Cost          decimal.Decimal `json:"cost" form:"cost"`
	Price         decimal.Decimal `json:"price" form:"price"`
	Stock         int             `json:"stock" form:"stock" validate:"min=0,max=2147483647"`
}

// ProductFilterRequest filtros del listado de productos.
type ProductFilterRequest struct {
	PageRequest
	Search     string `query:"search"`
	CategoryID int64  `query:"category_id" validate:"min=0"`
	Stock      string `query:"stock" validate:"omitempty,oneof=low out"`
	Status     string `query:"status" validate:"omitempty,oneof=active inactive"`
}

// UploadedImage archivo ya almacenado que acompaña la petición.
type UploadedImage struct {
	URL string
}

// ProductImageResponse imagen de un producto.
type ProductImageResponse struct {
	ID     int64  `json:"id"`
	URL    string `json:"url"`
	IsMain bool   `json:"is_main"`
}

// ProductResponse salida de un producto con su jerarquía.
type ProductResponse struct {
	ID              int64                  `json:"id"`
	SubcategoryID   int64                  `json:"subcategory_id"`
	SubcategoryName string                 `json:"subcategory_name"`
	CategoryID      int64                  `json:"category_id"`
	CategoryName    string                 `json:"category_name"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	Cost            decimal.Decimal        `json:"cost"`
	Price           decimal.Decimal        `json:"price"`
	Stock           int                    `json:"stock"`
	IsActive        bool                   `json:"is_active"`
	MainImage       string                 `json:"main_image,omitempty"`
	Images          []ProductImageResponse `json:"images,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
