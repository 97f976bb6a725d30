package catalog

import "github.com/shopspring/decimal"

// productDTO is the productos API wire shape.
type productDTO struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Categorias  []Category      `json:"categorias"`
	Imagen      string          `json:"imagen"`
	Stock       int             `json:"stock"`
}

// embeddedProducts is the HAL envelope the productos API wraps list
// responses in.
type embeddedProducts struct {
	Embedded struct {
		ProductoList []productDTO `json:"productoList"`
	} `json:"_embedded"`
}

type embeddedCategories struct {
	Embedded struct {
		CategoriaList []Category `json:"categoriaList"`
	} `json:"_embedded"`
}

type groupDTO struct {
	Categoria string       `json:"categoria"`
	Productos []productDTO `json:"productos"`
}

func mapProduct(dto productDTO) Product {
	return Product{
		ID:          dto.ID,
		Name:        dto.Nombre,
		Description: dto.Descripcion,
		Price:       dto.Precio,
		Categories:  dto.Categorias,
		Image:       dto.Imagen,
		Stock:       dto.Stock,
	}
}

func mapProducts(dtos []productDTO) []Product {
	out := make([]Product, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, mapProduct(dto))
	}
	return out
}

func toDTO(p Product) productDTO {
	return productDTO{
		ID:          p.ID,
		Nombre:      p.Name,
		Descripcion: p.Description,
		Precio:      p.Price,
		Categorias:  p.Categories,
		Imagen:      p.Image,
		Stock:       p.Stock,
	}
}
