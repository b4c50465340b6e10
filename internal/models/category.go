package models

import "github.com/google/uuid"

// CategorySection определяет раздел каталога, к которому относится категория
type CategorySection string

const (
	SectionShops    CategorySection = "shops"
	SectionTemples  CategorySection = "temples"
	SectionTourism  CategorySection = "tourism"
	SectionServices CategorySection = "services"
	SectionAds      CategorySection = "ads"
)

// Category представляет категорию каталога.
// NameLocal — название на местном языке для двуязычного интерфейса.
type Category struct {
	ID        uuid.UUID       `json:"id"`
	Section   CategorySection `json:"section"`
	Name      string          `json:"name"`
	NameLocal string          `json:"name_local,omitempty"`
	Position  int             `json:"position"`
}

// SubCategory представляет подкатегорию внутри категории
type SubCategory struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	NameLocal  string    `json:"name_local,omitempty"`
	Position   int       `json:"position"`
}
