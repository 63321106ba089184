// internal/models/taxonomy.go
package models

// Sector is a top-level browsing category. Many brands reference one sector.
type Sector struct {
	BaseModel
	Name  string `json:"name" gorm:"size:120;not null"`
	Slug  string `json:"slug" gorm:"uniqueIndex;size:140;not null"`
	Color string `json:"color" gorm:"size:20"`
	Icon  string `json:"icon" gorm:"size:60"`
}

// Region is a French administrative region with its center coordinates.
type Region struct {
	BaseModel
	Name      string  `json:"name" gorm:"size:120;not null"`
	Slug      string  `json:"slug" gorm:"uniqueIndex;size:140;not null"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Label is a certification mark (e.g. "Origine France Garantie") attached to
// brands through the brand_labels join.
type Label struct {
	BaseModel
	Name string `json:"name" gorm:"size:120;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:140;not null"`
}
