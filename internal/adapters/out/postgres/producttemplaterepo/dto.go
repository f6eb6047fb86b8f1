package producttemplaterepo

import (
	"fulfillment/internal/core/domain/model/product"
)

type ProductTemplateDTO struct {
	SKU                 string `gorm:"primaryKey"`
	Name                string `gorm:"not null"`
	Category            string
	PersonalizationType string `gorm:"type:varchar(16);not null"`
	Length              *float64
	Width               *float64
	Height              *float64
	Weight              *float64
	CanvaTemplateURL    *string
	SLABusinessDays     int  `gorm:"column:sla_business_days;not null;default:0"`
	IsActive            bool `gorm:"not null;default:true"`
}

func (ProductTemplateDTO) TableName() string {
	return "product_templates"
}

func fromDomain(t *product.Template) ProductTemplateDTO {
	d := t.Dimensions()
	return ProductTemplateDTO{
		SKU:                 t.SKU(),
		Name:                t.Name(),
		Category:            t.Category(),
		PersonalizationType: t.PersonalizationType().String(),
		Length:              d.Length,
		Width:               d.Width,
		Height:              d.Height,
		Weight:              d.Weight,
		CanvaTemplateURL:    t.CanvaTemplateURL(),
		SLABusinessDays:     t.SLABusinessDays(),
		IsActive:            t.IsActive(),
	}
}

func toDomain(dto ProductTemplateDTO) (*product.Template, error) {
	ptype, err := product.ParsePersonalizationType(dto.PersonalizationType)
	if err != nil {
		return nil, err
	}

	return product.NewTemplate(product.Params{
		SKU:                 dto.SKU,
		Name:                dto.Name,
		Category:            dto.Category,
		PersonalizationType: ptype,
		Dimensions: product.Dimensions{
			Length: dto.Length,
			Width:  dto.Width,
			Height: dto.Height,
			Weight: dto.Weight,
		},
		CanvaTemplateURL: dto.CanvaTemplateURL,
		SLABusinessDays:  dto.SLABusinessDays,
		IsActive:         dto.IsActive,
	})
}
