// Package catalog holds the fixed reference documents seeded before
// products: the category taxonomy nodes and the known vendors. IDs are
// assigned here, not by the store, so lookups within a run are
// deterministic.
package catalog

import (
	"github.com/samber/lo"

	"catalog-reseeder/internal/models"
)

type categorySpec struct {
	id   string
	en   string
	es   string
	icon string
}

// Categories returns the fixed taxonomy documents. The ids double as slugs
// and match the classifier's category identifiers.
func Categories() []models.Category {
	specs := []categorySpec{
		{"equipment", "Dental Equipment", "Equipos Dentales", "chair"},
		{"diagnostic", "Diagnostic Instruments", "Instrumentos de Diagnóstico", "search"},
		{"endodontics", "Endodontics", "Endodoncia", "activity"},
		{"orthodontics", "Orthodontics", "Ortodoncia", "align-center"},
		{"restorative", "Restorative Materials", "Materiales Restaurativos", "layers"},
		{"prosthetics", "Prosthetics & Implants", "Prótesis e Implantes", "box"},
		{"surgical", "Surgical Instruments", "Instrumentos Quirúrgicos", "scissors"},
		{"periodontics", "Periodontics", "Periodoncia", "droplet"},
		{"sterilization", "Sterilization & Infection Control", "Esterilización", "shield"},
		{"imaging", "Imaging & Radiology", "Imagenología", "camera"},
		{"anesthesia", "Anesthesia", "Anestesia", "thermometer"},
		{"laboratory", "Laboratory Supplies", "Laboratorio", "flask"},
		{"hygiene", "Oral Hygiene", "Higiene Oral", "smile"},
		{"disposables", "Disposables", "Desechables", "package"},
		{"consumables", "General Consumables", "Consumibles Generales", "grid"},
	}

	return lo.Map(specs, func(s categorySpec, _ int) models.Category {
		return models.Category{
			ID:          s.id,
			Slug:        s.id,
			Name:        map[string]string{"en": s.en, "es": s.es},
			Description: s.en,
			Icon:        s.icon,
			IsActive:    true,
		}
	})
}

// Vendors returns the fixed vendor documents.
func Vendors() []models.Vendor {
	return []models.Vendor{
		{
			ID:        "vendor-dentalpro",
			Name:      "DentalPro Supplies",
			Localized: map[string]string{"en": "DentalPro Supplies", "es": "Suministros DentalPro"},
			Email:     "sales@dentalpro.example",
			Phone:     "+1-555-0101",
			Slug:      "dentalpro-supplies",
			IsActive:  true,
		},
		{
			ID:        "vendor-ortholine",
			Name:      "OrthoLine Distribution",
			Localized: map[string]string{"en": "OrthoLine Distribution", "es": "Distribución OrthoLine"},
			Email:     "contact@ortholine.example",
			Phone:     "+1-555-0102",
			Slug:      "ortholine-distribution",
			IsActive:  true,
		},
		{
			ID:        "vendor-medident",
			Name:      "MediDent Group",
			Localized: map[string]string{"en": "MediDent Group", "es": "Grupo MediDent"},
			Email:     "info@medident.example",
			Phone:     "+1-555-0103",
			Slug:      "medident-group",
			IsActive:  true,
		},
	}
}
