// Package classify assigns catalog categories to products by scoring their
// searchable text against a fixed keyword taxonomy.
package classify

import "strings"

// DefaultCategoryID is returned when no taxonomy keyword matches.
const DefaultCategoryID = "consumables"

type category struct {
	id       string
	keywords []string
}

// taxonomy is declared in priority order: on a score tie the earlier
// category wins. Keyword matching is case-insensitive substring matching
// against the concatenated name + description of a product.
var taxonomy = []category{
	{id: "equipment", keywords: []string{
		"dental chair", "chair unit", "compressor", "delivery unit",
		"operating light", "treatment unit", "micromotor", "scaler unit",
	}},
	{id: "diagnostic", keywords: []string{
		"mirror", "explorer", "probe", "caries detector", "pulp tester",
		"articulating paper", "diagnostic",
	}},
	{id: "endodontics", keywords: []string{
		"root canal", "endodontic", "gutta percha", "gutta-percha",
		"obturation", "apex locator", "reamer", "rotary file", "irrigation needle",
	}},
	{id: "orthodontics", keywords: []string{
		"bracket", "archwire", "orthodontic", "ligature", "elastic",
		"aligner", "band", "bonding tube",
	}},
	{id: "restorative", keywords: []string{
		"composite", "amalgam", "glass ionomer", "restorative", "filling",
		"bonding agent", "etchant", "matrix band", "curing light",
	}},
	{id: "prosthetics", keywords: []string{
		"denture", "crown", "bridge", "abutment", "implant", "veneer",
		"prosthetic", "impression material", "alginate",
	}},
	{id: "surgical", keywords: []string{
		"forceps", "elevator", "scalpel", "suture", "surgical", "extraction",
		"bone graft", "membrane", "retractor",
	}},
	{id: "periodontics", keywords: []string{
		"curette", "periodontal", "scaling", "root planing", "perio",
		"chlorhexidine gel",
	}},
	{id: "sterilization", keywords: []string{
		"autoclave", "sterilization", "sterilizer", "disinfectant",
		"ultrasonic cleaner", "sterilization pouch", "indicator strip",
	}},
	{id: "imaging", keywords: []string{
		"x-ray", "xray", "radiograph", "sensor", "panoramic", "cbct",
		"imaging", "film", "apron",
	}},
	{id: "anesthesia", keywords: []string{
		"anesthetic", "lidocaine", "articaine", "syringe", "needle",
		"topical gel", "carpule",
	}},
	{id: "laboratory", keywords: []string{
		"dental stone", "wax", "plaster", "lathe", "polishing",
		"laboratory", "model trimmer", "flask",
	}},
	{id: "hygiene", keywords: []string{
		"toothbrush", "floss", "mouthwash", "fluoride", "prophylaxis",
		"polishing paste", "whitening",
	}},
	{id: "disposables", keywords: []string{
		"gloves", "mask", "bib", "saliva ejector", "disposable",
		"cotton roll", "gauze", "cup",
	}},
	{id: "consumables", keywords: []string{
		"cement", "liner", "varnish", "temporary", "consumable",
	}},
}

// CategoryIDs returns the taxonomy's category identifiers in declaration
// order.
func CategoryIDs() []string {
	ids := make([]string, len(taxonomy))
	for i, c := range taxonomy {
		ids[i] = c.id
	}
	return ids
}

// Categorize scores text against every taxonomy entry and returns the id of
// the best-matching category. Each keyword counts at most once no matter how
// often it occurs. Ties resolve to the category declared first; a zero score
// everywhere yields DefaultCategoryID. Pure and deterministic.
func Categorize(text string) string {
	folded := strings.ToLower(text)

	best := 0
	winner := DefaultCategoryID
	for _, c := range taxonomy {
		score := 0
		for _, kw := range c.keywords {
			if strings.Contains(folded, kw) {
				score++
			}
		}
		if score > best {
			best = score
			winner = c.id
		}
	}
	return winner
}
