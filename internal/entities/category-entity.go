package entities

type EquipmentCategory struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	ParentCategoryID *string `json:"parent_category_id,omitempty"`
}
