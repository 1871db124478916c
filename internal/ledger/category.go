package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"equipment-tracker/internal/entities"
	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/utils"
)

type NewCategory struct {
	Name             string
	Description      string
	ParentCategoryID *string
}

type CategoryPatch struct {
	Name             *string
	Description      *string
	ParentCategoryID *string
}

func (l *Ledger) AddCategory(ctx context.Context, in NewCategory) (entities.EquipmentCategory, error) {
	var created entities.EquipmentCategory
	err := l.run(ctx, func(t *tx) error {
		created = entities.EquipmentCategory{
			ID:               t.newID(),
			Name:             in.Name,
			Description:      in.Description,
			ParentCategoryID: in.ParentCategoryID,
		}
		own(t, KeyCategories, &t.st.categories)
		t.st.categories = append(t.st.categories, created.Clone())
		t.toast("Category Added", fmt.Sprintf("%s category has been created.", created.Name))
		return nil
	})
	return created, err
}

// UpdateCategory merges patch into the category. A new name is copied onto
// every equipment item that references the category.
func (l *Ledger) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (entities.EquipmentCategory, error) {
	var updated entities.EquipmentCategory
	err := l.run(ctx,
		func(t *tx) error {
			i := t.categoryIndex(id)
			if i < 0 {
				return fmt.Errorf("category %s: %w", id, apperrors.ErrNotFound)
			}
			category := t.st.categories[i]
			oldName := category.Name
			if patch.Name != nil {
				category.Name = *patch.Name
			}
			if patch.Description != nil {
				category.Description = *patch.Description
			}
			if patch.ParentCategoryID != nil {
				category.ParentCategoryID = utils.ToPtr(*patch.ParentCategoryID)
			}
			t.putCategory(i, category)
			updated = category.Clone()

			if category.Name != oldName {
				return t.apply(renameCategoryReferences(category, oldName))
			}
			return nil
		},
		func(t *tx) error {
			t.toast("Category Updated", "Category details have been updated.")
			return nil
		},
	)
	return updated, err
}

func renameCategoryReferences(category entities.EquipmentCategory, oldName string) effect {
	return func(t *tx) error {
		for i, item := range t.st.equipment {
			if !referencesCategory(item, category.ID, oldName) {
				continue
			}
			item.CategoryID = utils.ToPtr(category.ID)
			item.Category = category.Name
			t.putEquipment(i, item)
		}
		return nil
	}
}

// referencesCategory matches by id, and by name for items saved before ids were recorded.
func referencesCategory(item entities.Equipment, id, name string) bool {
	if item.CategoryID != nil {
		return *item.CategoryID == id
	}
	return name != "" && item.Category == name
}

// DeleteCategory refuses with ErrCategoryInUse while any equipment refers to
// the category by id or by name.
func (l *Ledger) DeleteCategory(ctx context.Context, id string) error {
	err := l.run(ctx, func(t *tx) error {
		i := t.categoryIndex(id)
		if i < 0 {
			return fmt.Errorf("category %s: %w", id, apperrors.ErrNotFound)
		}
		category := t.st.categories[i]
		for _, item := range t.st.equipment {
			if usesCategory(item, category) {
				return fmt.Errorf("category %s: %w", category.Name, apperrors.ErrCategoryInUse)
			}
		}
		own(t, KeyCategories, &t.st.categories)
		t.st.categories = slices.Delete(t.st.categories, i, i+1)
		t.toast("Category Deleted", "The category has been removed.")
		return nil
	})
	if errors.Is(err, apperrors.ErrCategoryInUse) {
		l.toast(ctx, entities.Toast{
			Title:       "Cannot Delete Category",
			Description: "This category is in use by one or more equipment items.",
			Variant:     entities.ToastDestructive,
		})
	}
	return err
}

func usesCategory(item entities.Equipment, category entities.EquipmentCategory) bool {
	if item.CategoryID != nil && *item.CategoryID == category.ID {
		return true
	}
	return category.Name != "" && item.Category == category.Name
}

func (l *Ledger) ListCategories() []entities.EquipmentCategory {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return entities.CloneAll(l.st.categories)
}

func (l *Ledger) GetCategoryByID(id string) (entities.EquipmentCategory, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, c := range l.st.categories {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return entities.EquipmentCategory{}, false
}
