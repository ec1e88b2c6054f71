package repositories

import (
	"context"
	. "villabook/internal/models"
	"villabook/pkg/logger"

	"gorm.io/gorm"
)

type ChecklistRepository interface {
	List(ctx context.Context, tx *gorm.DB, includeInactive bool) ([]ChecklistItem, error)
	// Save upserts by id: id present updates, id zero inserts. Returns the
	// item id either way.
	Save(ctx context.Context, tx *gorm.DB, item *ChecklistItem) (int, error)
	Delete(ctx context.Context, tx *gorm.DB, id int) (bool, error)
}

type checklistRepository struct{}

func NewChecklistRepository() ChecklistRepository {
	return &checklistRepository{}
}

func (r *checklistRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	includeInactive bool,
) ([]ChecklistItem, error) {
	log := logger.NewWithContext(ctx, "checklistRepository").Function("List")

	query := tx.WithContext(ctx)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var items []ChecklistItem
	if err := query.
		Order("location ASC, sort_order ASC, title ASC").
		Find(&items).Error; err != nil {
		return nil, log.Err("failed to list checklist items", err)
	}

	return items, nil
}

func (r *checklistRepository) Save(
	ctx context.Context,
	tx *gorm.DB,
	item *ChecklistItem,
) (int, error) {
	log := logger.NewWithContext(ctx, "checklistRepository").Function("Save")

	if item.ID > 0 {
		result := tx.WithContext(ctx).
			Model(&ChecklistItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]any{
				"title":      item.Title,
				"scope":      item.Scope,
				"location":   item.Location,
				"is_active":  item.IsActive,
				"sort_order": item.SortOrder,
			})
		if result.Error != nil {
			return 0, log.Err("failed to update checklist item", result.Error, "itemID", item.ID)
		}
		if result.RowsAffected == 0 {
			return 0, gorm.ErrRecordNotFound
		}

		log.Info("Checklist item updated", "itemID", item.ID)
		return item.ID, nil
	}

	if err := tx.WithContext(ctx).Create(item).Error; err != nil {
		return 0, log.Err("failed to create checklist item", err, "title", item.Title)
	}

	log.Info("Checklist item created", "itemID", item.ID, "title", item.Title)
	return item.ID, nil
}

func (r *checklistRepository) Delete(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	log := logger.NewWithContext(ctx, "checklistRepository").Function("Delete")

	result := tx.WithContext(ctx).Delete(&ChecklistItem{}, id)
	if result.Error != nil {
		return false, log.Err("failed to delete checklist item", result.Error, "itemID", id)
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	log.Info("Checklist item deleted", "itemID", id)
	return true, nil
}
