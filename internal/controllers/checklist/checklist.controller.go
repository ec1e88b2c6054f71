package checklistController

import (
	"context"
	"errors"
	"strings"
	"villabook/config"
	"villabook/internal/database"
	. "villabook/internal/models"
	"villabook/internal/repositories"
	"villabook/internal/services"
	"villabook/pkg/logger"

	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type SaveItemRequest struct {
	ID        int       `json:"id,omitempty"`
	Title     string    `json:"title"`
	Scope     TaskScope `json:"scope"`
	Location  string    `json:"location"`
	IsActive  *bool     `json:"is_active,omitempty"`
	SortOrder int       `json:"sort_order"`
}

type ChecklistControllerInterface interface {
	List(ctx context.Context, includeInactive bool) ([]ChecklistItem, error)
	// Grouped returns active items partitioned by tab and location, the
	// shape the workorder UI renders directly.
	Grouped(ctx context.Context) (GroupedChecklists, error)
	Save(ctx context.Context, request *SaveItemRequest) (*ChecklistItem, error)
	Delete(ctx context.Context, id int) error
}

type ChecklistController struct {
	checklistRepo repositories.ChecklistRepository
	db            database.DB
	Config        config.Config
	log           logger.Logger
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) ChecklistControllerInterface {
	return &ChecklistController{
		checklistRepo: repos.Checklist,
		db:            db,
		Config:        config,
		log:           logger.New("checklistController"),
	}
}

func (c *ChecklistController) List(
	ctx context.Context,
	includeInactive bool,
) ([]ChecklistItem, error) {
	log := c.log.Function("List")

	items, err := c.checklistRepo.List(ctx, c.db.SQL, includeInactive)
	if err != nil {
		return nil, log.Err("failed to list checklist items", err)
	}

	return items, nil
}

func (c *ChecklistController) Grouped(ctx context.Context) (GroupedChecklists, error) {
	log := c.log.Function("Grouped")

	items, err := c.checklistRepo.List(ctx, c.db.SQL, false)
	if err != nil {
		return nil, log.Err("failed to list checklist items", err)
	}

	return GroupItems(items), nil
}

// GroupItems partitions items by tab and location. Items scoped "both" show
// up on the entry and exit tabs alike.
func GroupItems(items []ChecklistItem) GroupedChecklists {
	grouped := GroupedChecklists{
		TaskScopeEntry: make(map[string][]ChecklistItem),
		TaskScopeExit:  make(map[string][]ChecklistItem),
	}

	for _, item := range items {
		for _, tab := range []TaskScope{TaskScopeEntry, TaskScopeExit} {
			if item.AppliesTo(tab) {
				grouped[tab][item.Location] = append(grouped[tab][item.Location], item)
			}
		}
	}

	return grouped
}

func (c *ChecklistController) Save(
	ctx context.Context,
	request *SaveItemRequest,
) (*ChecklistItem, error) {
	log := c.log.Function("Save")

	if strings.TrimSpace(request.Title) == "" {
		return nil, log.ErrorWithType(ErrValidation, "title is required")
	}

	scope := request.Scope
	if scope == "" {
		scope = TaskScopeBoth
	}
	if !ValidTaskScope(scope) {
		return nil, log.ErrorWithType(ErrValidation, "unknown scope", "scope", string(scope))
	}

	location := strings.TrimSpace(strings.ToLower(request.Location))
	if location == "" {
		location = "general"
	}

	isActive := true
	if request.IsActive != nil {
		isActive = *request.IsActive
	}

	item := &ChecklistItem{
		ID:        request.ID,
		Title:     strings.TrimSpace(request.Title),
		Scope:     scope,
		Location:  location,
		IsActive:  isActive,
		SortOrder: request.SortOrder,
	}

	if _, err := c.checklistRepo.Save(ctx, c.db.SQL, item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "checklist item not found", "id", request.ID)
		}
		return nil, err
	}

	return item, nil
}

func (c *ChecklistController) Delete(ctx context.Context, id int) error {
	log := c.log.Function("Delete")

	deleted, err := c.checklistRepo.Delete(ctx, c.db.SQL, id)
	if err != nil {
		return err
	}
	if !deleted {
		return log.ErrorWithType(ErrNotFound, "checklist item not found", "id", id)
	}

	return nil
}
