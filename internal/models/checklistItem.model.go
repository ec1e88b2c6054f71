package models

import (
	"time"
)

type TaskScope string

const (
	TaskScopeEntry TaskScope = "entry"
	TaskScopeExit  TaskScope = "exit"
	TaskScopeBoth  TaskScope = "both"
)

// ValidTaskScope reports whether s is a known checklist scope.
func ValidTaskScope(s TaskScope) bool {
	switch s {
	case TaskScopeEntry, TaskScopeExit, TaskScopeBoth:
		return true
	}
	return false
}

// ChecklistItem is a catalog task definition used as a template for
// workorders. Workorders store completion state separately, keyed by item
// id, so deleting or editing an item never corrupts recorded history.
type ChecklistItem struct {
	ID        int       `gorm:"type:int;primaryKey;autoIncrement"     json:"id"`
	Title     string    `gorm:"type:varchar(255);not null"            json:"title"`
	Scope     TaskScope `gorm:"type:text;not null;default:'both'"     json:"scope"`
	Location  string    `gorm:"type:varchar(50);not null;default:'general'" json:"location"`
	IsActive  bool      `gorm:"type:bool;not null;default:true"       json:"is_active"`
	SortOrder int       `gorm:"type:int;not null;default:0"           json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime"                        json:"created_at"`
}

// AppliesTo reports whether the item belongs on the given tab; scope=both
// counts on both tabs.
func (i *ChecklistItem) AppliesTo(scope TaskScope) bool {
	return i.Scope == scope || i.Scope == TaskScopeBoth
}

// GroupedChecklists partitions active items by effective scope, then by
// location: tab (entry/exit) -> location -> items.
type GroupedChecklists map[TaskScope]map[string][]ChecklistItem
