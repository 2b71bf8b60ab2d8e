package models

// User represents an account owner.
type User struct {
	Base
	Email             string `gorm:"uniqueIndex;not null" json:"email"`
	Password          string `gorm:"not null" json:"-"`
	Name              string `json:"name"`
	IsActive          bool   `gorm:"default:true" json:"is_active"`
	InitialDataLoaded bool   `gorm:"default:false" json:"initial_data_loaded"`

	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
	Budgets      []Budget      `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
	Goals        []Goal        `gorm:"foreignKey:UserID" json:"goals,omitempty"`
	Categories   []Category    `gorm:"foreignKey:UserID" json:"categories,omitempty"`
}

// Deactivate marks the user as inactive. This is the only destructive user
// mutation; rows are never hard-deleted outside the maintenance path.
func (u *User) Deactivate() {
	u.IsActive = false
}

// MarkInitialDataLoaded flips the first-import flag. Idempotent.
func (u *User) MarkInitialDataLoaded() {
	u.InitialDataLoaded = true
}
