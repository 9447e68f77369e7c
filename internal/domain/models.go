package domain

import "time"

// DateLayout формат календарных дат (dueDate, createdDate, startDate, endDate)
const DateLayout = "2006-01-02"

// Doctor профиль врача, которого посещает MR
type Doctor struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"size:255;not null"`
	Type       string `json:"type" gorm:"size:64"`
	Specialty  string `json:"specialty" gorm:"size:128"`
	Phone      string `json:"phone" gorm:"size:32"`
	Email      string `json:"email" gorm:"size:255"`
	ClinicName string `json:"clinicName" gorm:"size:255"`
	Address    string `json:"address" gorm:"size:512"`
	City       string `json:"city" gorm:"size:128"`
	AssignedMR string `json:"assignedMR" gorm:"column:assigned_mr;size:255"`
	Notes      string `json:"notes" gorm:"type:text"`
	Status     string `json:"status" gorm:"size:32"`
}

// Product позиция каталога
type Product struct {
	ID       int64   `json:"id" gorm:"primaryKey"`
	Name     string  `json:"name" gorm:"size:255;not null"`
	Category string  `json:"category" gorm:"size:128"`
	Price    float64 `json:"price"`
	Stock    int64   `json:"stock"`
}

// TaskStatusPending статус, с которым создаётся любая задача
const TaskStatusPending = "pending"

// Task полевая задача MR
type Task struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:255;not null"`
	Type        string `json:"type" gorm:"size:64"`
	AssignedTo  string `json:"assignedTo" gorm:"size:255"`
	Priority    string `json:"priority" gorm:"size:32"`
	Status      string `json:"status" gorm:"size:32"`
	DueDate     string `json:"dueDate" gorm:"size:10"`
	Location    string `json:"location" gorm:"size:255"`
	Description string `json:"description" gorm:"type:text"`
	CreatedDate string `json:"createdDate" gorm:"size:10;index"`
}

// TargetStatusActive статус новой цели
const TargetStatusActive = "active"

// Target план продаж и визитов MR за период
type Target struct {
	ID                int64  `json:"id" gorm:"primaryKey"`
	MRName            string `json:"mrName" gorm:"column:mr_name;size:255;not null"`
	Period            string `json:"period" gorm:"size:64;not null"`
	SalesTarget       int    `json:"salesTarget"`
	SalesAchievement  int    `json:"salesAchievement"`
	VisitsTarget      int    `json:"visitsTarget"`
	VisitsAchievement int    `json:"visitsAchievement"`
	StartDate         string `json:"startDate" gorm:"size:10"`
	EndDate           string `json:"endDate" gorm:"size:10"`
	Status            string `json:"status" gorm:"size:32"`
}

const (
	UserRoleMR       = "MR"
	UserStatusActive = "ACTIVE"
)

// User учётная запись. PasswordHash никогда не отдаётся наружу.
type User struct {
	ID              int64      `json:"id" gorm:"primaryKey"`
	Name            string     `json:"name" gorm:"size:255;not null"`
	Email           string     `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash    string     `json:"-" gorm:"size:255"`
	Role            string     `json:"role" gorm:"size:32"`
	Territory       string     `json:"territory" gorm:"size:255"`
	Phone           string     `json:"phone" gorm:"size:32"`
	Status          string     `json:"status" gorm:"size:32"`
	AssignedManager string     `json:"assignedManager,omitempty" gorm:"size:255"`
	LastLogin       *time.Time `json:"lastLogin,omitempty"`
}

// MrStockItem строка складского журнала MR; ID это код продукта (P001 ...)
type MrStockItem struct {
	ID    string `json:"id" gorm:"primaryKey;size:32"`
	Name  string `json:"name" gorm:"size:255"`
	Stock int    `json:"stock" gorm:"not null;default:0"`
}

func (Doctor) TableName() string      { return "doctors" }
func (Product) TableName() string     { return "products" }
func (Task) TableName() string        { return "tasks" }
func (Target) TableName() string      { return "targets" }
func (User) TableName() string        { return "users" }
func (MrStockItem) TableName() string { return "mr_stock_items" }
