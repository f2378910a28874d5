// Package store defines the persisted schema and database connection management.
package store

import (
	"time"
)

// Import log statuses.
const (
	ImportStatusSuccess = "success"
	ImportStatusPartial = "partial"
	ImportStatusFailed  = "failed"
)

// Owner is a property owner. Created on first sighting of a new name and
// never deleted by the pipeline.
type Owner struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time

	Properties     []Property      `gorm:"foreignKey:OwnerID"`
	MonthlyReports []MonthlyReport `gorm:"foreignKey:OwnerID"`
}

func (Owner) TableName() string { return "owners" }

// Property is a rental unit, unique per (owner, address).
type Property struct {
	ID              uint    `gorm:"primaryKey"`
	OwnerID         uint    `gorm:"not null;index:idx_properties_owner_address,unique"`
	Address         string  `gorm:"size:255;not null;index:idx_properties_owner_address,unique"`
	CurrentRent     float64 `gorm:"default:0"`
	SecurityDeposit float64 `gorm:"default:0"`
	IsActive        bool    `gorm:"default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Owner          Owner           `gorm:"foreignKey:OwnerID"`
	MonthlyRecords []PropertyMonth `gorm:"foreignKey:PropertyID"`
}

func (Property) TableName() string { return "properties" }

// MonthlyReport is one owner-level statement for one reporting period.
// At most one exists per (owner, period start, period end); that triple is
// the idempotence key for the whole pipeline.
type MonthlyReport struct {
	ID          uint      `gorm:"primaryKey"`
	OwnerID     uint      `gorm:"index;not null"`
	PeriodStart time.Time `gorm:"type:date;not null"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`

	PreviousBalance  float64 `gorm:"default:0"`
	Income           float64 `gorm:"default:0"`
	Expenses         float64 `gorm:"default:0"`
	MgmtFees         float64 `gorm:"default:0"`
	Total            float64 `gorm:"default:0"`
	Contributions    float64 `gorm:"default:0"`
	Draws            float64 `gorm:"default:0"`
	EndingBalance    float64 `gorm:"default:0"`
	PortfolioMinimum float64 `gorm:"default:0"`
	UnpaidBills      float64 `gorm:"default:0"`
	DueToOwner       float64 `gorm:"default:0"`

	SourceFile string    `gorm:"size:500"`
	ImportedAt time.Time `gorm:"autoCreateTime"`

	Owner          Owner           `gorm:"foreignKey:OwnerID"`
	PropertyMonths []PropertyMonth `gorm:"foreignKey:MonthlyReportID"`
}

func (MonthlyReport) TableName() string { return "monthly_reports" }

// PropertyMonth is one property's contribution to a MonthlyReport. Never
// updated after creation; re-imports are rejected at the report level.
type PropertyMonth struct {
	ID              uint `gorm:"primaryKey"`
	PropertyID      uint `gorm:"index;not null"`
	MonthlyReportID uint `gorm:"index;not null"`

	TotalIncome   float64 `gorm:"default:0"`
	TotalExpenses float64 `gorm:"default:0"`
	MgmtFees      float64 `gorm:"default:0"`
	Repairs       float64 `gorm:"default:0"`
	NOI           float64 `gorm:"column:noi;default:0"`

	// Stored derived ratios: NOI/income and expenses/income, 0 when income <= 0.
	NOIMargin    float64 `gorm:"column:noi_margin;default:0"`
	ExpenseRatio float64 `gorm:"default:0"`

	Property      Property      `gorm:"foreignKey:PropertyID"`
	MonthlyReport MonthlyReport `gorm:"foreignKey:MonthlyReportID"`
	Expenses      []Expense     `gorm:"foreignKey:PropertyMonthID"`
}

func (PropertyMonth) TableName() string { return "property_months" }

// Expense is one itemized charge line, immutable once created.
type Expense struct {
	ID              uint `gorm:"primaryKey"`
	PropertyMonthID uint `gorm:"index;not null"`

	Date        *time.Time `gorm:"type:date"`
	Vendor      string     `gorm:"size:255"`
	Description string     `gorm:"type:text"`
	Amount      float64    `gorm:"not null"`
	Category    string     `gorm:"size:100"`

	PropertyMonth PropertyMonth `gorm:"foreignKey:PropertyMonthID"`
}

func (Expense) TableName() string { return "expenses" }

// ImportLog records one ingestion attempt. It is always written, even on
// total failure, and is the only durable trace of failed attempts.
type ImportLog struct {
	ID              uint      `gorm:"primaryKey"`
	EmailID         string    `gorm:"size:255"`
	Filename        string    `gorm:"size:500"`
	Status          string    `gorm:"size:50"`
	RecordsImported int       `gorm:"default:0"`
	ErrorMessage    string    `gorm:"type:text"`
	Timestamp       time.Time `gorm:"autoCreateTime"`
}

func (ImportLog) TableName() string { return "import_logs" }
