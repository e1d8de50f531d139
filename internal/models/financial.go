package models

type RecordType string

const (
	RecordIncome  RecordType = "income"
	RecordExpense RecordType = "expense"
)

func (t RecordType) Valid() bool {
	return t == RecordIncome || t == RecordExpense
}

type FinancialRecord struct {
	ID          int64      `json:"id" yaml:"id" gorm:"primaryKey"`
	PropertyID  int64      `json:"propertyId" yaml:"propertyId" gorm:"index"`
	Date        Date       `json:"date" yaml:"date"`
	Type        RecordType `json:"type" yaml:"type"`
	Amount      float64    `json:"amount" yaml:"amount"`
	Category    string     `json:"category" yaml:"category"`
	Description string     `json:"description" yaml:"description"`
}

// FinancialRecordView is a record joined with the name of its property.
// PropertyName is "Unknown" when PropertyID matches no property.
type FinancialRecordView struct {
	FinancialRecord `gorm:"embedded"`
	PropertyName    string `json:"propertyName"`
}

// FinancialFilter narrows the financial records listing. Zero values match everything.
type FinancialFilter struct {
	PropertyID int64
	Type       RecordType
}

type FinancialSummary struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetIncome     float64 `json:"net_income"`
}
