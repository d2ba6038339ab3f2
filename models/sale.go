package models

type Sale struct {
	ID     string  `gorm:"primaryKey" json:"id"`
	Amount float64 `gorm:"not null" json:"amount"`
	Date   string  `gorm:"not null;index" json:"date"` // YYYY-MM-DD
}
