package models

// GalleryItem is one saved design in the artist's personal gallery. The
// primary key is assigned by the store on insert and is monotonically
// increasing, so insertion order is always recoverable from the id.
type GalleryItem struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Image string `gorm:"type:text;not null" json:"image"`
}
