package models

type Link struct {
	DatedModel
	URL         string `gorm:"type:varchar(200);not null" json:"url"`
	Description string `gorm:"type:text" json:"description"`
	PostedByID  *uint  `gorm:"index" json:"posted_by_id"`
	PostedBy    *User  `gorm:"foreignKey:PostedByID" json:"posted_by,omitempty"`
}
