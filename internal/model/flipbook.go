package model

import "github.com/haierkeys/flipbook-share-service/pkg/timex"

const TableNameFlipbook = "flipbook"

// Flipbook mapped from table <flipbook>
type Flipbook struct {
	ID         int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	Identifier string     `gorm:"column:identifier;not null;uniqueIndex:idx_identifier" json:"identifier" form:"identifier"`
	StorageURL string     `gorm:"column:storage_url;not null" json:"storageUrl" form:"storageUrl"`
	UploadedAt timex.Time `gorm:"column:uploaded_at;type:datetime;not null;index:idx_uploaded_at;autoCreateTime:false" json:"uploadedAt" form:"uploadedAt"`
	CreatedAt  timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt  timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Flipbook's table name
func (*Flipbook) TableName() string {
	return TableNameFlipbook
}
