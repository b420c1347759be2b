package sqlite

import "PrizeKeeper/internal/model"

// prizeRow is the prizes table. Timestamps are epoch milliseconds and are
// written by the caller, not by gorm.
type prizeRow struct {
	ID       string `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	Category string `gorm:"not null"`
	Quantity int    `gorm:"not null"`
	Note     *string
	Created  int64      `gorm:"column:created_at;not null"`
	Updated  int64      `gorm:"column:updated_at;not null;index"`
	Images   []imageRow `gorm:"foreignKey:PrizeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (prizeRow) TableName() string { return "prizes" }

// imageRow keeps one inline image; position preserves the record's order.
type imageRow struct {
	PrizeID  string `gorm:"primaryKey"`
	Position int    `gorm:"primaryKey;autoIncrement:false"`
	ImageID  string `gorm:"column:image_id;not null"`
	Data     string `gorm:"not null"`
	Name     *string
}

func (imageRow) TableName() string { return "prize_images" }

func fromModel(p model.Prize) prizeRow {
	row := prizeRow{
		ID:       p.ID,
		Name:     p.Name,
		Category: string(p.Category),
		Quantity: p.Quantity,
		Created:  p.CreatedAt,
		Updated:  p.UpdatedAt,
	}
	if p.Note != nil {
		n := *p.Note
		row.Note = &n
	}
	for i, img := range p.Images {
		ir := imageRow{PrizeID: p.ID, Position: i, ImageID: img.ID, Data: img.Data}
		if img.Name != "" {
			name := img.Name
			ir.Name = &name
		}
		row.Images = append(row.Images, ir)
	}
	return row
}

func (row prizeRow) toModel() model.Prize {
	p := model.Prize{
		ID:        row.ID,
		Name:      row.Name,
		Category:  model.Category(row.Category),
		Quantity:  row.Quantity,
		CreatedAt: row.Created,
		UpdatedAt: row.Updated,
	}
	if row.Note != nil {
		n := *row.Note
		p.Note = &n
	}
	if len(row.Images) > 0 {
		p.Images = make([]model.PrizeImage, 0, len(row.Images))
		for _, ir := range row.Images {
			img := model.PrizeImage{ID: ir.ImageID, Data: ir.Data}
			if ir.Name != nil {
				img.Name = *ir.Name
			}
			p.Images = append(p.Images, img)
		}
	}
	return p
}
