package model

import (
	"strings"

	"github.com/google/uuid"
)

// Category — категория приза. Набор фиксированный, но неизвестные значения
// принимаются и сохраняются как есть.
type Category string

const (
	CategoryFigure        Category = "Figure"
	CategoryPlush         Category = "Plush"
	CategoryKeychain      Category = "Keychain"
	CategoryMiscellaneous Category = "Miscellaneous"
	CategoryOther         Category = "Other"
)

// DefaultCategory is used when the form leaves the category empty.
const DefaultCategory = CategoryOther

// MaxImages caps the number of images attached to one prize.
const MaxImages = 10

// Categories returns the known categories in display order.
func Categories() []Category {
	return []Category{
		CategoryFigure,
		CategoryPlush,
		CategoryKeychain,
		CategoryMiscellaneous,
		CategoryOther,
	}
}

// Known reports whether c belongs to the fixed category set.
func (c Category) Known() bool {
	for _, k := range Categories() {
		if k == c {
			return true
		}
	}
	return false
}

// PrizeImage is an image stored inline as a data URI.
type PrizeImage struct {
	ID   string `json:"id" validate:"required"`
	Data string `json:"data" validate:"required,startswith=data:"`
	Name string `json:"name,omitempty"`
}

// Prize is a single inventory record.
// Timestamps are epoch milliseconds.
type Prize struct {
	ID        string       `json:"id" validate:"required"`
	Name      string       `json:"name" validate:"required"`
	Category  Category     `json:"category"`
	Quantity  int          `json:"quantity" validate:"gte=0,lte=2147483647"`
	Note      *string      `json:"note,omitempty"`
	Images    []PrizeImage `json:"images,omitempty" validate:"omitempty,max=10,dive"`
	CreatedAt int64        `json:"createdAt"`
	UpdatedAt int64        `json:"updatedAt" validate:"gtefield=CreatedAt"`
}

// NoteText returns the note or an empty string when it is absent.
func (p Prize) NoteText() string {
	if p.Note == nil {
		return ""
	}
	return *p.Note
}

// Clone returns a deep copy so snapshot readers never share slices with the owner.
func (p Prize) Clone() Prize {
	out := p
	if p.Note != nil {
		n := *p.Note
		out.Note = &n
	}
	if p.Images != nil {
		out.Images = make([]PrizeImage, len(p.Images))
		copy(out.Images, p.Images)
	}
	return out
}

// Draft is the candidate record produced by the edit form.
// ID is empty when creating a new prize; CreatedAt is carried over from the
// record being edited (0 for a new one).
type Draft struct {
	ID        string
	Name      string
	Category  Category
	Quantity  int
	Note      string
	Images    []PrizeImage
	CreatedAt int64
}

// Normalize trims text fields, coerces quantity and collapses empty optionals.
func (d Draft) Normalize() Draft {
	d.ID = strings.TrimSpace(d.ID)
	d.Name = strings.TrimSpace(d.Name)
	d.Note = strings.TrimSpace(d.Note)
	d.Quantity = NormalizeQuantity(d.Quantity)
	if d.CreatedAt < 0 {
		d.CreatedAt = 0
	}
	if strings.TrimSpace(string(d.Category)) == "" {
		d.Category = DefaultCategory
	}
	if len(d.Images) == 0 {
		d.Images = nil
	}
	return d
}

// Build turns a normalized draft into a record with the given identity and timestamps.
func (d Draft) Build(id string, createdAt, updatedAt int64) Prize {
	d = d.Normalize()
	p := Prize{
		ID:        id,
		Name:      d.Name,
		Category:  d.Category,
		Quantity:  d.Quantity,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	if d.Note != "" {
		note := d.Note
		p.Note = &note
	}
	if len(d.Images) > 0 {
		p.Images = make([]PrizeImage, len(d.Images))
		copy(p.Images, d.Images)
	}
	return p
}

// DraftOf returns a draft pre-filled from an existing prize (edit form).
func DraftOf(p Prize) Draft {
	d := Draft{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Quantity:  p.Quantity,
		Note:      p.NoteText(),
		CreatedAt: p.CreatedAt,
	}
	if len(p.Images) > 0 {
		d.Images = make([]PrizeImage, len(p.Images))
		copy(d.Images, p.Images)
	}
	return d
}

// AppendImages concatenates image lists, silently dropping anything past MaxImages.
func AppendImages(existing, added []PrizeImage) []PrizeImage {
	out := make([]PrizeImage, 0, len(existing)+len(added))
	out = append(out, existing...)
	out = append(out, added...)
	if len(out) > MaxImages {
		out = out[:MaxImages]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// NewID generates a time-ordered random identifier (UUIDv7).
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
