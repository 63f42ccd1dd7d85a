package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Lecture struct {
	LectureID       string  `json:"lectureId"`
	LectureTitle    string  `json:"lectureTitle"`
	LectureDuration float64 `json:"lectureDuration"`
	LectureURL      string  `json:"lectureUrl"`
	IsPreviewFree   bool    `json:"isPreviewFree"`
	LectureOrder    int     `json:"lectureOrder"`
}

type Chapter struct {
	ChapterID      string    `json:"chapterId"`
	ChapterOrder   int       `json:"chapterOrder"`
	ChapterTitle   string    `json:"chapterTitle"`
	ChapterContent []Lecture `json:"chapterContent"`
}

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EducatorID  string    `gorm:"column:educator_id;type:varchar(64);not null;index" json:"educatorId"`
	Title       string    `gorm:"column:title;not null" json:"courseTitle"`
	Description string    `gorm:"column:description;type:text" json:"courseDescription"`
	Thumbnail   string    `gorm:"column:thumbnail" json:"courseThumbnail"`
	Price       float64   `gorm:"column:price;not null;default:0" json:"coursePrice"`
	// Discount is a percentage in [0, 100].
	Discount    int                         `gorm:"column:discount;not null;default:0" json:"discount"`
	IsPublished bool                        `gorm:"column:is_published;not null;default:true;index" json:"isPublished"`
	Content     datatypes.JSONSlice[Chapter] `gorm:"column:content" json:"courseContent,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (Course) TableName() string { return "course" }

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// DiscountedPrice is the amount charged at checkout, rounded to cents.
func (c *Course) DiscountedPrice() float64 {
	d := c.Discount
	if d < 0 {
		d = 0
	}
	if d > 100 {
		d = 100
	}
	cents := c.Price * 100 * float64(100-d) / 100
	return float64(int64(cents+0.5)) / 100
}

// RedactLockedLectures blanks the URL of every lecture that is not a free preview.
func (c *Course) RedactLockedLectures() {
	for i := range c.Content {
		for j := range c.Content[i].ChapterContent {
			if !c.Content[i].ChapterContent[j].IsPreviewFree {
				c.Content[i].ChapterContent[j].LectureURL = ""
			}
		}
	}
}
