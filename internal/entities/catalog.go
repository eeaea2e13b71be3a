package entities

import (
	"time"
)

type Book struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Title             string  `gorm:"index;size:512;not null" json:"title"`
	NumberOfPages     int     `json:"number_of_pages"`
	Extract           string  `gorm:"type:text" json:"extract,omitempty"`
	Summary           string  `gorm:"type:text" json:"summary,omitempty"`
	NameEditor        string  `gorm:"size:256" json:"name_editor,omitempty"`
	CoverImage        string  `gorm:"size:2048" json:"cover_image,omitempty"`
	YearOfPublication int     `json:"year_of_publication,omitempty"`
	AverageOfReviews  float64 `json:"average_of_reviews"`

	UserID     uint `gorm:"index;not null" json:"user_id"`
	CategoryID uint `gorm:"index;not null" json:"category_id"`
	AuthorID   uint `gorm:"index;not null" json:"author_id"`

	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Author   Author   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	Comments []Comment `gorm:"foreignKey:BookID" json:"comments,omitempty"`
	Notes    []Note    `gorm:"foreignKey:BookID" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Books     []Book    `gorm:"foreignKey:CategoryID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:256;not null" json:"name"`
	Firstname string    `gorm:"size:256;not null" json:"firstname"`
	Books     []Book    `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text" json:"content"`
	BookID  uint   `gorm:"index;not null" json:"book_id"`
	UserID  uint   `gorm:"index;not null" json:"user_id"`

	Book Book `gorm:"foreignKey:BookID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Note is a numeric review score a user leaves on a book.
type Note struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Value  float64 `gorm:"not null" json:"value"`
	BookID uint    `gorm:"index;not null" json:"book_id"`
	UserID uint    `gorm:"index;not null" json:"user_id"`

	Book Book `gorm:"foreignKey:BookID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (Book) TableName() string {
	return "books"
}

func (Category) TableName() string {
	return "categories"
}

func (Author) TableName() string {
	return "authors"
}

func (Comment) TableName() string {
	return "comments"
}

func (Note) TableName() string {
	return "notes"
}
