package model

// swagger:model User
type User struct {
	BaseModel
	FullName string `gorm:"size:100;not null" json:"fullName"`
	Mobile   string `gorm:"size:20;not null" json:"mobile"`
	Email    string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:60;not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}
