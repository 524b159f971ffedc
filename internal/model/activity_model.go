package model

import (
	"time"

	"github.com/google/uuid"
)

type Activity struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId     string    `gorm:"type:varchar(255);not null;index"`
	Kind       string    `gorm:"type:varchar(50);not null"`
	TemplateId *string   `gorm:"type:varchar(100)"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

func (Activity) TableName() string {
	return "session_activities"
}
