package model

import "time"

type Booking struct {
	UUID       string    `db:"uuid" json:"uuid"`
	AuthorUUID string    `db:"author_uuid" json:"author_uuid"`
	FieldUUID  string    `db:"field_uuid" json:"field_uuid"`
	Date       string    `db:"date" json:"date"`
	Code       string    `db:"code" json:"code"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
