package model

import "time"

type Review struct {
	UUID       string    `db:"uuid" json:"uuid"`
	AuthorUUID string    `db:"author_uuid" json:"author_uuid"`
	FieldUUID  string    `db:"field_uuid" json:"field_uuid"`
	Text       string    `db:"text" json:"text"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`

	// AuthorUsername заполняется join-ом при выборке, в таблице reviews не хранится
	AuthorUsername string `db:"author_username" json:"author_username,omitempty"`
}
