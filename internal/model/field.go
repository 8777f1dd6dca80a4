package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Availability : карта "дата/час -> количество свободных слотов".
// Хранится в Postgres как JSONB, поэтому реализует Valuer/Scanner.
type Availability map[string]int

func (a Availability) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

func (a *Availability) Scan(src interface{}) error {
	if src == nil {
		*a = Availability{}
		return nil
	}

	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("неожиданный тип данных availability: %T", src)
	}

	return json.Unmarshal(data, a)
}

type Field struct {
	UUID         string       `db:"uuid" json:"uuid"`
	Name         string       `db:"name" json:"name"`
	ImageKey     string       `db:"image_key" json:"-"`
	Availability Availability `db:"availability" json:"availability"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}
