package requestresponse

import (
	"booking-web-server/internal/model"
	"time"
)

// FieldResponse : описывает поле для JSON-ответа
type FieldResponse struct {
	UUID         string             `json:"uuid" example:"qwdj1q4o34u34ih759ou1"`
	Name         string             `json:"name" example:"Campo Centrale"`
	ImageURL     string             `json:"image_url,omitempty" example:"https://s3.example.com/field-images/..."`
	Availability model.Availability `json:"availability"`
	CreatedAt    string             `json:"created" example:"2025-08-23T12:34:56Z"`
}

// FieldResponseFromModel : конвертирует model.Field в FieldResponse
func FieldResponseFromModel(field *model.Field, imageURL string) FieldResponse {
	return FieldResponse{
		UUID:         field.UUID,
		Name:         field.Name,
		ImageURL:     imageURL,
		Availability: field.Availability,
		CreatedAt:    field.CreatedAt.Format(time.RFC3339),
	}
}

// ListFieldsResponse : ответ API со списком полей
type ListFieldsResponse struct {
	Data struct {
		Fields []FieldResponse `json:"fields"`
	} `json:"data"`
	Count int `json:"count" example:"10"`
}
