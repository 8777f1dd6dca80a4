package requestresponse

// CreateBookingRequest : тело запроса бронирования
type CreateBookingRequest struct {
	Date string `json:"date" example:"2025-09-01T18:00"`
}

// CreateBookingResponse : ответ на успешное бронирование
type CreateBookingResponse struct {
	Message string `json:"message" example:"поле забронировано на 2025-09-01T18:00"`
	Code    string `json:"code" example:"A1B2C3D4"`
}
