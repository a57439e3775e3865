package models

// SearchTravelRequest - параметры поиска вариантов поездок
type SearchTravelRequest struct {
	Source        string `form:"source"`
	Destination   string `form:"destination"`
	DepartureDate string `form:"departure_date"` // YYYY-MM-DD
	TravelType    string `form:"travel_type" binding:"omitempty,oneof=FLIGHT TRAIN BUS"`
	MinPrice      int64  `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice      int64  `form:"max_price" binding:"omitempty,min=0"`
	MinSeats      int    `form:"min_seats" binding:"omitempty,min=1"`
	SortBy        string `form:"sort_by"`
	Page          int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size,default=10" binding:"omitempty,min=1,max=20"`
}

// CreateTravelOptionRequest - модель для создания варианта поездки (админ)
type CreateTravelOptionRequest struct {
	TravelType      string  `json:"travel_type" binding:"required,oneof=FLIGHT TRAIN BUS"`
	OperatorName    string  `json:"operator_name" binding:"required,max=100"`
	Source          string  `json:"source" binding:"required,max=100"`
	Destination     string  `json:"destination" binding:"required,max=100"`
	SourceCode      *string `json:"source_code" binding:"omitempty,max=10"`
	DestinationCode *string `json:"destination_code" binding:"omitempty,max=10"`
	DepartureAt     string  `json:"departure_datetime" binding:"required"` // RFC 3339
	ArrivalAt       string  `json:"arrival_datetime" binding:"required"`
	BasePrice       int64   `json:"base_price" binding:"required,min=0"`
	TotalSeats      int     `json:"total_seats" binding:"required,min=1"`
	Description     *string `json:"description"`
	IsFeatured      bool    `json:"is_featured"`
}

// UpdateTravelOptionRequest - модель для изменения варианта поездки (админ)
type UpdateTravelOptionRequest struct {
	OperatorName *string `json:"operator_name" binding:"omitempty,max=100"`
	DepartureAt  *string `json:"departure_datetime"`
	ArrivalAt    *string `json:"arrival_datetime"`
	BasePrice    *int64  `json:"base_price" binding:"omitempty,min=0"`
	Status       *string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE CANCELLED"`
	Description  *string `json:"description"`
	IsFeatured   *bool   `json:"is_featured"`
}

// CreateBookingRequest - модель для создания бронирования
type CreateBookingRequest struct {
	TravelID        string `json:"travel_id" binding:"required"`
	NumberOfSeats   int    `json:"number_of_seats" binding:"required,min=1,max=10"`
	ContactEmail    string `json:"contact_email" binding:"required,email"`
	ContactPhone    string `json:"contact_phone" binding:"required,max=15"`
	SpecialRequests string `json:"special_requests"`
}

// CreateBookingResponse - модель ответа при создании бронирования
type CreateBookingResponse struct {
	BookingID        string `json:"booking_id"`
	BookingReference string `json:"booking_reference"`
	TotalPrice       int64  `json:"total_price"`
	Status           string `json:"status"`
}

// PayBookingRequest - модель для оплаты бронирования
type PayBookingRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
}

// PayBookingResponse - результат оплаты
type PayBookingResponse struct {
	BookingID     string `json:"booking_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	PaymentRef    string `json:"payment_ref"`
}

// CancelBookingRequest - модель для отмены бронирования
type CancelBookingRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
	Reason    string `json:"reason" binding:"max=500"`
}

// CancelBookingResponse - ответ с суммой возврата
type CancelBookingResponse struct {
	BookingID    string `json:"booking_id"`
	Status       string `json:"status"`
	RefundAmount int64  `json:"refund_amount"`
}

// PassengerRequest - данные одного пассажира
type PassengerRequest struct {
	Title             string  `json:"title" binding:"required,oneof=MR MRS MS DR"`
	FirstName         string  `json:"first_name" binding:"required,max=50"`
	LastName          string  `json:"last_name" binding:"required,max=50"`
	DateOfBirth       string  `json:"date_of_birth" binding:"required"` // YYYY-MM-DD
	Gender            string  `json:"gender" binding:"required,oneof=M F O"`
	IDType            string  `json:"id_type" binding:"omitempty,max=20"`
	IDNumber          string  `json:"id_number" binding:"required,max=50"`
	SeatPreference    *string `json:"seat_preference" binding:"omitempty,max=20"`
	MealPreference    *string `json:"meal_preference" binding:"omitempty,max=20"`
	SpecialAssistance *string `json:"special_assistance"`
}

// SavePassengersRequest - список пассажиров бронирования
type SavePassengersRequest struct {
	Passengers []PassengerRequest `json:"passengers" binding:"required,min=1,dive"`
}

// BulkBookingActionRequest - модель для массовых действий админа
type BulkBookingActionRequest struct {
	BookingIDs []string `json:"booking_ids" binding:"required,min=1"`
	Reason     string   `json:"reason" binding:"max=500"`
}

// BulkBookingActionResponse - число успешно обработанных бронирований
type BulkBookingActionResponse struct {
	Updated int `json:"updated"`
}

// PopularRouteItem - элемент списка популярных маршрутов
type PopularRouteItem struct {
	Source       string `json:"source"`
	Destination  string `json:"destination"`
	SearchCount  int64  `json:"search_count"`
	BookingCount int64  `json:"booking_count"`
}

// CitiesResponse - ответ автодополнения городов
type CitiesResponse struct {
	Cities []string `json:"cities"`
}

// TravelTypeStat - агрегированная статистика по типу поездки
type TravelTypeStat struct {
	TravelType     string  `json:"travel_type"`
	Count          int64   `json:"count"`
	AvgPrice       float64 `json:"avg_price"`
	TotalSeats     int64   `json:"total_seats"`
	AvailableSeats int64   `json:"available_seats"`
}

// AnalyticsResponse - модель ответа аналитики
type AnalyticsResponse struct {
	TotalOptions    int64              `json:"total_options"`
	ActiveOptions   int64              `json:"active_options"`
	TotalBookings   int64              `json:"total_bookings"`
	ActiveBookings  int64              `json:"active_bookings"`
	TotalRevenue    int64              `json:"total_revenue"`
	TravelTypeStats []TravelTypeStat   `json:"travel_type_stats"`
	TopRoutes       []PopularRouteItem `json:"top_routes"`
}
