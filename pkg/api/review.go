package api

// WorkReviewRequest запрос на создание записи об опыте работы.
// Даты в формате YYYY-MM-DD, date_start по умолчанию сегодня.
type WorkReviewRequest struct {
	Post           string `json:"post" validate:"notblank,max=256"`
	CompanyName    string `json:"company_name" validate:"notblank,max=256"`
	SubcompanyName string `json:"subcompany_name,omitempty" validate:"max=256"`
	DateStart      string `json:"date_start,omitempty"`
	DateEnd        string `json:"date_end,omitempty"`
}

// WorkReview запись об опыте работы
type WorkReview struct {
	Post           string `json:"post"`
	CompanyName    string `json:"company_name"`
	SubcompanyName string `json:"subcompany_name,omitempty"`
	DateStart      string `json:"date_start"`
	DateEnd        string `json:"date_end,omitempty"`
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
}
