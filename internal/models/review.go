package models

// WorkReview запись об опыте работы пользователя.
// Принадлежит ровно одному пользователю (UserID).
type WorkReview struct {
	DateEnd        *Date  `json:"date_end,omitempty"`        // дата окончания, nil если работа продолжается
	Post           string `json:"post"`                      // должность
	CompanyName    string `json:"company_name"`              // компания
	SubcompanyName string `json:"subcompany_name,omitempty"` // подразделение
	DateStart      Date   `json:"date_start"`                // дата начала
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"` // владелец записи
}
