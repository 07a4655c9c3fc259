package models

// Vacancy вакансия, опубликованная пользователем
type Vacancy struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Conditions      string  `json:"conditions"`
	RelatedProject  string  `json:"related_project,omitempty"`
	Price           float64 `json:"price"`
	ID              int64   `json:"id"`
	VacancyHolderID int64   `json:"vacancy_holder_id"` // автор вакансии
}
