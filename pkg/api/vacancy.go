package api

// VacancyRequest запрос на публикацию вакансии
type VacancyRequest struct {
	Title          string  `json:"title" validate:"notblank,max=256"`
	Description    string  `json:"description"`
	Conditions     string  `json:"conditions"`
	RelatedProject string  `json:"related_project,omitempty" validate:"max=256"`
	Price          float64 `json:"price" validate:"gte=0"`
}

// Vacancy опубликованная вакансия
type Vacancy struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Conditions      string  `json:"conditions"`
	RelatedProject  string  `json:"related_project,omitempty"`
	Price           float64 `json:"price"`
	ID              int64   `json:"id"`
	VacancyHolderID int64   `json:"vacancy_holder_id"`
}
