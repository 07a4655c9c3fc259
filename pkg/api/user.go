package api

// User публичное представление пользователя. Хеш пароля сюда никогда не попадает.
type User struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	LastName    string `json:"last_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	University  string `json:"university,omitempty"`
	Birthdate   string `json:"birthdate,omitempty"` // YYYY-MM-DD
	Course      string `json:"course,omitempty"`
	ShortStatus string `json:"short_status,omitempty"`
	FullStatus  string `json:"full_status,omitempty"`
	AboutMe     string `json:"about_me,omitempty"`
	Links       string `json:"links,omitempty"`
	ID          int64  `json:"id"`
}

// ProfilePatch частичное обновление профиля (PATCH /user/me).
// Отсутствующее или null поле не меняется, пустая строка очищает необязательное поле.
// Ограничения длины совпадают с RegisterRequest; формат email проверяется только для непустого значения.
type ProfilePatch struct {
	Name        *string `json:"name,omitempty" validate:"omitnil,notblank,max=128"`
	Surname     *string `json:"surname,omitempty" validate:"omitnil,notblank,max=128"`
	LastName    *string `json:"last_name,omitempty" validate:"omitnil,max=128"`
	Phone       *string `json:"phone,omitempty" validate:"omitnil,phone"`
	Email       *string `json:"email,omitempty" validate:"omitnil,max=254"`
	University  *string `json:"university,omitempty" validate:"omitnil,max=256"`
	Birthdate   *string `json:"birthdate,omitempty"`
	Course      *string `json:"course,omitempty" validate:"omitnil,max=64"`
	ShortStatus *string `json:"short_status,omitempty" validate:"omitnil,max=256"`
	FullStatus  *string `json:"full_status,omitempty"`
	AboutMe     *string `json:"about_me,omitempty"`
	Links       *string `json:"links,omitempty"`
}

// TagsRequest замена набора тегов текущего пользователя
type TagsRequest struct {
	Tags []string `json:"tags"`
}
