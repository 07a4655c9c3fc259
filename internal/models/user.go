package models

import "time"

// User представляет пользователя в системе.
// HashedPassword никогда не отдается наружу: для ответов используйте api.User.
type User struct {
	CreatedAt      time.Time `json:"created_at"`             // время создания
	UpdatedAt      time.Time `json:"updated_at"`             // время последнего обновления
	Birthdate      *Date     `json:"birthdate,omitempty"`    // дата рождения
	Name           string    `json:"name"`                   // имя
	Surname        string    `json:"surname"`                // фамилия
	LastName       string    `json:"last_name,omitempty"`    // отчество
	Phone          string    `json:"phone,omitempty"`        // телефон, уникален если задан
	Email          string    `json:"email,omitempty"`        // email, уникален если задан
	University     string    `json:"university,omitempty"`   // университет
	Course         string    `json:"course,omitempty"`       // курс
	ShortStatus    string    `json:"short_status,omitempty"` // короткий статус
	FullStatus     string    `json:"full_status,omitempty"`  // развернутый статус
	AboutMe        string    `json:"about_me,omitempty"`     // о себе
	Links          string    `json:"links,omitempty"`        // ссылки (произвольный текст)
	HashedPassword string    `json:"-"`                      // bcrypt хеш пароля
	ID             int64     `json:"id"`                     // генерируется хранилищем
}

// UserPatch описывает частичное обновление профиля.
// nil означает "поле не передано" и оставляет значение без изменений.
type UserPatch struct {
	Name        *string `json:"name,omitempty"`
	Surname     *string `json:"surname,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	University  *string `json:"university,omitempty"`
	Birthdate   *Date   `json:"birthdate,omitempty"`
	Course      *string `json:"course,omitempty"`
	ShortStatus *string `json:"short_status,omitempty"`
	FullStatus  *string `json:"full_status,omitempty"`
	AboutMe     *string `json:"about_me,omitempty"`
	Links       *string `json:"links,omitempty"`
}

// ApplyPatch возвращает копию u с примененными полями из p.
// Исходная запись не изменяется.
func ApplyPatch(u User, p UserPatch) User {
	setString(&u.Name, p.Name)
	setString(&u.Surname, p.Surname)
	setString(&u.LastName, p.LastName)
	setString(&u.Phone, p.Phone)
	setString(&u.Email, p.Email)
	setString(&u.University, p.University)
	setString(&u.Course, p.Course)
	setString(&u.ShortStatus, p.ShortStatus)
	setString(&u.FullStatus, p.FullStatus)
	setString(&u.AboutMe, p.AboutMe)
	setString(&u.Links, p.Links)

	if p.Birthdate != nil {
		d := *p.Birthdate
		u.Birthdate = &d
	}

	return u
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Tag представляет тег, которым пользователь описывает свои навыки/интересы
type Tag struct {
	Name string `json:"name"` // нормализованное имя (lower-case)
	ID   int64  `json:"id"`
}

// Subscription представляет подписку user_id_from -> user_id_to
type Subscription struct {
	UserIDFrom int64 `json:"user_id_from"`
	UserIDTo   int64 `json:"user_id_to"`
}
