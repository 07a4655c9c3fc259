package handlers

import (
	"time"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/service"
	"github.com/iudanet/pautinka/pkg/api"
)

const invalidDateMessage = "must be a date in YYYY-MM-DD format"

func toAPIUser(u *models.User) api.User {
	out := api.User{
		ID:          u.ID,
		Name:        u.Name,
		Surname:     u.Surname,
		LastName:    u.LastName,
		Phone:       u.Phone,
		Email:       u.Email,
		University:  u.University,
		Course:      u.Course,
		ShortStatus: u.ShortStatus,
		FullStatus:  u.FullStatus,
		AboutMe:     u.AboutMe,
		Links:       u.Links,
	}
	if u.Birthdate != nil {
		out.Birthdate = u.Birthdate.String()
	}
	return out
}

func toAPIUsers(users []models.User) []api.User {
	out := make([]api.User, 0, len(users))
	for i := range users {
		out = append(out, toAPIUser(&users[i]))
	}
	return out
}

func toAPIReview(r *models.WorkReview) api.WorkReview {
	out := api.WorkReview{
		ID:             r.ID,
		UserID:         r.UserID,
		Post:           r.Post,
		CompanyName:    r.CompanyName,
		SubcompanyName: r.SubcompanyName,
		DateStart:      r.DateStart.String(),
	}
	if r.DateEnd != nil {
		out.DateEnd = r.DateEnd.String()
	}
	return out
}

func toAPIReviews(reviews []models.WorkReview) []api.WorkReview {
	out := make([]api.WorkReview, 0, len(reviews))
	for i := range reviews {
		out = append(out, toAPIReview(&reviews[i]))
	}
	return out
}

func toAPIVacancy(v *models.Vacancy) api.Vacancy {
	return api.Vacancy{
		ID:              v.ID,
		Title:           v.Title,
		Description:     v.Description,
		Conditions:      v.Conditions,
		RelatedProject:  v.RelatedProject,
		Price:           v.Price,
		VacancyHolderID: v.VacancyHolderID,
	}
}

func toAPIVacancies(list []models.Vacancy) []api.Vacancy {
	out := make([]api.Vacancy, 0, len(list))
	for i := range list {
		out = append(out, toAPIVacancy(&list[i]))
	}
	return out
}

func toTokenResponse(t service.Token) api.TokenResponse {
	expiresIn := int64(time.Until(t.ExpiresAt).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}
	return api.TokenResponse{
		AccessToken: t.AccessToken,
		TokenType:   api.TokenTypeBearer,
		ExpiresIn:   expiresIn,
	}
}

// parseOptionalDate пустая строка означает "не задано"
func parseOptionalDate(s string) (*models.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
