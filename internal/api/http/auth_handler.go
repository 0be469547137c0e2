package http

import (
	"errors"
	"net/http"
	"strings"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/notify"
)

type authForm struct {
	Next  string
	Email string
	Error string
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login", "Sign in", authForm{Next: r.URL.Query().Get("next")}, nil)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	user, err := s.session.Login(r.Context(), email, r.FormValue("password"))
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		s.render(w, r, "login", "Sign in", authForm{Next: r.FormValue("next"), Email: email, Error: apiclient.MessageOf(err)}, nil)
		return
	}
	s.feed.Notify(notify.Success("Welcome back", user.FullName()))
	back(w, r, landingPage(user))
}

func (s *Server) registerPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register", "Create account", authForm{}, nil)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	req := domain.RegisterRequest{
		FirstName: strings.TrimSpace(r.FormValue("firstName")),
		LastName:  strings.TrimSpace(r.FormValue("lastName")),
		Email:     strings.TrimSpace(r.FormValue("email")),
		Phone:     strings.TrimSpace(r.FormValue("phone")),
		Company:   strings.TrimSpace(r.FormValue("company")),
		Password:  r.FormValue("password"),
	}
	user, err := s.session.Register(r.Context(), req)
	if err != nil {
		msg := apiclient.MessageOf(err)
		if details := validationDetails(err); details != "" {
			msg += ": " + details
		}
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, r, "register", "Create account", authForm{Email: req.Email, Error: msg}, nil)
		return
	}
	s.feed.Notify(notify.Success("Account created", user.FullName()))
	http.Redirect(w, r, landingPage(user), http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.screens.Profile.Logout(); err != nil {
		s.feed.Notify(notify.Failure("Error", err.Error()))
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) dismiss(w http.ResponseWriter, r *http.Request) {
	s.feed.Dismiss(varID(r))
	back(w, r, "/")
}

func landingPage(u *domain.User) string {
	if u.IsAdmin() {
		return "/"
	}
	return "/profile"
}

func validationDetails(err error) string {
	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) || len(apiErr.Errors) == 0 {
		return ""
	}
	return strings.Join(apiErr.Errors, ", ")
}
