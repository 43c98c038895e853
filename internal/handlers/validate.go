// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"newsdesk/internal/models"
	"newsdesk/internal/newsroom"
)

var validate = newValidator()

// newValidator reports fields by their form names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email,max=254"`
	Password string `form:"password" validate:"required,max=200"`
}

type registerForm struct {
	Name     string `form:"name" validate:"required,max=100"`
	Email    string `form:"email" validate:"required,email,max=254"`
	Password string `form:"password" validate:"required,max=200"`
}

type commentForm struct {
	Content string `form:"content" validate:"required,max=2000"`
}

// postForm is the article editor. Tags stay comma separated until saved.
type postForm struct {
	ID          string   `form:"-" validate:"-"`
	Title       string   `form:"title" validate:"required,max=300"`
	District    string   `form:"district" validate:"required,max=100"`
	Excerpt     string   `form:"excerpt" validate:"required,max=1000"`
	Content     string   `form:"content" validate:"max=100000"`
	Tags        string   `form:"tags" validate:"max=500"`
	MediaURLs   []string `form:"media_urls" validate:"max=20,dive,url"`
	IsPublished bool     `form:"is_published"`
}

func parsePostForm(r *http.Request) postForm {
	r.ParseForm()
	var media []string
	for _, u := range r.PostForm["media_urls"] {
		if u = strings.TrimSpace(u); u != "" {
			media = append(media, u)
		}
	}
	return postForm{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		District:    strings.TrimSpace(r.PostFormValue("district")),
		Excerpt:     strings.TrimSpace(r.PostFormValue("excerpt")),
		Content:     r.PostFormValue("content"),
		Tags:        r.PostFormValue("tags"),
		MediaURLs:   media,
		IsPublished: r.PostFormValue("is_published") == "true",
	}
}

func postFormFrom(a *models.Article) postForm {
	return postForm{
		ID:          a.ID,
		Title:       a.Title,
		District:    a.District,
		Excerpt:     a.Excerpt,
		Content:     a.Content,
		Tags:        strings.Join(a.Tags, ", "),
		MediaURLs:   a.MediaURLs,
		IsPublished: a.IsPublished,
	}
}

func (f postForm) input() newsroom.PostInput {
	return newsroom.PostInput{
		Title:       f.Title,
		Content:     f.Content,
		Excerpt:     f.Excerpt,
		District:    f.District,
		Tags:        f.Tags,
		MediaURLs:   f.MediaURLs,
		IsPublished: f.IsPublished,
	}
}

type settingsForm struct {
	SiteName           string `form:"site_name" validate:"required,max=100"`
	SiteDescription    string `form:"site_description" validate:"max=500"`
	Timezone           string `form:"timezone" validate:"required,timezone"`
	MaxUploadSizeMB    int    `form:"max_upload_size_mb" validate:"min=1,max=100"`
	EmailNotifications bool   `form:"email_notifications"`
	PushNotifications  bool   `form:"push_notifications"`
	MaintenanceMode    bool   `form:"maintenance_mode"`
	AllowComments      bool   `form:"allow_comments"`
	RequireApproval    bool   `form:"require_approval"`
}

// parseSettingsForm reads the settings form. A blank or malformed upload
// size becomes 0 and fails validation.
func parseSettingsForm(r *http.Request) settingsForm {
	size, _ := strconv.Atoi(strings.TrimSpace(r.PostFormValue("max_upload_size_mb")))
	return settingsForm{
		SiteName:           strings.TrimSpace(r.PostFormValue("site_name")),
		SiteDescription:    strings.TrimSpace(r.PostFormValue("site_description")),
		Timezone:           r.PostFormValue("timezone"),
		MaxUploadSizeMB:    size,
		EmailNotifications: r.PostFormValue("email_notifications") == "true",
		PushNotifications:  r.PostFormValue("push_notifications") == "true",
		MaintenanceMode:    r.PostFormValue("maintenance_mode") == "true",
		AllowComments:      r.PostFormValue("allow_comments") == "true",
		RequireApproval:    r.PostFormValue("require_approval") == "true",
	}
}

func (f settingsForm) settings() models.Settings {
	return models.Settings{
		SiteName:           f.SiteName,
		SiteDescription:    f.SiteDescription,
		EmailNotifications: f.EmailNotifications,
		PushNotifications:  f.PushNotifications,
		MaintenanceMode:    f.MaintenanceMode,
		AllowComments:      f.AllowComments,
		RequireApproval:    f.RequireApproval,
		MaxUploadSizeMB:    f.MaxUploadSizeMB,
		Timezone:           f.Timezone,
	}
}

// check validates a form and returns the message for the first failing
// field, or "" when the form is valid.
func check(form any) string {
	err := validate.Struct(form)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid input."
	}
	return describe(verrs[0])
}

func describe(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	numeric := fe.Kind() == reflect.Int
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "email":
		return label + " must be a valid email address."
	case "url":
		return label + " must be valid URLs."
	case "timezone":
		return label + " is not a known timezone."
	case "min":
		if numeric {
			return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	case "max":
		switch {
		case numeric:
			return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
		case fe.Kind() == reflect.Slice:
			return fmt.Sprintf("Too many %s (max %s).", strings.ToLower(label), fe.Param())
		}
		return fmt.Sprintf("%s is too long (max %s characters).", label, fe.Param())
	}
	return label + " is invalid."
}

// fieldLabel turns "max_upload_size_mb" or "media_urls[0]" into a label.
func fieldLabel(field string) string {
	field, _, _ = strings.Cut(field, "[")
	switch field {
	case "max_upload_size_mb":
		return "Max upload size"
	case "media_urls":
		return "Media URLs"
	}
	return upperFirst(strings.ReplaceAll(field, "_", " "))
}
