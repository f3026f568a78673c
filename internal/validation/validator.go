// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

// Package validation provides struct validation using go-playground/validator v10.
//
// The validator is a process-wide singleton (it caches struct metadata).
// Field names in messages come from the json or query tag, so errors name
// the wire field a client sent:
//
//	type FavoriteRequest struct {
//	    TMDBID    int    `json:"tmdb_id" validate:"required,gt=0"`
//	    MediaType string `json:"media_type" validate:"required,oneof=movie tv"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    respondError(w, http.StatusBadRequest, err.Error())
//	    return
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes one failed field.
type FieldError struct {
	Field   string // wire name
	Tag     string // failed rule, e.g. "oneof"
	Param   string // rule parameter, e.g. "movie tv"
	Message string
}

// RequestValidationError collects every failed field of one struct.
type RequestValidationError struct {
	Errors []FieldError
}

// Error joins the field messages with "; ".
func (e *RequestValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		messages[i] = fe.Message
	}
	return strings.Join(messages, "; ")
}

// Fields maps wire field name to message.
func (e *RequestValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field] = fe.Message
	}
	return out
}

// TMDB list filters: values joined by "," (AND) or "|" (OR).
var customRules = map[string]*regexp.Regexp{
	"genre_list":    regexp.MustCompile(`^\d+([,|]\d+)*$`),
	"language_list": regexp.MustCompile(`^[a-z]{2}([,|][a-z]{2})*$`),
	"region_list":   regexp.MustCompile(`^[A-Z]{2}([,|][A-Z]{2})*$`),
}

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(wireName)
		for tag, re := range customRules {
			if err := v.RegisterValidation(tag, matches(re)); err != nil {
				panic(fmt.Sprintf("validation: register %s: %v", tag, err))
			}
		}
		validate = v
	})
	return validate
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func wireName(field reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return field.Name
}

// ValidateStruct validates s. It returns nil when s is valid.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{Errors: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	out := &RequestValidationError{Errors: make([]FieldError, len(fieldErrs))}
	for i, fe := range fieldErrs {
		out.Errors[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: message(fe),
		}
	}
	return out
}

// messages renders "<field> <phrase>". %s in a phrase is the rule parameter.
var messages = map[string]string{
	"required":      "is required",
	"alpha":         "must contain only letters",
	"uppercase":     "must be upper case",
	"lowercase":     "must be lower case",
	"number":        "must be a number",
	"oneof":         "must be one of: %s",
	"gt":            "must be greater than %s",
	"gte":           "must be greater than or equal to %s",
	"lt":            "must be less than %s",
	"lte":           "must be less than or equal to %s",
	"genre_list":    "must be genre ids separated by ',' or '|'",
	"language_list": "must be ISO 639-1 codes separated by ',' or '|'",
	"region_list":   "must be ISO 3166-1 codes separated by ',' or '|'",
}

// Length rules read differently for strings ("3 characters") and numbers.
var lengthMessages = map[string]string{
	"len": "must be exactly %s",
	"min": "must be at least %s",
	"max": "must be at most %s",
}

func message(fe validator.FieldError) string {
	phrase, ok := messages[fe.Tag()]
	if !ok {
		phrase, ok = lengthMessages[fe.Tag()]
		if ok && fe.Kind() == reflect.String {
			phrase += " characters"
		}
	}
	if !ok {
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
	if strings.Contains(phrase, "%s") {
		phrase = fmt.Sprintf(phrase, fe.Param())
	}
	return fe.Field() + " " + phrase
}
