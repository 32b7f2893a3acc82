// Package zipcode содержит проверку формата ZIP-кода.
// На границе HTTP формат дополнительно проверяется тегами валидатора,
// здесь - защита на стороне хранилища и сервисов.
package zipcode

import "regexp"

var zipRe = regexp.MustCompile(`^\d{5}$`)

// Valid сообщает, является ли строка пятизначным ZIP-кодом.
func Valid(zip string) bool {
	return zipRe.MatchString(zip)
}
