package service

import (
	"sort"
	"strings"
)

// MaxTagsPerUser ограничение на число тегов у пользователя
const MaxTagsPerUser = 64

// MaxTagLen максимальная длина имени тега в байтах
const MaxTagLen = 64

// ParseTags разбирает строку "go, Rust,,sql" в нормализованный список тегов
func ParseTags(raw string) []string {
	return NormalizeTags(strings.Split(raw, ","))
}

// NormalizeTags обрезает пробелы, приводит к нижнему регистру,
// убирает пустые и повторяющиеся имена. Результат отсортирован.
func NormalizeTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	sort.Strings(out)
	return out
}
