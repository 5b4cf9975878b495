package utils

import "time"

// ParseDate interpreta datas no formato YYYY-MM-DD. Vazio significa
// "sem limite" e retorna nil.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}
