package newsscout_test

import (
	"testing"

	"github.com/fwojciec/newsscout"
	"github.com/stretchr/testify/assert"
)

func TestNewsItem_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item newsscout.NewsItem
		code string
	}{
		{"valid", newsscout.NewsItem{Title: "Launch v2", SourceURL: "https://ex.com/a"}, ""},
		{"missing title", newsscout.NewsItem{SourceURL: "https://ex.com/a"}, newsscout.EINVALID},
		{"missing source URL", newsscout.NewsItem{Title: "Launch v2"}, newsscout.EINVALID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.code, newsscout.ErrorCode(tt.item.Validate()))
		})
	}
}

func TestCompany_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		company newsscout.Company
		code    string
	}{
		{"valid", newsscout.Company{Name: "Acme", Website: "https://acme.com"}, ""},
		{"missing name", newsscout.Company{Website: "https://acme.com"}, newsscout.EINVALID},
		{"missing website", newsscout.Company{Name: "Acme"}, newsscout.EINVALID},
		{"non-http website", newsscout.Company{Name: "Acme", Website: "ftp://acme.com"}, newsscout.EINVALID},
		{"relative website", newsscout.Company{Name: "Acme", Website: "acme.com"}, newsscout.EINVALID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.code, newsscout.ErrorCode(tt.company.Validate()))
		})
	}
}
