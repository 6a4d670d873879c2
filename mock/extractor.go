package mock

import "github.com/fwojciec/newsscout"

var (
	_ newsscout.Extractor = (*Extractor)(nil)
	_ newsscout.Converter = (*Converter)(nil)
)

// Extractor is a mock implementation of newsscout.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*newsscout.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*newsscout.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}

// Converter is a mock implementation of newsscout.Converter.
type Converter struct {
	ConvertFn func(html, baseURL string) (string, error)
}

func (c *Converter) Convert(html, baseURL string) (string, error) {
	return c.ConvertFn(html, baseURL)
}
