// Package fs provides file-based markdown export of news items.
package fs

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/fwojciec/newsscout"
	"gopkg.in/yaml.v3"
)

// Ensure ItemStore implements newsscout.ItemStore at compile time.
var _ newsscout.ItemStore = (*ItemStore)(nil)

// ItemStore implements newsscout.ItemStore with atomic update semantics.
// Items are saved to a temporary directory, then moved atomically on Commit.
type ItemStore struct {
	baseDir string
	name    string
}

// NewItemStore creates a new ItemStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewItemStore(baseDir, name string) *ItemStore {
	return &ItemStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *ItemStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ItemStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes item as a markdown file with YAML frontmatter.
func (s *ItemStore) Save(ctx context.Context, item *newsscout.NewsItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	relPath, err := ItemPath(item)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatItem(item)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, content, 0644)
}

// Commit replaces the final directory with everything saved so far.
func (s *ItemStore) Commit() error {
	// An empty run still produces an (empty) output directory.
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the last Commit.
func (s *ItemStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// ItemPath converts an item to a relative file path of the form
// <company-slug>/<host>/<path>.md.
// Example: Acme Corp, https://acme.com/blog/launch → acme-corp/acme.com/blog/launch.md
func ItemPath(item *newsscout.NewsItem) (string, error) {
	u, err := url.Parse(item.SourceURL)
	if err != nil {
		return "", newsscout.Errorf(newsscout.EINVALID, "invalid source URL: %s", item.SourceURL)
	}
	if u.Host == "" {
		return "", newsscout.Errorf(newsscout.EINVALID, "source URL has no host: %s", item.SourceURL)
	}

	for seg := range strings.SplitSeq(u.Path, "/") {
		if seg == ".." {
			return "", newsscout.Errorf(newsscout.EINVALID, "path traversal in source URL: %s", item.SourceURL)
		}
	}

	p := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
	switch {
	case p == "":
		p = "index.md"
	case strings.HasSuffix(u.Path, "/"):
		p += "/index.md"
	default:
		p = strings.TrimSuffix(p, ".html") + ".md"
	}

	host := strings.ToLower(u.Hostname())
	return filepath.Join(Slugify(item.CompanyName), host, filepath.FromSlash(p)), nil
}

// Slugify lowercases s and replaces runs of non-alphanumerics with a hyphen.
func Slugify(s string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		if b.Len() > 0 && !hyphen {
			b.WriteByte('-')
			hyphen = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "unknown"
	}
	return slug
}

// frontmatter carries every item field except the content, which is the
// markdown body.
type frontmatter struct {
	Title       string     `yaml:"title"`
	Source      string     `yaml:"source"`
	Company     string     `yaml:"company,omitempty"`
	SourceType  string     `yaml:"source_type,omitempty"`
	Category    string     `yaml:"category,omitempty"`
	Published   time.Time  `yaml:"published"`
	Summary     string     `yaml:"summary,omitempty"`
	Authors     []string   `yaml:"authors,omitempty"`
	Tags        []string   `yaml:"tags,omitempty"`
	Strategy    string     `yaml:"strategy,omitempty"`
	ID          string     `yaml:"id,omitempty"`
	CompanyID   string     `yaml:"company_id,omitempty"`
	ContentHash string     `yaml:"content_hash,omitempty"`
	Created     *time.Time `yaml:"created,omitempty"`
}

// FormatItem formats an item with YAML frontmatter.
func FormatItem(item *newsscout.NewsItem) ([]byte, error) {
	fm := frontmatter{
		Title:       item.Title,
		Source:      item.SourceURL,
		Company:     item.CompanyName,
		SourceType:  item.SourceType,
		Category:    item.Category,
		Published:   item.PublishedAt.UTC(),
		Summary:     item.Summary,
		Authors:     item.Authors,
		Tags:        item.Tags,
		Strategy:    item.Strategy,
		ID:          item.ID,
		CompanyID:   item.CompanyID,
		ContentHash: item.ContentHash,
		Created:     item.CreatedAt,
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("---\n")
	if item.Content != "" {
		buf.WriteString("\n")
		buf.WriteString(item.Content)
		if !strings.HasSuffix(item.Content, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}
