package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/docdex/docdex"
)

// Page is one resolved raw page.
type Page struct {
	Site docdex.SiteConfig

	// Path is the site-relative page key, e.g. "concepts/models".
	Path string

	// URL is the page's local display address.
	URL string

	Raw string
}

// PageStore resolves page identifiers onto the configured local site roots
// and reads raw pages. Identifiers may be local:// display URLs, public
// site URLs, or bare "<site>/<page>" paths; public URLs are mapped onto
// the local tree, never fetched.
type PageStore struct {
	Sites []docdex.SiteConfig
}

// SiteByID returns the configured site with the given ID.
func (s *PageStore) SiteByID(id string) (docdex.SiteConfig, error) {
	for _, site := range s.Sites {
		if site.ID == id {
			return site, nil
		}
	}
	return docdex.SiteConfig{}, docdex.Errorf(docdex.ENOTFOUND, "unknown site %q", id)
}

// Resolve maps an identifier to a site and site-relative page path. Any
// fragment is discarded. Identifiers that escape the site root resolve to
// ENOTFOUND, never to a filesystem path.
func (s *PageStore) Resolve(identifier string) (docdex.SiteConfig, string, error) {
	id := identifier
	if i := strings.IndexByte(id, '#'); i >= 0 {
		id = id[:i]
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return docdex.SiteConfig{}, "", docdex.Errorf(docdex.EINVALID, "page identifier required")
	}

	for _, site := range s.Sites {
		for _, prefix := range []string{site.DisplayBase(), strings.TrimSuffix(site.BaseURL, "/") + "/", site.ID + "/"} {
			if strings.HasPrefix(id, prefix) {
				rel, err := sanitizePage(strings.TrimPrefix(id, prefix))
				if err != nil {
					return docdex.SiteConfig{}, "", err
				}
				return site, rel, nil
			}
		}
	}
	return docdex.SiteConfig{}, "", docdex.Errorf(docdex.ENOTFOUND, "page %q does not belong to any configured site", identifier)
}

// Read resolves an identifier and loads the raw page content from disk.
func (s *PageStore) Read(identifier string) (*Page, error) {
	site, rel, err := s.Resolve(identifier)
	if err != nil {
		return nil, err
	}

	path, err := s.locate(site, rel)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "read page %s: %v", rel, err)
	}
	return &Page{
		Site: site,
		Path: rel,
		URL:  site.DisplayBase() + rel,
		Raw:  string(raw),
	}, nil
}

// CountPages reports how many raw page files a site's root holds.
func (s *PageStore) CountPages(siteID string) (int, error) {
	site, err := s.SiteByID(siteID)
	if err != nil {
		return 0, err
	}

	count := 0
	err = filepath.WalkDir(site.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == site.Root {
				return filepath.SkipAll
			}
			return err
		}
		if !d.IsDir() && pageExt(site.Kind, path) {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, docdex.Errorf(docdex.EINTERNAL, "walk site root %s: %v", site.Root, err)
	}
	return count, nil
}

// locate finds the on-disk file for a page key, trying the key itself, the
// key with the site's page extension, and the key as a directory index.
func (s *PageStore) locate(site docdex.SiteConfig, rel string) (string, error) {
	ext := ".html"
	if site.Kind == docdex.SourceMarkdown {
		ext = ".md"
	}

	candidates := []string{rel + ext, rel + "/index" + ext}
	if filepath.Ext(rel) != "" {
		candidates = append([]string{rel}, candidates...)
	}
	if rel == "" {
		candidates = []string{"index" + ext}
	}

	for _, c := range candidates {
		path := filepath.Join(site.Root, filepath.FromSlash(c))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", docdex.Errorf(docdex.ENOTFOUND, "page %q not found in site %q", rel, site.ID)
}

// sanitizePage normalizes a page key and rejects anything that could step
// outside the site root.
func sanitizePage(rel string) (string, error) {
	rel = strings.Trim(rel, "/")
	clean := filepath.ToSlash(filepath.Clean("/" + rel))[1:]
	if clean != rel || strings.Contains("/"+rel+"/", "/../") {
		return "", docdex.Errorf(docdex.ENOTFOUND, "page %q not found", rel)
	}
	return rel, nil
}

func pageExt(kind docdex.SourceKind, path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return kind == docdex.SourceHTML
	case ".md":
		return kind == docdex.SourceMarkdown
	}
	return false
}
