// Package publications models the publication catalog and the selected list
// shown on the homepage, and joins the two by title.
package publications

// Link is a named URL attached to a publication.
type Link struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Record is one entry of the publications catalog. Title is the join key and
// must be unique within a catalog.
type Record struct {
	Title         string `json:"title" yaml:"title"`
	Authors       string `json:"authors" yaml:"authors"`
	Venue         string `json:"venue" yaml:"venue"`
	PaperURL      string `json:"paper_url,omitempty" yaml:"paper_url,omitempty"`
	CodeURL       string `json:"code_url,omitempty" yaml:"code_url,omitempty"`
	HomepageURL   string `json:"homepage_url,omitempty" yaml:"homepage_url,omitempty"`
	PreviewImage  string `json:"preview_image,omitempty" yaml:"preview_image,omitempty"`
	ExtraCodeURLs []Link `json:"extra_code_urls,omitempty" yaml:"extra_code_urls,omitempty"`
	MediaLinks    []Link `json:"media_links,omitempty" yaml:"media_links,omitempty"`
}

// Link labels for the fixed URL fields.
const (
	LinkPaper    = "Paper"
	LinkCode     = "Code"
	LinkHomepage = "Homepage"
)

// Links returns the record's links in display order: Paper, Code, Homepage,
// then extra code links and media links in their array order. Entries without
// a URL are omitted.
func (r Record) Links() []Link {
	links := make([]Link, 0, 3+len(r.ExtraCodeURLs)+len(r.MediaLinks))
	for _, l := range []Link{
		{Name: LinkPaper, URL: r.PaperURL},
		{Name: LinkCode, URL: r.CodeURL},
		{Name: LinkHomepage, URL: r.HomepageURL},
	} {
		if l.URL != "" {
			links = append(links, l)
		}
	}
	for _, group := range [][]Link{r.ExtraCodeURLs, r.MediaLinks} {
		for _, l := range group {
			if l.URL != "" {
				links = append(links, l)
			}
		}
	}
	return links
}
