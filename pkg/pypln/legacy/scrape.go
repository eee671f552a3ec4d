package legacy

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// row is one data row of a listing table.
type row struct {
	cells []string
	// link is the absolute URL of the first anchor in the row.
	link string
}

func (r row) cell(i int) string {
	if i < len(r.cells) {
		return r.cells[i]
	}
	return ""
}

// corpusPayload maps a corpora_table row: name, description, created at,
// owner.
func (r row) corpusPayload() map[string]any {
	return map[string]any{
		"url":         r.link,
		"name":        r.cell(0),
		"description": r.cell(1),
		"created_at":  r.cell(2),
		"owner":       r.cell(3),
	}
}

// documentPayload maps a documents_table row: file name, size in bytes,
// uploaded at.
func (r row) documentPayload(corpusURL string) map[string]any {
	payload := map[string]any{
		"url":         r.link,
		"corpus":      corpusURL,
		"blob":        r.cell(0),
		"uploaded_at": r.cell(2),
	}
	if size := r.cell(1); size != "" {
		payload["size"] = size
	}
	return payload
}

// tableRows returns the data rows of the table with the given id. Header
// rows, which have no <td>, are skipped.
func tableRows(doc *goquery.Document, id string, pageURL *url.URL) ([]row, error) {
	table := doc.Find("table#" + id)
	if table.Length() == 0 {
		return nil, fmt.Errorf("table %q not found in %s", id, pageURL)
	}

	var (
		rows []row
		err  error
	)
	table.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		tds := tr.Find("td")
		if tds.Length() == 0 {
			return true
		}

		var r row
		tds.Each(func(_ int, td *goquery.Selection) {
			r.cells = append(r.cells, strings.TrimSpace(td.Text()))
		})

		if href, ok := tr.Find("a[href]").First().Attr("href"); ok {
			ref, perr := url.Parse(href)
			if perr != nil {
				err = fmt.Errorf("invalid link %q in table %q: %w", href, id, perr)
				return false
			}
			r.link = pageURL.ResolveReference(ref).String()
		}

		rows = append(rows, r)
		return true
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// csrfToken returns the value of the hidden CSRF input of the first form.
func csrfToken(doc *goquery.Document) (string, error) {
	token, ok := doc.Find(fmt.Sprintf("input[name=%q]", csrfField)).First().Attr("value")
	if !ok || token == "" {
		return "", fmt.Errorf("no %s field in login page", csrfField)
	}
	return token, nil
}

// loginFormPresent reports whether the page still asks for a password.
func loginFormPresent(doc *goquery.Document) bool {
	return doc.Find(`form input[name="password"]`).Length() > 0
}

// Slug returns the identifier the web interface uses in URLs for a resource
// scraped by this package, e.g. "news" for ".../corpora/news/".
func Slug(resourceURL string) string {
	u, err := url.Parse(resourceURL)
	if err != nil {
		return ""
	}
	return path.Base(strings.TrimRight(u.Path, "/"))
}
