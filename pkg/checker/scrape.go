package checker

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseRows extracts the trimmed text of every table cell on the page,
// one slice per tr. Rows without cells are skipped. The caller feeds the
// result straight into Classify, keeping all classification logic free of
// the browser.
func ParseRows(html string) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var rows [][]string
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	return rows, nil
}
