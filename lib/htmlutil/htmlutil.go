package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"guems-backend/lib/textutil"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// CellText returns the collapsed text content of a selection, the
// form every table cell on the portal is read in.
func CellText(sel *goquery.Selection) string {
	var buffer strings.Builder
	for _, node := range sel.Nodes {
		buffer.WriteString(GetText(node))
	}
	return textutil.CollapseSpaces(buffer.String())
}

// RowCells returns the text of every td in a table row, in document
// order.
func RowCells(row *goquery.Selection) []string {
	var cells []string
	row.Find("td").Each(func(_ int, td *goquery.Selection) {
		cells = append(cells, CellText(td))
	})
	return cells
}
