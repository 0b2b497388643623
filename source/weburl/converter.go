package weburl

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

var excessiveLinesRe = regexp.MustCompile(`\n{4,}`)

// ConvertResult contains the result of HTML extraction.
type ConvertResult struct {
	Title    string
	Markdown string
}

// Converter extracts the main article content from an HTML page and
// converts it to markdown.
type Converter struct {
	converter *md.Converter
}

// NewConverter creates a new HTML converter.
func NewConverter() *Converter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	return &Converter{converter: converter}
}

// Convert runs readability extraction over the page and converts the main
// content to markdown. Falls back to the full page when readability finds
// no article body.
func (c *Converter) Convert(pageURL string, htmlContent []byte) (*ConvertResult, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}

	title := ""
	content := string(htmlContent)

	article, err := readability.FromReader(bytes.NewReader(htmlContent), parsedURL)
	if err == nil && article.Content != "" {
		title = article.Title
		content = article.Content
	}

	if title == "" {
		title = extractHTMLTitle(htmlContent)
	}

	markdown, err := c.converter.ConvertString(content)
	if err != nil {
		return nil, fmt.Errorf("convert to markdown: %w", err)
	}

	markdown = excessiveLinesRe.ReplaceAllString(markdown, "\n\n\n")
	markdown = strings.TrimSpace(markdown)

	return &ConvertResult{Title: title, Markdown: markdown}, nil
}

// extractHTMLTitle pulls the <title> element from raw HTML.
func extractHTMLTitle(htmlContent []byte) string {
	doc, err := html.Parse(bytes.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return title
}
