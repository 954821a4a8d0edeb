// Package sitemap builds the sitemap.xml document for the public pages.
package sitemap

import (
	"fmt"

	"github.com/beevik/etree"
)

// xmlns is the sitemaps.org protocol namespace.
const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// PublicPaths lists the pages exposed to crawlers.
var PublicPaths = []string{"/", "/about", "/inspiration", "/contact"}

// Build renders a sitemap for the given base domain and paths.
func Build(baseDomain string, paths []string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", xmlns)

	for _, p := range paths {
		url := urlset.CreateElement("url")
		url.CreateElement("loc").SetText("https://" + baseDomain + p)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render sitemap: %w", err)
	}
	return out, nil
}
