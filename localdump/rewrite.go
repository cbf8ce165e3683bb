package localdump

import (
	"net/url"
	"regexp"
	"strings"
)

// AssetsDir is the per-repo directory images end up in, relative to the repo directory.
const AssetsDir = "assets"

// Image is one CDN image reference found in a document body.
type Image struct {
	Alt string

	// The link target as it appeared in the body, fragment and all.
	URL string

	// Numeric path segment (the uploader's id) preceding the filename.  We don't use it.
	Segment string

	// Name of the file in AssetsDir: the URL's last segment, unescaped and then sanitised.
	Filename string
}

// Characters that would end or split a Markdown link target, or that a viewer would unescape.
var linkEscaper = strings.NewReplacer("%", "%25", " ", "%20", "(", "%28", ")", "%29")

// LocalPath is what the Markdown links to after rewriting.
func (img Image) LocalPath() string {
	return "./" + AssetsDir + "/" + linkEscaper.Replace(img.Filename)
}

// localFilename turns the filename as it appears in a CDN URL into one safe to create on disk.
// Undecodable escapes are kept as they are.
func localFilename(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		decoded = raw
	}
	return SanitiseName(decoded)
}

// Rule is one textual clean-up applied to a document body before images are extracted.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

func (r Rule) Apply(body string) string {
	return r.Pattern.ReplaceAllString(body, r.Replacement)
}

// Rules clean up the markup Yuque sprinkles into its Markdown export.  Order matters: the
// line-break rules only recognise image tokens once the anchors are gone.
var Rules = []Rule{
	{
		// <a name="f7d3a"></a> heading anchors
		Name:        "anchor",
		Pattern:     regexp.MustCompile(`<a\s+name="[^"]*"\s*>\s*</a>`),
		Replacement: "",
	},
	{
		// <br />![alt](url)  ->  \n![alt](url)
		Name:        "br-before-image",
		Pattern:     regexp.MustCompile(`<br\s*/?>(!\[)`),
		Replacement: "\n${1}",
	},
	{
		// ![alt](url)<br />  ->  ![alt](url)\n
		Name:        "br-after-image",
		Pattern:     regexp.MustCompile(`(!\[[^\]]*\]\([^)]*\))<br\s*/?>`),
		Replacement: "${1}\n",
	},
}

// imagePattern matches ![alt](https://cdn.nlark.com/yuque/.../<digits>/<file>.<ext><suffix> "title").
// Submatches: alt, url, segment, filename, suffix, title.  Filenames carrying reserved or control
// characters don't match at all.
var imagePattern = regexp.MustCompile(
	`!\[([^\]]*)\]\(` +
		`(https?://cdn\.nlark\.com/yuque[^)\s]*?/(\d+)/([^/)\s#?\\:*"<>|\x00-\x1f\x7f]+\.[A-Za-z0-9]+)([^)\s]*))` +
		`(\s+"[^"]*")?\)`)

// Normalise applies every Rule in order.  Bodies without Yuque markup come back unchanged.
func Normalise(body string) string {
	for _, rule := range Rules {
		body = rule.Apply(body)
	}
	return body
}

// ExtractImages points every CDN image at ./assets/<filename> and reports what it rewrote, in
// order of appearance.  Repeated filenames are reported once per occurrence.
func ExtractImages(body string) (string, []Image) {
	images := []Image{}

	rewritten := imagePattern.ReplaceAllStringFunc(body, func(token string) string {
		m := imagePattern.FindStringSubmatch(token)
		if m == nil {
			return token
		}

		img := Image{
			Alt:      m[1],
			URL:      m[2],
			Segment:  m[3],
			Filename: localFilename(m[4]),
		}
		images = append(images, img)

		return "![" + img.Alt + "](" + img.LocalPath() + m[6] + ")"
	})

	return rewritten, images
}

// Rewrite is the whole body pipeline: Normalise, then ExtractImages.
func Rewrite(body string) (string, []Image) {
	return ExtractImages(Normalise(body))
}
