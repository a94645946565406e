package index

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const remote = "https://example.org/data"

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("{}"), 0644))
	}
}

func TestScanFiltersAndSorts(t *testing.T) {
	wd := t.TempDir()
	writeTree(t, wd, "features/a.geojson", "features/B.geojson", "features/c.txt")

	records, err := Scan("features", ".geojson", wd, remote)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Record{Filename: "B.geojson", RelativePath: "features/B.geojson", URL: remote + "/features/B.geojson"}, records[0])
	assert.Equal(t, Record{Filename: "a.geojson", RelativePath: "features/a.geojson", URL: remote + "/features/a.geojson"}, records[1])
}

func TestScanRecursesAndSortsByFilenameOnly(t *testing.T) {
	wd := t.TempDir()
	writeTree(t, wd,
		"features/z_dir/a_first.geojson",
		"features/a_dir/deep/er/m_middle.geojson",
		"features/z_last.geojson",
		"features/a_dir/not.geojson.bak",
	)

	records, err := Scan(filepath.Join(wd, "features"), ".geojson", wd, remote)
	require.NoError(t, err)

	var names, paths []string
	for _, r := range records {
		names = append(names, r.Filename)
		paths = append(paths, r.RelativePath)
	}
	assert.Equal(t, []string{"a_first.geojson", "m_middle.geojson", "z_last.geojson"}, names)
	assert.Equal(t, []string{"features/z_dir/a_first.geojson", "features/a_dir/deep/er/m_middle.geojson", "features/z_last.geojson"}, paths)
}

func TestScanKeepsDuplicateFilenames(t *testing.T) {
	wd := t.TempDir()
	writeTree(t, wd, "features/one/same.geojson", "features/two/same.geojson")

	records, err := Scan("features", ".geojson", wd, remote)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan("features", ".geojson", t.TempDir(), remote)
	assert.True(t, errors.Is(err, ErrRootMissing))
}

func TestScanRootIsFile(t *testing.T) {
	wd := t.TempDir()
	writeTree(t, wd, "features")
	records, err := Scan("features", ".geojson", wd, remote)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestScanSkipsUnreadableDirectory(t *testing.T) {
	wd := t.TempDir()
	writeTree(t, wd, "features/land/land.geojson", "features/locked/hidden.geojson")
	locked := filepath.Join(wd, "features", "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { os.Chmod(locked, 0755) })
	if _, err := os.ReadDir(locked); err == nil {
		t.Skip("directory permissions are not enforced for this user")
	}

	records, err := Scan("features", ".geojson", wd, remote)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "land.geojson", records[0].Filename)
}

func TestSemanticPath(t *testing.T) {
	assert.Equal(t, "features/admin/x.geojson", SemanticPath(`features\admin\x.geojson`))
	assert.Equal(t, "features/admin/x.geojson", SemanticPath(filepath.Join("features", "admin", "x.geojson")))
}

func TestRender(t *testing.T) {
	records := []Record{
		{Filename: "B.geojson", URL: remote + "/features/B.geojson"},
		{Filename: "a&b.geojson", URL: remote + "/features/a&b.geojson"},
	}
	generated := time.Date(2024, 3, 9, 7, 5, 1, 0, time.Local)

	var out bytes.Buffer
	require.NoError(t, Render(&out, DefaultTitle, generated, records))
	page := out.String()

	assert.Contains(t, page, "<title>Natural Earth GeoJSON Files</title>")
	assert.Contains(t, page, "<h1>Natural Earth GeoJSON Files</h1>")
	assert.Contains(t, page, "<p>Generated: 2024-03-09 07:05:01</p>")
	assert.Contains(t, page, "<p>Total files: 2</p>")
	assert.Contains(t, page, `<li><a href="https://example.org/data/features/B.geojson">B.geojson</a></li>`)
	assert.Contains(t, page, "a&amp;b.geojson</a>")
	assert.NotContains(t, page, "<script")
	assert.NotContains(t, page, "stylesheet")

	links := listedLinks(t, page)
	require.Len(t, links, 2)
	assert.Equal(t, [2]string{"B.geojson", remote + "/features/B.geojson"}, links[0])
	assert.Equal(t, [2]string{"a&b.geojson", remote + "/features/a&b.geojson"}, links[1])
}

func TestRenderEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Render(&out, "Empty", time.Now(), nil))
	assert.Contains(t, out.String(), "<p>Total files: 0</p>")
	assert.Empty(t, listedLinks(t, out.String()))
}

func TestRenderDiffersOnlyInTimestamp(t *testing.T) {
	wd := t.TempDir()
	writeTree(t, wd, "features/a.geojson", "features/B.geojson", "features/c.txt")

	render := func(at time.Time) string {
		records, err := Scan("features", ".geojson", wd, remote)
		require.NoError(t, err)
		var out bytes.Buffer
		require.NoError(t, Render(&out, DefaultTitle, at, records))
		return out.String()
	}
	first := render(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	second := render(time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC))
	require.NotEqual(t, first, second)

	firstLines := strings.Split(first, "\n")
	secondLines := strings.Split(second, "\n")
	require.Equal(t, len(firstLines), len(secondLines))
	var differing []string
	for i := range firstLines {
		if firstLines[i] != secondLines[i] {
			differing = append(differing, secondLines[i])
		}
	}
	assert.Equal(t, []string{"<p>Generated: 2025-06-07 08:09:10</p>"}, differing)
}

//yields (text, href) per list item in document order
func listedLinks(t *testing.T, page string) (links [][2]string) {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	var walk func(*html.Node, bool)
	walk = func(n *html.Node, insideItem bool) {
		if n.Type == html.ElementNode && n.Data == "li" {
			insideItem = true
		}
		if insideItem && n.Type == html.ElementNode && n.Data == "a" {
			var href string
			for _, a := range n.Attr {
				if a.Key == "href" {
					href = a.Val
				}
			}
			text := ""
			if n.FirstChild != nil {
				text = n.FirstChild.Data
			}
			links = append(links, [2]string{text, href})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, insideItem)
		}
	}
	walk(doc, false)
	return
}
