package docs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anxiangsir/homepage/pkg/publications"
	"github.com/anxiangsir/homepage/pkg/render"
)

func testCatalog(t *testing.T) *publications.Catalog {
	t.Helper()
	c, err := publications.NewCatalog([]publications.Record{
		{Title: "Unicom", Authors: "Xiang An, Jiankang Deng", Venue: "ICLR 2023", PaperURL: "https://arxiv.org/abs/2304.05884", CodeURL: "https://github.com/deepglint/unicom"},
		{Title: "Partial FC", Authors: "Xiang An (Project Leader), Jiankang Deng", Venue: "CVPR 2022"},
		{Title: "MLCD", Authors: "Yin Xie, Xiang An", Venue: "ICLR 2023", HomepageURL: "https://example.org/mlcd"},
		{Title: "Notes"},
	})
	require.NoError(t, err)
	return c
}

func TestBuildEntry(t *testing.T) {
	hl := render.NewHighlighter("Xiang An")

	tests := []struct {
		name string
		rec  publications.Record
		want string
	}{
		{
			name: "links in order",
			rec:  publications.Record{Title: "T", Authors: "Xiang An, B", Venue: "V", CodeURL: "https://c", PaperURL: "https://p"},
			want: "**T** · **Xiang An**, B · *V* · [Paper](https://p) · [Code](https://c)",
		},
		{
			name: "project leader kept with name",
			rec:  publications.Record{Title: "T", Authors: "A, Xiang An (Project Leader)"},
			want: "**T** · A, **Xiang An (Project Leader)**",
		},
		{
			name: "title only",
			rec:  publications.Record{Title: "T"},
			want: "**T**",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildEntry(tt.rec, hl))
		})
	}
}

func TestBuildCountText(t *testing.T) {
	assert.Equal(t, "1 publication", buildCountText(1, "publication", "publications"))
	assert.Equal(t, "0 publications", buildCountText(0, "publication", "publications"))
	assert.Equal(t, "3 publications", buildCountText(3, "publication", "publications"))
}

func TestVenueTable(t *testing.T) {
	table := venueTable(testCatalog(t).Records())
	assert.Equal(t, []string{"Venue", "Count"}, table.Header)
	assert.Equal(t, [][]string{{"ICLR 2023", "2"}, {"CVPR 2022", "1"}, {"N/A", "1"}}, table.Rows)
}

func TestWrite(t *testing.T) {
	c := testCatalog(t)
	selected, missing := c.Select(context.Background(), publications.SelectedList{"Partial FC", "Unicom"})
	require.Empty(t, missing)

	var b strings.Builder
	require.NoError(t, New().Write(&b, c, selected))
	out := b.String()

	assert.Contains(t, out, "# Publications")
	assert.Contains(t, out, "4 publications")
	assert.Contains(t, out, "## Selected Publications")
	assert.Contains(t, out, "## All Publications")
	assert.Contains(t, out, "## Venues")
	assert.Contains(t, out, "[Code](https://github.com/deepglint/unicom)")
	assert.Contains(t, out, "ICLR 2023")

	sel := out[strings.Index(out, "## Selected Publications"):strings.Index(out, "## All Publications")]
	assert.Less(t, strings.Index(sel, "Partial FC"), strings.Index(sel, "Unicom"))
}

func TestWrite_NoSelected(t *testing.T) {
	var b strings.Builder
	require.NoError(t, New(WithTitle("Papers")).Write(&b, testCatalog(t), nil))
	assert.Contains(t, b.String(), "# Papers")
	assert.NotContains(t, b.String(), "Selected Publications")
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	g := New(WithOutputDir(dir), WithFileName("pubs.md"), WithAuthorName("Jiankang Deng"))

	path, err := g.Generate(context.Background(), testCatalog(t), nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pubs.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "**Jiankang Deng**")
	assert.NotContains(t, string(data), "**Xiang An**")
}
