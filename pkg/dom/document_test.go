package dom

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anxiangsir/homepage/pkg/errors"
	"github.com/anxiangsir/homepage/pkg/logging"
	"github.com/anxiangsir/homepage/pkg/render"
)

const indexPage = `<!DOCTYPE html>
<html><head><title>Home</title></head>
<body>
<h2 id="publications">Selected Publications</h2>
<ul class="pub-list"><li>Loading...</li></ul>
<a href="https://github.com/deepinsight/insightface"><span class="stars-insightface">⭐ Stars</span></a>
<span class="stars-unicom">⭐ Stars</span>
</body></html>`

const fullPage = `<!DOCTYPE html>
<html><body>
<div class="page-header"><h1>Publication Full List</h1></div>
<ul class="pub-list"></ul>
</body></html>`

func TestResolveMode(t *testing.T) {
	index, err := ParseString(indexPage)
	require.NoError(t, err)
	assert.Equal(t, render.ModeSelectedList, render.ResolveMode(index))

	full, err := ParseString(fullPage)
	require.NoError(t, err)
	assert.Equal(t, render.ModeFullCatalog, render.ResolveMode(full))

	other, err := ParseString(`<html><body><div class="page-header"><h1>Blog</h1></div></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, render.ModeNone, render.ResolveMode(other))
}

func TestApply(t *testing.T) {
	doc, err := ParseString(indexPage)
	require.NoError(t, err)

	plan := render.Plan{
		Containers: render.DefaultContainers(render.ModeSelectedList),
		Nodes: []*render.Node{
			render.El("li", "", render.Text("B")),
			render.El("li", "", render.Text("A")),
		},
	}
	require.NoError(t, doc.Apply(context.Background(), plan))

	items, err := doc.Query("#publications + .pub-list > li")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "B", textContent(items[0]))
	assert.Equal(t, "A", textContent(items[1]))
	assert.NotContains(t, doc.String(), "Loading...")
}

func TestApplyPrefersFirstContainer(t *testing.T) {
	doc, err := ParseString(`<html><body>
<div id="selected-publications"><ul class="pub-list" id="second"></ul></div>
<ul class="pub-list" id="third"></ul>
</body></html>`)
	require.NoError(t, err)

	plan := render.Plan{
		Containers: render.DefaultContainers(render.ModeSelectedList),
		Nodes:      []*render.Node{render.El("li", "", render.Text("x"))},
	}
	require.NoError(t, doc.Apply(context.Background(), plan))
	assert.Equal(t, "x", doc.Text("#second"))
	assert.Equal(t, "", doc.Text("#third"))
}

func TestApplyMissingContainer(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	doc, err := ParseString(`<html><body><p id="keep">unchanged</p></body></html>`)
	require.NoError(t, err)
	before := doc.String()

	err = doc.Apply(ctx, render.Plan{
		Containers: []string{".pub-list", "[[bad"},
		Nodes:      []*render.Node{render.Placeholder()},
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, before, doc.String())
	assert.True(t, tl.Contains("Publications list element not found"))
	assert.True(t, tl.Contains("Skipping invalid container selector"))
}

func TestApplyPlaceholder(t *testing.T) {
	doc, err := ParseString(fullPage)
	require.NoError(t, err)

	plan := render.Plan{
		Containers: render.DefaultContainers(render.ModeFullCatalog),
		Nodes:      []*render.Node{render.Placeholder()},
		Err:        errors.New("boom"),
	}
	require.NoError(t, doc.Apply(context.Background(), plan))

	errs, _ := doc.Query(".pub-list > li." + render.ClassError)
	assert.Len(t, errs, 1)
	items, _ := doc.Query(".pub-list > li.pub-item")
	assert.Empty(t, items)
}

func TestSetText(t *testing.T) {
	doc, err := ParseString(indexPage)
	require.NoError(t, err)

	n, err := doc.SetText(".stars-insightface", "⭐ 1,234 Stars")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "⭐ 1,234 Stars", doc.Text(".stars-insightface"))

	n, err = doc.SetText(".stars-missing", "x")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = doc.SetText("[[", "x")
	assert.True(t, errors.IsValidationError(err))
	assert.False(t, doc.Exists("[["))
}

func TestConcurrentWrites(t *testing.T) {
	var body strings.Builder
	for i := range 20 {
		fmt.Fprintf(&body, `<span class="t%d">-</span>`, i)
	}
	doc, err := ParseString("<html><body>" + body.String() + "</body></html>")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = doc.SetText(fmt.Sprintf(".t%d", i), fmt.Sprint(i))
		}()
	}
	wg.Wait()

	for i := range 20 {
		assert.Equal(t, fmt.Sprint(i), doc.Text(fmt.Sprintf(".t%d", i)))
	}
}
