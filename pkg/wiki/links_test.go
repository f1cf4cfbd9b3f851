package wiki

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractLinks(t *testing.T) {
	tests := []struct {
		name string
		html string
		max  int
		want []string
	}{
		{
			name: "parsoid wiki links",
			html: `<p><a rel="mw:WikiLink" href="./Wave_function">wave function</a> and
				<a rel="mw:WikiLink" href="./Photon">photon</a></p>`,
			max:  10,
			want: []string{"Wave function", "Photon"},
		},
		{
			name: "legacy wiki paths",
			html: `<a href="/wiki/Quantum_mechanics">QM</a>`,
			max:  10,
			want: []string{"Quantum mechanics"},
		},
		{
			name: "namespace links excluded",
			html: `<a href="./File:Photo.jpg">file</a>
				<a href="./Category:Physics">cat</a>
				<a href="./Template:Infobox">tpl</a>
				<a href="./Electron">electron</a>`,
			max:  10,
			want: []string{"Electron"},
		},
		{
			name: "external and anchor links excluded",
			html: `<a href="https://example.com/page">ext</a>
				<a href="#section">anchor</a>
				<a href="./Atom">atom</a>`,
			max:  10,
			want: []string{"Atom"},
		},
		{
			name: "duplicates kept once in document order",
			html: `<a href="./Photon">a</a><a href="./Atom">b</a><a href="./Photon">c</a>`,
			max:  10,
			want: []string{"Photon", "Atom"},
		},
		{
			name: "cap respected",
			html: `<a href="./One_thing">1</a><a href="./Two_things">2</a><a href="./Three_things">3</a>`,
			max:  2,
			want: []string{"One thing", "Two things"},
		},
		{
			name: "list pages and short titles skipped",
			html: `<a href="./List_of_physicists">list</a><a href="./X">x</a><a href="./Neutron">n</a>`,
			max:  10,
			want: []string{"Neutron"},
		},
		{
			name: "query params and anchors stripped from titles",
			html: `<a href="./Electron?veaction=edit">skip edit</a><a href="./Proton#History">proton</a>`,
			max:  10,
			want: []string{"Proton"},
		},
		{
			name: "percent-encoded titles decoded",
			html: `<a href="./Schr%C3%B6dinger_equation">eq</a>`,
			max:  10,
			want: []string{"Schrödinger equation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractLinks(strings.NewReader(tt.html), tt.max)
			if err != nil {
				t.Fatalf("ExtractLinks() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractLinks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArticleURL(t *testing.T) {
	got := ArticleURL("Albert Einstein")
	want := "https://en.wikipedia.org/wiki/Albert_Einstein"
	if got != want {
		t.Errorf("ArticleURL() = %q, want %q", got, want)
	}
}
