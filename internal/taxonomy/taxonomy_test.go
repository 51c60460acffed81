package taxonomy_test

import (
	"testing"

	"github.com/rpggio/folio/internal/taxonomy"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tax := taxonomy.Default()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "alias", raw: "ecommerce", want: "E-commerce"},
		{name: "alias with padding and case", raw: "  Online Store ", want: "E-commerce"},
		{name: "canonical any case", raw: "e-COMMERCE", want: "E-commerce"},
		{name: "canonical exact", raw: "Node.js", want: "Node.js"},
		{name: "technology alias", raw: "golang", want: "Go"},
		{name: "first definition wins on shared alias", raw: "booking", want: "Travel & Hospitality"},
		{name: "unknown already titled", raw: "Totally Unknown Tag", want: "Totally Unknown Tag"},
		{name: "unknown lower case", raw: "quantum widgets", want: "Quantum Widgets"},
		{name: "fallback keeps inner casing", raw: "iPhone-ish gizmo", want: "IPhone-ish Gizmo"},
		{name: "fallback trims", raw: "  hello world  ", want: "Hello World"},
		{name: "fallback keeps inner whitespace", raw: "hello   world", want: "Hello   World"},
		{name: "unicode first letter", raw: "école numérique", want: "École Numérique"},
		{name: "empty", raw: "", want: ""},
		{name: "whitespace only", raw: " \t ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tax.Normalize(tt.raw))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	tax := taxonomy.Default()

	inputs := []string{
		"", " ", "ecommerce", "E-COMMERCE", "react native", "REACT-NATIVE",
		"booking", "Totally Unknown Tag", "foo   bar", "  mixed CASE input ",
		"x", "über cool", "next", "NEXT.JS", "a\tb", "ai",
		"ıos", "ıphone", "ſhop",
	}
	for _, def := range tax.Definitions() {
		inputs = append(inputs, def.Canonical)
		inputs = append(inputs, def.Aliases...)
	}

	for _, in := range inputs {
		once := tax.Normalize(in)
		require.Equal(t, once, tax.Normalize(once), "input %q", in)
	}
}

func TestNormalize_CaseFoldingFallback(t *testing.T) {
	tax := taxonomy.Default()
	require.Equal(t, "iOS", tax.Normalize("ıos"))
	require.Equal(t, "iOS", tax.Normalize(tax.Normalize("ıos")))
}

func TestNormalizeAll(t *testing.T) {
	tax := taxonomy.Default()

	raw := []string{"ecommerce", "React", "online shop", "reactjs", "new thing", "New thing", "", " "}
	got := tax.NormalizeAll(raw)

	require.Equal(t, []string{"E-commerce", "React", "New Thing", ""}, got)
	require.LessOrEqual(t, len(got), len(raw))

	seen := map[string]bool{}
	for _, tag := range got {
		require.False(t, seen[tag], "duplicate %q", tag)
		seen[tag] = true
	}
}

func TestNormalizeAll_Empty(t *testing.T) {
	tax := taxonomy.Default()
	require.Empty(t, tax.NormalizeAll(nil))
}

func TestCategory(t *testing.T) {
	tax := taxonomy.Default()

	require.Equal(t, taxonomy.CategoryDomain, tax.Category(tax.Normalize("ecommerce")))
	require.Equal(t, taxonomy.CategoryTechnology, tax.Category("Go"))
	require.Equal(t, taxonomy.CategoryOther, tax.Category("Totally Unknown Tag"))

	// Aliases and other spellings are not resolved here.
	require.Equal(t, taxonomy.CategoryOther, tax.Category("ecommerce"))
	require.Equal(t, taxonomy.CategoryOther, tax.Category("e-commerce"))
}

func TestByCategory(t *testing.T) {
	tax := taxonomy.Default()

	styles := tax.ByCategory(taxonomy.CategoryStyle)
	require.Equal(t, []string{"Minimalist", "Modern", "Dark Mode", "Responsive", "Playful", "Corporate"}, styles)
	require.Empty(t, tax.ByCategory(taxonomy.CategoryOther))

	for _, cat := range taxonomy.Categories() {
		for _, tag := range tax.ByCategory(cat) {
			require.Equal(t, cat, tax.Category(tag), "tag %q", tag)
		}
	}
}

func TestGroups(t *testing.T) {
	groups := taxonomy.Default().Groups()
	require.Len(t, groups, len(taxonomy.Categories()))
	for i, g := range groups {
		require.Equal(t, taxonomy.Categories()[i], g.Category)
		require.NotNil(t, g.Tags)
	}
	require.Contains(t, groups[0].Tags, "FinTech")
	require.Empty(t, groups[len(groups)-1].Tags)
}

func TestNew_Validation(t *testing.T) {
	_, err := taxonomy.New([]taxonomy.Definition{{Canonical: " ", Category: taxonomy.CategoryDomain}})
	require.ErrorIs(t, err, taxonomy.ErrInvalidDefinition)

	_, err = taxonomy.New([]taxonomy.Definition{{Canonical: "Thing", Category: "Nope"}})
	require.ErrorIs(t, err, taxonomy.ErrInvalidDefinition)

	_, err = taxonomy.New([]taxonomy.Definition{
		{Canonical: "Web", Category: taxonomy.CategoryPlatform, Aliases: []string{"site"}},
		{Canonical: "Site", Category: taxonomy.CategoryPlatform},
	})
	require.ErrorIs(t, err, taxonomy.ErrInvalidDefinition)
}

func TestNew_AliasCollisionKeepsFirst(t *testing.T) {
	tax, err := taxonomy.New([]taxonomy.Definition{
		{Canonical: "Alpha", Category: taxonomy.CategoryDomain, Aliases: []string{"shared", "ALPHA-ONE"}},
		{Canonical: "Beta", Category: taxonomy.CategoryFeature, Aliases: []string{"shared", "alpha"}},
	})
	require.NoError(t, err)

	require.Equal(t, "Alpha", tax.Normalize("shared"))
	require.Equal(t, "Alpha", tax.Normalize("alpha-one"))
	require.Equal(t, "Alpha", tax.Normalize("ALPHA"))
	require.Equal(t, "Beta", tax.Normalize("beta"))
}

func TestParseCategory(t *testing.T) {
	cat, err := taxonomy.ParseCategory("technology")
	require.NoError(t, err)
	require.Equal(t, taxonomy.CategoryTechnology, cat)

	_, err = taxonomy.ParseCategory("colour")
	require.ErrorIs(t, err, taxonomy.ErrUnknownCategory)
}

func TestDefinitions_ReturnsCopy(t *testing.T) {
	tax := taxonomy.Default()
	defs := tax.Definitions()
	defs[0].Canonical = "Mutated"
	defs[0].Aliases[0] = "mutated"

	require.Equal(t, "E-commerce", tax.Normalize("ecommerce"))
	require.Equal(t, "E-commerce", tax.Definitions()[0].Canonical)
}
