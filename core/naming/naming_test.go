package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"icon-arrow-left", "IconArrowLeft"},
		{"arrow_left", "ArrowLeft"},
		{"Arrow-Left", "ArrowLeft"},
		{"chevronDown", "ChevronDown"},
		{"mixed_case-wordSep", "MixedCaseWordSep"},
		{"a--b__c", "ABC"},
		{"class", "ClassIcon"},
		{"Class", "ClassIcon"},
		{"CLASS", "CLASSIcon"},
		{"import", "ImportIcon"},
		{"image", "ImageIcon"},
		{"1st-place", "Icon1stPlace"},
		{"24-hours", "Icon24Hours"},
		{"icon@2x", "Icon2x"},
		{"arrow.left", "ArrowLeft"},
		{"", "Icon"},
		{"---", "Icon"},
		{"élan", "Élan"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveIdentifier(tt.in))
		})
	}
}

func TestIdentifierIsDeterministic(t *testing.T) {
	n := NewNamer(DefaultReservedWords(), "")
	for _, name := range []string{"class", "icon-arrow-left", "1up"} {
		assert.Equal(t, n.Identifier(name), n.Identifier(name))
		assert.Equal(t, DeriveIdentifier(name), n.Identifier(name))
	}
}

func TestCustomReservedWordsAndSuffix(t *testing.T) {
	n := NewNamer(DefaultReservedWords("Logo"), "Glyph")

	assert.Equal(t, "LogoGlyph", n.Identifier("logo"))
	assert.Equal(t, "ClassGlyph", n.Identifier("class"))
	assert.Equal(t, "Glyph3d", n.Identifier("3d"))
	assert.Equal(t, "Home", n.Identifier("home"))
}

func TestReservedWordsCaseInsensitive(t *testing.T) {
	r := NewReservedWords("Delete", " ", "")

	assert.Equal(t, 1, r.Len())
	assert.True(t, r.Contains("delete"))
	assert.True(t, r.Contains("DELETE"))
	assert.False(t, r.Contains("deleted"))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "icon-arrow-left", Stem("nav/icon-arrow-left.svg"))
	assert.Equal(t, "logo.dark", Stem("logo.dark.svg"))
	assert.Equal(t, "plain", Stem("plain"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "ArrowLEFT", Capitalize("arrowLEFT"))
	assert.Equal(t, "9lives", Capitalize("9lives"))
}

func TestSplitWords(t *testing.T) {
	assert.Equal(t, []string{"icon", "arrow", "left"}, SplitWords("icon-arrow_left"))
	assert.Empty(t, SplitWords("-_-"))
}
