package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Category
		ok    bool
	}{
		{"空字串為預設類別", "", CategoryDefault, true},
		{"default", "default", CategoryDefault, true},
		{"random", "random", CategoryRandom, true},
		{"舊版標籤 Recom.", "Recom.", CategoryRandom, true},
		{"beverage", "beverage", CategoryBeverage, true},
		{"舊版標籤 Bebida", "Bebida", CategoryBeverage, true},
		{"kids", "kids", CategoryKids, true},
		{"舊版標籤 Niños", "Niños", CategoryKids, true},
		{"前後空白", "  random  ", CategoryRandom, true},
		{"未知類別", "dessert", CategoryDefault, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCategory(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestParseID(t *testing.T) {
	assert.Equal(t, int64(52772), ParseID("52772"))
	assert.Equal(t, int64(7), ParseID(" 7 "))
	assert.Equal(t, int64(0), ParseID(""))
	assert.Equal(t, int64(0), ParseID("abc"))
	assert.Equal(t, int64(0), ParseID("12.5"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"pasta", "cheese", "milk"}, SplitList("pasta, cheese, milk"))
	assert.Equal(t, []string{"pollo"}, SplitList("pollo"))
	assert.Equal(t, []string{"a", "b"}, SplitList(" a ,, b , "))
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList("   "))
	assert.Nil(t, SplitList(",,,"))
}

func TestJoinList(t *testing.T) {
	assert.Equal(t, "pollo,arroz", JoinList([]string{"pollo", "arroz"}))
	assert.Equal(t, "", JoinList(nil))
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "Tacos", OrDefault("Tacos", DefaultTitle))
	assert.Equal(t, DefaultTitle, OrDefault("", DefaultTitle))
	assert.Equal(t, DefaultInstructions, OrDefault("   ", DefaultInstructions))
}
