package keywords

import (
	"reflect"
	"sort"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        []string
	}{
		{
			"empty description prunes regardless of title",
			"Python Programming Tutorial",
			"",
			nil,
		},
		{
			"both fields empty",
			"",
			"",
			nil,
		},
		{
			"empty title with description",
			"",
			"golang tutorial",
			[]string{"golang", "tutorial"},
		},
		{
			"title and description combined, deduplicated",
			"Python Programming Tutorial",
			"Learn Python programming from scratch in this tutorial.",
			[]string{"from", "in", "learn", "programming", "python", "scratch", "this", "tutorial"},
		},
		{
			"punctuation splits tokens",
			"C++: tips & tricks!",
			"tips, tricks... and more-tips",
			[]string{"and", "c", "more", "tips", "tricks"},
		},
		{
			"underscores and digits are word characters",
			"episode_01",
			"episode_01 part 2",
			[]string{"2", "episode_01", "part"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.title, tt.description)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q, %q) = %v, want %v", tt.title, tt.description, got, tt.want)
			}
		})
	}
}

func TestExtractSorted(t *testing.T) {
	got := Extract("zebra apple", "mango apple zebra banana")
	if !sort.StringsAreSorted(got) {
		t.Errorf("Extract() returned unsorted tokens: %v", got)
	}
}

func TestExtractLowercases(t *testing.T) {
	got := Extract("GoLang TUTORIAL", "Learn GOLANG")
	want := []string{"golang", "learn", "tutorial"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}
