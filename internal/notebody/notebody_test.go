package notebody

import (
	"testing"

	"pgregory.net/rapid"
)

// fieldValueGenerator generates newline-free field values, including empty.
func fieldValueGenerator() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just(""),
		rapid.StringMatching(`[A-Za-z0-9 .,:!?'\-]{1,80}`),
	)
}

func testEncodeDecode_RoundTrip(t *rapid.T) {
	f := Fields{
		Title:   fieldValueGenerator().Draw(t, "title"),
		Summary: fieldValueGenerator().Draw(t, "summary"),
		Author:  fieldValueGenerator().Draw(t, "author"),
	}

	got := Decode(Encode(f))
	if got != f {
		t.Fatalf("round trip mismatch: got=%+v want=%+v", got, f)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testEncodeDecode_RoundTrip)
}

func TestEncode_ExactFormat(t *testing.T) {
	t.Parallel()
	got := Encode(Fields{Title: "Q3 sync", Summary: "Budget approved", Author: "Dana"})
	want := "Title: Q3 sync\nSummary: Budget approved\nAuthor: Dana"
	if got != want {
		t.Fatalf("unexpected blob:\ngot  %q\nwant %q", got, want)
	}
}

func TestDecode_LenientOnForeignBlobs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		blob string
		want Fields
	}{
		{
			name: "missing label lines default to empty",
			blob: "Title: only a title",
			want: Fields{Title: "only a title"},
		},
		{
			name: "unknown lines are ignored",
			blob: "Subject: nope\nTitle: t\nAuthor: a\nTrailer",
			want: Fields{Title: "t", Author: "a"},
		},
		{
			name: "empty blob decodes to all-empty fields",
			blob: "",
			want: Fields{},
		},
		{
			name: "free text from another integration",
			blob: "Called the client, left a voicemail.",
			want: Fields{},
		},
		{
			name: "label without trailing space is not a label",
			blob: "Title:missing space",
			want: Fields{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Decode(tt.blob); got != tt.want {
				t.Fatalf("Decode(%q) = %+v, want %+v", tt.blob, got, tt.want)
			}
		})
	}
}

func TestDecode_LastLabelLineWins(t *testing.T) {
	t.Parallel()
	got := Decode("Title: first\nTitle: second\nSummary: s\nAuthor: a")
	if got.Title != "second" {
		t.Fatalf("expected later duplicate label to win, got %q", got.Title)
	}
}

func testMerge_NonEmptyCallerFieldWins(t *rapid.T) {
	previous := Fields{
		Title:   fieldValueGenerator().Draw(t, "prevTitle"),
		Summary: fieldValueGenerator().Draw(t, "prevSummary"),
		Author:  fieldValueGenerator().Draw(t, "prevAuthor"),
	}
	supplied := Fields{
		Title:   fieldValueGenerator().Draw(t, "newTitle"),
		Summary: fieldValueGenerator().Draw(t, "newSummary"),
		Author:  fieldValueGenerator().Draw(t, "newAuthor"),
	}

	merged := Merge(previous, supplied)

	check := func(name, prev, sup, got string) {
		want := prev
		if sup != "" {
			want = sup
		}
		if got != want {
			t.Fatalf("%s merge mismatch: prev=%q supplied=%q got=%q", name, prev, sup, got)
		}
	}
	check("title", previous.Title, supplied.Title, merged.Title)
	check("summary", previous.Summary, supplied.Summary, merged.Summary)
	check("author", previous.Author, supplied.Author, merged.Author)
}

func TestMerge_NonEmptyCallerFieldWins(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testMerge_NonEmptyCallerFieldWins)
}

func TestMerge_EmptyCallerCannotClearField(t *testing.T) {
	t.Parallel()
	previous := Fields{Title: "T", Summary: "S", Author: "A"}
	merged := Merge(previous, Fields{Title: "", Summary: "new text"})
	want := Fields{Title: "T", Summary: "new text", Author: "A"}
	if merged != want {
		t.Fatalf("merge mismatch: got=%+v want=%+v", merged, want)
	}
}
