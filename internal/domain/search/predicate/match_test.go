package predicate

import (
	"testing"

	"github.com/kailas-cloud/stayfinder/internal/domain/listing"
)

func named(t *testing.T, name string) listing.Listing {
	t.Helper()
	l, err := listing.New("id-1", listing.Attributes{Name: name})
	if err != nil {
		t.Fatalf("listing.New: %v", err)
	}
	return l
}

func TestCompile_Leaves(t *testing.T) {
	tests := []struct {
		name  string
		p     Predicate
		value string
		want  bool
	}{
		{"equals same case", Equals(listing.FieldName, "AB"), "AB", true},
		{"equals ignores case", Equals(listing.FieldName, "ab"), "AB", true},
		{"equals rejects longer", Equals(listing.FieldName, "ab"), "ABC Hostel", false},
		{"word matches inner word", Word(listing.FieldName, "hostel"), "ABC Hostel", true},
		{"word rejects substring", Word(listing.FieldName, "stay"), "Upstayed", false},
		{"word rejects word prefix", Word(listing.FieldName, "abc"), "Abcd", false},
		{"prefix at field start", Prefix(listing.FieldName, "abc"), "ABC Hostel", true},
		{"prefix not in middle", Prefix(listing.FieldName, "abc"), "Wabcot", false},
		{"word prefix inner word", WordPrefix(listing.FieldName, "resi"), "Spice Residency", true},
		{"word prefix not mid word", WordPrefix(listing.FieldName, "stay"), "Upstayed", false},
		{"contains anywhere", Contains(listing.FieldName, "pg"), "pg-hostel", true},
		{"contains ignores case", Contains(listing.FieldName, "pg"), "PG Accommodation", true},
		{"contains misses", Contains(listing.FieldName, "pg"), "Apartment", false},
		{"dot is literal", Equals(listing.FieldName, "a.b"), "axb", false},
		{"dot matches itself", Equals(listing.FieldName, "a.b"), "A.B", true},
		{"parens are literal", Contains(listing.FieldName, "(1"), "Room (1st floor)", true},
		{"star is literal", Contains(listing.FieldName, "a*"), "aaa", false},
		{"inner whitespace kept", Word(listing.FieldName, "near sea"), "Near  Sea", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile(tt.p)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			l := named(t, tt.value)
			if got := m(&l); got != tt.want {
				t.Errorf("%s on %q = %v, want %v", tt.p, tt.value, got, tt.want)
			}
		})
	}
}

func TestCompile_Groups(t *testing.T) {
	l, err := listing.New("id-1", listing.Attributes{Name: "Sunrise PG", City: "Surat", Category: "PG Accommodation"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		p    Predicate
		want bool
	}{
		{"all", All(), true},
		{"and both true", And(Word(listing.FieldCity, "surat"), Contains(listing.FieldCategory, "pg")), true},
		{"and one false", And(Word(listing.FieldCity, "surat"), Contains(listing.FieldCategory, "hostel")), false},
		{"or one true", Or(Equals(listing.FieldCity, "pune"), Prefix(listing.FieldName, "sun")), true},
		{"or none true", Or(Equals(listing.FieldCity, "pune"), Prefix(listing.FieldName, "moon")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile(tt.p)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			if got := m(&l); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestCompile_UnknownField(t *testing.T) {
	if _, err := Compile(Equals(listing.Field("price"), "1")); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestPattern(t *testing.T) {
	tests := []struct {
		p    Predicate
		want string
	}{
		{Equals(listing.FieldName, "a+b"), `^a\+b$`},
		{Word(listing.FieldName, "abc"), `\babc\b`},
		{Prefix(listing.FieldName, "abc"), `^abc`},
		{WordPrefix(listing.FieldName, "stay"), `\bstay`},
		{Contains(listing.FieldCategory, "pg"), `pg`},
	}
	for _, tt := range tests {
		got, err := Pattern(tt.p)
		if err != nil {
			t.Fatalf("Pattern(%s): %v", tt.p, err)
		}
		if got != tt.want {
			t.Errorf("Pattern(%s) = %q, want %q", tt.p, got, tt.want)
		}
	}
	if _, err := Pattern(And(Word(listing.FieldName, "a"), Word(listing.FieldCity, "b"))); err == nil {
		t.Error("expected error for group predicate")
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	ls := []listing.Listing{named(t, "AB"), named(t, "Cabin"), named(t, "ab")}
	m, err := Compile(Equals(listing.FieldName, "ab"))
	if err != nil {
		t.Fatal(err)
	}
	got := Filter(ls, m)
	if len(got) != 2 || got[0].Name() != "AB" || got[1].Name() != "ab" {
		t.Errorf("Filter = %v", got)
	}
}
