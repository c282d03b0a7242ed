package wizard

import (
	"reflect"
	"testing"
)

func TestFormValuesCheckboxPresence(t *testing.T) {
	form := FormValues{"openToFullTime": {"on"}}

	if !form.Has("openToFullTime") {
		t.Error("submitted checkbox should read as present")
	}
	if form.Has("openToContract") {
		t.Error("absent checkbox should read as not present")
	}
}

func TestFormValuesCommaList(t *testing.T) {
	form := FormValues{"preferredLocations": {"New York, , London"}}

	got := form.CommaList("preferredLocations")
	want := []string{"New York", "London"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CommaList = %v, want %v", got, want)
	}

	if got := form.CommaList("missing"); len(got) != 0 {
		t.Errorf("CommaList on missing field = %v, want empty", got)
	}
}

func TestFormValuesIndexedGroups(t *testing.T) {
	form := FormValues{
		"company-0":  {"Acme"},
		"position-0": {"Engineer"},
		"company-2":  {"Globex"},
		"position-1": {"Manager"},
		"unrelated":  {"x"},
	}

	groups := form.IndexedGroups("company", "position")
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if groups[0]["company"] != "Acme" || groups[0]["position"] != "Engineer" {
		t.Errorf("group 0 = %v", groups[0])
	}
	if groups[1]["company"] != "" || groups[1]["position"] != "Manager" {
		t.Errorf("group 1 = %v", groups[1])
	}
	if groups[2]["company"] != "Globex" {
		t.Errorf("group 2 = %v", groups[2])
	}
}

func TestFormValuesGetTrims(t *testing.T) {
	form := FormValues{"city": {"  Boston  "}}
	if got := form.Get("city"); got != "Boston" {
		t.Errorf("Get = %q, want trimmed value", got)
	}
}
