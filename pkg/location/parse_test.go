package location

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want ParsedLocation
	}{
		{"Columbus", ParsedLocation{Original: "Columbus", City: "Columbus"}},
		{"Dayton, Ohio", ParsedLocation{
			Original: "Dayton, Ohio", City: "Dayton", Region: "Ohio", Country: "United States",
		}},
		{"Dayton, OH", ParsedLocation{
			Original: "Dayton, OH", City: "Dayton", Region: "OH", Country: "United States",
		}},
		{"Paris, France", ParsedLocation{
			Original: "Paris, France", City: "Paris", Country: "France",
		}},
		{"Toronto, ON, Canada", ParsedLocation{
			Original: "Toronto, ON, Canada", City: "Toronto", Region: "ON", Country: "Canada",
		}},
		// Excess parts beyond three are ignored.
		{"A, B, C, D", ParsedLocation{Original: "A, B, C, D", City: "A", Region: "B", Country: "C"}},
		{"Washington, DC", ParsedLocation{
			Original: "Washington, DC", City: "Washington", Region: "DC", Country: "United States",
		}},
	}
	for _, tc := range cases {
		if got := Parse(tc.in); got != tc.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestQueryRoundTrip(t *testing.T) {
	cases := map[string]string{
		"Columbus":            "Columbus",
		"Paris, France":       "Paris, France",
		"Toronto, ON, Canada": "Toronto, ON, Canada",
		"Dayton, OH":          "Dayton, OH, United States",
	}
	for in, want := range cases {
		if got := Parse(in).Query(); got != want {
			t.Errorf("Parse(%q).Query() = %q, want %q", in, got, want)
		}
	}
}
